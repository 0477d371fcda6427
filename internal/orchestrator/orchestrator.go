package orchestrator

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"toolwizard-cli/internal/config"
	"toolwizard-cli/internal/interfaces"
	"toolwizard-cli/internal/template"
	"toolwizard-cli/pkg/models"
)

// Names MATLAB reserves for its own syntax; a tool cannot shadow them
var reservedMatlabWords = []string{"function", "end", "if", "else", "for", "while", "return"}

// Layout of a generated tool below <output path>/<name>
const (
	srcDirName      = "src"
	docsDirName     = "docs"
	sourceExtension = ".m"
	readmeFileName  = "README.md"
)

// Orchestrator coordinates validation and file generation for one
// collected tool configuration
type Orchestrator struct {
	configManager  interfaces.ConfigManager
	templateEngine interfaces.TemplateEngine
	outputHandler  interfaces.OutputHandler
	fs             afero.Fs
	cfg            *interfaces.Config
}

// New creates a new orchestrator backed by the real filesystem
func New() *Orchestrator {
	return NewWithFs(afero.NewOsFs())
}

// NewWithFs creates a new orchestrator on the given filesystem. Tests
// pass an in-memory one.
func NewWithFs(fs afero.Fs) *Orchestrator {
	return &Orchestrator{
		configManager:  config.NewManager(),
		templateEngine: template.NewEngine("", fs),
		outputHandler:  NewOutputHandler(fs),
		fs:             fs,
	}
}

// LoadConfiguration loads, resolves, and validates the wizard settings,
// then points the template engine at any configured override directory
func (o *Orchestrator) LoadConfiguration(configPath string) (*interfaces.Config, error) {
	_, err := o.configManager.Load(configPath)
	if err != nil {
		return nil, RecoverFromError(NewConfigurationError(fmt.Sprintf("failed to load configuration: %v", err), err))
	}

	cfg, err := o.configManager.Resolve()
	if err != nil {
		return nil, RecoverFromError(NewConfigurationError(fmt.Sprintf("failed to resolve configuration: %v", err), err))
	}

	if err := o.configManager.Validate(cfg); err != nil {
		return nil, RecoverFromError(NewConfigurationError(fmt.Sprintf("invalid configuration: %v", err), err))
	}

	if engine, ok := o.templateEngine.(*template.Engine); ok {
		engine.SetTemplatesLocation(cfg.TemplatesLocation)
	}

	o.cfg = cfg
	return cfg, nil
}

// ValidateConfig re-checks a collected configuration before anything is
// written. The interactive stages already police these rules; this is
// the safety net for configs that arrive by other means. A nil config
// is the cancellation signal and fails immediately.
func (o *Orchestrator) ValidateConfig(cfg *models.ToolConfig) (bool, string) {
	if cfg == nil {
		return false, "Error: no configuration provided (user cancelled)"
	}

	ok := cfg.Validate()

	// Length overlaps with the name stage on purpose
	nameLen := utf8.RuneCountInString(cfg.Name)
	if nameLen == 2 {
		cfg.Errors = append(cfg.Errors, "too short")
		ok = false
	}
	if nameLen > models.MaxNameLength {
		cfg.Errors = append(cfg.Errors, fmt.Sprintf("Tool name too long (maximum %d characters)", models.MaxNameLength))
		ok = false
	}

	if isReservedWord(cfg.Name) {
		cfg.Errors = append(cfg.Errors, fmt.Sprintf("'%s' is a reserved MATLAB keyword", cfg.Name))
		ok = false
	}

	if cfg.InputFile != "" {
		exists, err := afero.Exists(o.fs, cfg.InputFile)
		if err != nil || !exists {
			cfg.Errors = append(cfg.Errors, fmt.Sprintf("Input file not found: %s", cfg.InputFile))
			ok = false
		} else if !strings.EqualFold(filepath.Ext(cfg.InputFile), o.requiredExtension()) {
			cfg.Errors = append(cfg.Errors, fmt.Sprintf("Input file must have %s extension", o.requiredExtension()))
			ok = false
		}
	}

	if ok {
		return true, "✓ Configuration validated successfully"
	}
	return false, "✗ Validation failed: " + strings.Join(cfg.Errors, " | ")
}

// GenerateFiles renders the source and documentation templates for the
// configuration and writes them below <output path>/<name>. Existing
// files are overwritten.
func (o *Orchestrator) GenerateFiles(cfg *models.ToolConfig) (string, error) {
	if cfg == nil {
		return "", RecoverFromError(NewValidationError("config", nil, "config cannot be nil"))
	}
	if !cfg.ShouldCreate() {
		return "", RecoverFromError(NewValidationError("config", cfg.Name, "tool creation was not confirmed"))
	}

	base := o.ToolRoot(cfg)
	srcDir := filepath.Join(base, srcDirName)
	docsDir := filepath.Join(base, docsDirName)

	for _, dir := range []string{srcDir, docsDir} {
		if err := o.outputHandler.EnsureDir(dir); err != nil {
			return "", RecoverFromError(NewGenerationError(dir, err))
		}
	}

	values := map[string]string{
		template.TokenName:      cfg.Name,
		template.TokenInputFile: cfg.InputFile,
	}

	// Two source templates: with and without bundled input data
	sourceTemplate := template.ToolTemplate
	if cfg.InputFile != "" {
		sourceTemplate = template.InputToolTemplate
	}

	source, err := o.renderTemplate(sourceTemplate, values)
	if err != nil {
		return "", err
	}
	sourcePath := filepath.Join(srcDir, cfg.Name+sourceExtension)
	if err := o.outputHandler.WriteFile(sourcePath, source); err != nil {
		return "", RecoverFromError(NewGenerationError(sourcePath, err))
	}

	readme, err := o.renderTemplate(template.ReadmeTemplate, values)
	if err != nil {
		return "", err
	}
	readmePath := filepath.Join(docsDir, readmeFileName)
	if err := o.outputHandler.WriteFile(readmePath, readme); err != nil {
		return "", RecoverFromError(NewGenerationError(readmePath, err))
	}

	return fmt.Sprintf("Tool '%s' created successfully at %s", cfg.Name, base), nil
}

// ToolRoot returns the directory a generated tool lives in
func (o *Orchestrator) ToolRoot(cfg *models.ToolConfig) string {
	return filepath.Join(o.outputRoot(cfg), cfg.Name)
}

// CopyPathToClipboard copies the generated tool path to the clipboard
func (o *Orchestrator) CopyPathToClipboard(path string) error {
	if err := o.outputHandler.CopyToClipboard(path); err != nil {
		return NewOutputError("clipboard", err)
	}
	return nil
}

// renderTemplate loads a template by name and substitutes the tokens
func (o *Orchestrator) renderTemplate(name string, values map[string]string) (string, error) {
	content, err := o.templateEngine.Lookup(name)
	if err != nil {
		return "", RecoverFromError(NewTemplateError(name, err))
	}
	return o.templateEngine.Render(content, values), nil
}

// outputRoot resolves the destination in precedence order: the collected
// path, then the loaded settings, then the built-in default
func (o *Orchestrator) outputRoot(cfg *models.ToolConfig) string {
	if cfg.OutputPath != "" {
		return cfg.OutputPath
	}
	if o.cfg != nil && o.cfg.OutputPath != "" {
		return o.cfg.OutputPath
	}
	return interfaces.DefaultOutputPath
}

// requiredExtension returns the configured input-file extension
func (o *Orchestrator) requiredExtension() string {
	if o.cfg != nil && o.cfg.InputExtension != "" {
		return o.cfg.InputExtension
	}
	return interfaces.DefaultInputExtension
}

// isReservedWord reports whether name collides with a MATLAB keyword
func isReservedWord(name string) bool {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, word := range reservedMatlabWords {
		if lowered == word {
			return true
		}
	}
	return false
}
