package template

import (
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

//go:embed templates
var builtin embed.FS

// Names of the bundled templates
const (
	ToolTemplate      = "matlab_tool.m"
	InputToolTemplate = "matlab_input_tool.m"
	ReadmeTemplate    = "readme.md"
)

// Placeholder tokens recognized by Render
const (
	TokenName      = "MATLAB_NAME"
	TokenInputFile = "INPUT_FILE"
)

// renderOrder fixes the substitution sequence. The input file value is
// a user-controlled path that may contain the name token's literal
// text, so the name token must be replaced first.
var renderOrder = []string{TokenName, TokenInputFile}

// Engine implements the TemplateEngine interface. Templates ship inside
// the binary; a configured override directory wins by filename.
type Engine struct {
	templatesLocation string
	fs                afero.Fs
}

// NewEngine creates a new template engine. An empty templatesLocation
// serves the bundled templates only.
func NewEngine(templatesLocation string, fs afero.Fs) *Engine {
	return &Engine{
		templatesLocation: templatesLocation,
		fs:                fs,
	}
}

// SetTemplatesLocation updates the override directory
func (e *Engine) SetTemplatesLocation(location string) {
	e.templatesLocation = location
}

// Lookup returns the template text registered under name. Override files
// are matched case-insensitively by filename; the bundled copy is the
// fallback.
func (e *Engine) Lookup(name string) (string, error) {
	if e.templatesLocation != "" {
		if path, ok := e.discoverOverride(name); ok {
			content, err := afero.ReadFile(e.fs, path)
			if err != nil {
				return "", fmt.Errorf("failed to read template file %s: %w", path, err)
			}
			return string(content), nil
		}
	}

	content, err := builtin.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	return string(content), nil
}

// discoverOverride finds a template file in the override directory
// (case-insensitive matching by filename)
func (e *Engine) discoverOverride(name string) (string, bool) {
	entries, err := afero.ReadDir(e.fs, e.templatesLocation)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.EqualFold(entry.Name(), name) {
			return filepath.Join(e.templatesLocation, entry.Name()), true
		}
	}

	return "", false
}

// Render replaces every occurrence of each token with its value, in a
// fixed deterministic order. The substitution is literal text
// replacement; templates carry no expressions, conditionals, or escapes.
func (e *Engine) Render(template string, values map[string]string) string {
	rendered := template
	replaced := make(map[string]bool, len(values))
	for _, token := range renderOrder {
		if value, ok := values[token]; ok {
			rendered = strings.ReplaceAll(rendered, token, value)
			replaced[token] = true
		}
	}

	// Tokens outside the fixed set apply afterwards, in name order
	extra := make([]string, 0, len(values))
	for token := range values {
		if !replaced[token] {
			extra = append(extra, token)
		}
	}
	sort.Strings(extra)
	for _, token := range extra {
		rendered = strings.ReplaceAll(rendered, token, values[token])
	}

	return rendered
}

// Builtin lists the bundled template names
func (e *Engine) Builtin() []string {
	entries, err := builtin.ReadDir("templates")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// Overrides lists the template files present in the override directory
func (e *Engine) Overrides() ([]string, error) {
	if e.templatesLocation == "" {
		return nil, nil
	}

	entries, err := afero.ReadDir(e.fs, e.templatesLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory %s: %w", e.templatesLocation, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
