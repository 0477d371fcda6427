package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"toolwizard-cli/internal/interactive"
	"toolwizard-cli/internal/orchestrator"
	"toolwizard-cli/internal/template"
)

// blockRule frames the final success and error reports
var blockRule = strings.Repeat("=", 60)

// Run executes one wizard session. Every wizard outcome, including
// cancellation, validation failure, and generation failure, prints its
// message and returns nil so the process exits cleanly; only settings
// problems surface as errors.
func Run(configPath string) error {
	printBanner()

	orch := orchestrator.New()

	cfg, err := orch.LoadConfiguration(configPath)
	if err != nil {
		return err
	}

	collector := interactive.NewCollector(cfg, afero.NewOsFs())

	toolCfg, err := collector.Collect()
	if errors.Is(err, interactive.ErrCancelled) {
		fmt.Println("\nWizard cancelled. Goodbye!")
		return nil
	}
	if err != nil {
		fmt.Printf("\nInput collection failed: %v\n", err)
		return nil
	}

	valid, message := orch.ValidateConfig(toolCfg)
	fmt.Printf("\n%s\n", message)
	if !valid {
		fmt.Println("Tool creation failed. Please restart the wizard.")
		return nil
	}

	result, err := orch.GenerateFiles(toolCfg)
	if err != nil {
		printErrorBlock(err)
		return nil
	}

	printSuccessBlock(result)

	if cfg.CopyPath {
		toolPath := orch.ToolRoot(toolCfg)
		if err := orch.CopyPathToClipboard(toolPath); err != nil {
			// Check if this is recoverable (clipboard unavailable)
			if orchestrator.IsRecoverableError(err) {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				fmt.Printf("Tool path: %s\n", toolPath)
			} else {
				return orchestrator.RecoverFromError(err)
			}
		} else {
			fmt.Println("Tool path copied to clipboard")
		}
	}

	return nil
}

// printBanner prints the wizard greeting
func printBanner() {
	fmt.Println()
	fmt.Println(blockRule)
	fmt.Println("    Welcome to the MATLAB Tool Setup Wizard!")
	fmt.Println(blockRule)
}

// printSuccessBlock frames the generation result
func printSuccessBlock(result string) {
	fmt.Println()
	fmt.Println(blockRule)
	fmt.Println("SUCCESS!")
	fmt.Println(blockRule)
	fmt.Println(result)
	fmt.Println(blockRule)
}

// printErrorBlock frames a generation failure, reported verbatim
func printErrorBlock(err error) {
	fmt.Println()
	fmt.Println(blockRule)
	fmt.Println("ERROR during file generation:")
	fmt.Println(blockRule)
	fmt.Println(err.Error())
	fmt.Println(blockRule)
}

// ListTemplates lists the bundled templates and any overrides
func ListTemplates(configPath string) error {
	orch := orchestrator.New()

	cfg, err := orch.LoadConfiguration(configPath)
	if err != nil {
		return err
	}

	engine := templateEngineFor(cfg.TemplatesLocation)

	fmt.Println("Built-in templates:")
	for _, name := range engine.Builtin() {
		fmt.Printf("  - %s\n", name)
	}

	if cfg.TemplatesLocation == "" {
		return nil
	}

	fmt.Println()
	fmt.Printf("Overrides (%s):\n", contractPath(cfg.TemplatesLocation))

	overrides, err := engine.Overrides()
	if err != nil {
		fmt.Println("  (directory not readable)")
		return nil
	}
	if len(overrides) == 0 {
		fmt.Println("  (none found)")
		return nil
	}
	for _, name := range overrides {
		fmt.Printf("  - %s\n", name)
	}

	return nil
}

// templateEngineFor builds an engine over the real filesystem for listings
func templateEngineFor(location string) *template.Engine {
	return template.NewEngine(location, afero.NewOsFs())
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	// Add trailing slash to home directory for proper matching
	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	// Check if path starts with home directory
	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		// Replace home directory with ~
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
