package orchestrator

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateInvalid      = errors.New("template error")
	ErrGenerationFailed     = errors.New("generation error")
	ErrOutputFailed         = errors.New("output error")
	ErrValidationFailed     = errors.New("validation error")
)

// WizardError represents a structured error with actionable guidance
type WizardError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *WizardError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *WizardError) Unwrap() error {
	return e.Cause
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *WizardError {
	guidance := "Check your configuration file syntax and ensure all paths exist. " +
		"Use 'toolwizard --config /path/to/config.toml' to specify a different config file."

	if strings.Contains(message, "permission") {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read/write access to ~/.config/toolwizard/"
	} else if strings.Contains(message, "not found") || strings.Contains(message, "does not exist") {
		guidance = "The configuration file doesn't exist. Create ~/.config/toolwizard/config.toml " +
			"or specify a different path with --config flag."
	}

	return &WizardError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewTemplateError(templateName string, cause error) *WizardError {
	message := fmt.Sprintf("failed to process template '%s'", templateName)
	errType := ErrTemplateInvalid
	guidance := fmt.Sprintf("Template '%s' could not be processed. Run 'toolwizard templates' to list "+
		"the bundled names and any overrides.", templateName)

	if cause != nil && strings.Contains(cause.Error(), "not found") {
		errType = ErrTemplateNotFound
		guidance = fmt.Sprintf("Template '%s' ships inside the binary; run 'toolwizard templates' to list "+
			"the available names. A templates_location override must use the same filename.", templateName)
	} else if cause != nil && strings.Contains(cause.Error(), "failed to read") {
		guidance = fmt.Sprintf("An override for '%s' exists in templates_location but could not be read. "+
			"Check the file permissions, or remove the override to fall back to the bundled copy.", templateName)
	}

	return &WizardError{
		Type:     errType,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewGenerationError(path string, cause error) *WizardError {
	message := fmt.Sprintf("failed to generate files under '%s'", path)
	guidance := "Ensure the output location is writable and has free space. " +
		"Pick a different destination at the output path question to work around it."

	if cause != nil {
		if strings.Contains(cause.Error(), "permission") {
			guidance = fmt.Sprintf("Permission denied writing to '%s'. Ensure you have write access "+
				"to the output directory and all parent directories.", path)
		} else if strings.Contains(cause.Error(), "not a directory") {
			guidance = fmt.Sprintf("A file is in the way at '%s'. Remove it or choose a different "+
				"output path.", path)
		}
	}

	return &WizardError{
		Type:     ErrGenerationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *WizardError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == "clipboard" {
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment, " +
			"or disable copy_path in the configuration; the generated files are unaffected."
	}

	return &WizardError{
		Type:     ErrOutputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *WizardError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "name":
		guidance = "Tool names use letters and spaces only, between 3 and 50 characters, " +
			"and must not be a reserved MATLAB keyword."
	case "output_path":
		guidance = "The output path must point to a directory, or to a missing path whose " +
			"creation was approved."
	case "input_file":
		guidance = "The input file must exist, be a regular readable file, and carry the " +
			"configured data extension."
	case "config":
		guidance = "Run the wizard again and confirm tool creation to collect a configuration."
	}

	return &WizardError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    nil,
	}
}

// Recovery strategies

// RecoverFromError attempts to recover from common errors with fallback strategies
func RecoverFromError(err error) error {
	if err == nil {
		return nil
	}

	var wizErr *WizardError
	if !errors.As(err, &wizErr) {
		// Wrap unknown errors
		return &WizardError{
			Type:     errors.New("unknown error"),
			Message:  err.Error(),
			Guidance: "An unexpected error occurred. Please check your inputs and try again.",
			Cause:    err,
		}
	}

	// Apply recovery strategies based on error type
	switch wizErr.Type {
	case ErrConfigurationInvalid:
		return recoverFromConfigError(wizErr)
	case ErrOutputFailed:
		return recoverFromOutputError(wizErr)
	default:
		return wizErr
	}
}

func recoverFromConfigError(err *WizardError) error {
	// Try to create default config directory if it doesn't exist
	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return err // Can't recover
	}

	configDir := fmt.Sprintf("%s/.config/toolwizard", homeDir)
	if _, statErr := os.Stat(configDir); os.IsNotExist(statErr) {
		if mkdirErr := os.MkdirAll(configDir, 0755); mkdirErr != nil {
			// Add recovery attempt info to guidance
			err.Guidance += fmt.Sprintf("\n\nAttempted to create config directory '%s' but failed: %v",
				configDir, mkdirErr)
			return err
		}

		// Successfully created directory
		err.Guidance += fmt.Sprintf("\n\nCreated config directory '%s'. You can now create a config.toml file there.",
			configDir)
	}

	return err
}

func recoverFromOutputError(err *WizardError) error {
	// For clipboard errors, note that the generated files survive
	if strings.Contains(err.Message, "clipboard") {
		err.Guidance += "\n\nThe tool files were generated; only the clipboard copy failed."
	}
	return err
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var wizErr *WizardError
	if !errors.As(err, &wizErr) {
		return false
	}

	// Clipboard failures degrade to a warning; generation already succeeded
	switch wizErr.Type {
	case ErrOutputFailed:
		return strings.Contains(wizErr.Message, "clipboard")
	default:
		return false
	}
}
