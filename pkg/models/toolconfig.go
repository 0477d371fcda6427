package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Name length bounds enforced during collection and by the downstream
// validator. Structural validation itself carries no length rule.
const (
	MinNameLength = 3
	MaxNameLength = 50
)

// ToolConfig represents one collected wizard run: what to create, where,
// and from which optional input data file
type ToolConfig struct {
	Name       string
	CreateTool bool
	OutputPath string
	InputFile  string

	// Errors holds the violations found by the most recent Validate
	// call. Transient state, replaced wholesale on every call.
	Errors []string
}

// Validate rebuilds Errors from the current field values and reports
// whether the config passes structural validation. It performs no I/O
// and is safe to call repeatedly; each call starts from a fresh slice.
func (c *ToolConfig) Validate() bool {
	c.Errors = c.structuralProblems()
	return len(c.Errors) == 0
}

// structuralProblems returns the rule violations in a fixed order. The
// letters check runs against the name with spaces squeezed out, so an
// all-space or empty name fails it together with the empty check.
func (c *ToolConfig) structuralProblems() []string {
	var problems []string
	if !isAlpha(strings.ReplaceAll(c.Name, " ", "")) {
		problems = append(problems, "only letters allowed")
	}
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "empty string")
	}
	return problems
}

// ShouldCreate reports whether the user confirmed tool creation
func (c *ToolConfig) ShouldCreate() bool {
	return c.CreateTool
}

// Summary formats the three collected values for the post-collection recap
func (c *ToolConfig) Summary() string {
	input := c.InputFile
	if input == "" {
		input = "(none)"
	}
	return fmt.Sprintf("Tool name:   %s\nOutput path: %s\nInput file:  %s", c.Name, c.OutputPath, input)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
