package orchestrator

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"toolwizard-cli/internal/interfaces"
)

// OutputHandler implements the OutputHandler interface on an afero
// filesystem
type OutputHandler struct {
	fs afero.Fs
}

// NewOutputHandler creates a new output handler
func NewOutputHandler(fs afero.Fs) interfaces.OutputHandler {
	return &OutputHandler{fs: fs}
}

// EnsureDir creates the directory and any missing parents
func (h *OutputHandler) EnsureDir(path string) error {
	return h.fs.MkdirAll(path, 0755)
}

// WriteFile writes content to the specified file path
func (h *OutputHandler) WriteFile(path string, content string) error {
	return afero.WriteFile(h.fs, path, []byte(content), 0644)
}

// CopyToClipboard copies text to the system clipboard
func (h *OutputHandler) CopyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
