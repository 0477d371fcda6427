package interfaces

// OutputHandler manages filesystem writes and the clipboard convenience
type OutputHandler interface {
	// EnsureDir creates the directory and any missing parents
	EnsureDir(path string) error

	// WriteFile writes content to the specified file path
	WriteFile(path string, content string) error

	// CopyToClipboard copies text to the system clipboard
	CopyToClipboard(text string) error
}
