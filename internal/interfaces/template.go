package interfaces

// TemplateEngine locates template text and substitutes placeholder
// tokens. Substitution is literal: every occurrence of a token is
// replaced verbatim, with no expression language of any kind.
type TemplateEngine interface {
	// Lookup returns the template text registered under name
	Lookup(name string) (string, error)

	// Render replaces each token in the template with its value
	Render(template string, values map[string]string) string
}
