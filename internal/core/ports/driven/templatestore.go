package driven

// Output template names.
const (
	TemplatePlain    = "plain"
	TemplateMarkdown = "markdown"
)

// TemplateStore provides user-editable text/template sources for card output.
type TemplateStore interface {
	// Load returns the template source for name.
	// Unknown names return an error; known names fall back to built-in defaults.
	Load(name string) (string, error)

	// Names returns the template names that are always available.
	Names() []string

	// Dir returns the directory templates are read from.
	Dir() string
}
