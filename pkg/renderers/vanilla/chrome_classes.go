package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassRow         ChromeClass = "form-field term-meta-wrap"
	ClassScope       ChromeClass = "term-meta-wrap"
	ClassDescription ChromeClass = "description"
)

// ChromeClasses overrides the classes written by the row templates. Empty
// values fall back to the defaults.
type ChromeClasses struct {
	Row         string
	Scope       string
	Description string
}

func (c ChromeClasses) resolve() map[string]string {
	return map[string]string{
		"row":         orDefault(c.Row, ClassRow),
		"scope":       orDefault(c.Scope, ClassScope),
		"description": orDefault(c.Description, ClassDescription),
	}
}

func orDefault(value string, fallback ChromeClass) string {
	if value == "" {
		return string(fallback)
	}
	return value
}
