package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/components/*.tmpl templates/chrome/*.tmpl
var embeddedTemplates embed.FS

// Template paths inside TemplatesFS.
const (
	FormTemplate    = "templates/form.tmpl"
	AddRowTemplate  = "templates/chrome/add-row.tmpl"
	EditRowTemplate = "templates/chrome/edit-row.tmpl"
)

// TemplatesFS exposes the embedded template bundle so themes can copy and
// adapt it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
