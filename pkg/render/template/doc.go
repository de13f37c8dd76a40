// Package template defines the template engine seam used by the HTML
// renderers and the HTTP page shell.
package template
