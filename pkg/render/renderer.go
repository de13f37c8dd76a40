package render

import (
	"context"
)

// Renderer turns a built Form into bytes (HTML markup, an encoded
// submission, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form) ([]byte, error)
}
