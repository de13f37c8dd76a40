package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded
	// payloads, the shape a browser posts.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatJSON emits a flat JSON object of the submitted values.
	OutputFormatJSON OutputFormat = "json"
)

// Theme captures optional message prefixes.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
