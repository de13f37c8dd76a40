package sanitize

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	lineWhitespace = regexp.MustCompile(`[\r\n\t ]+`)
	octets         = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
)

func stripper() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Text reduces raw to single-line plain text: markup, percent-encoded octets
// and control characters are removed and whitespace runs collapse to one
// space.
func Text(raw string) string {
	out := stripMarkup(raw)
	out = octets.ReplaceAllString(out, "")
	out = lineWhitespace.ReplaceAllString(out, " ")
	out = dropControl(out, false)
	return strings.TrimSpace(out)
}

// Textarea strips markup and control characters but keeps line breaks.
func Textarea(raw string) string {
	out := strings.ReplaceAll(raw, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = stripMarkup(out)
	out = dropControl(out, true)
	return strings.TrimSpace(out)
}

// stripMarkup removes every tag. The policy escapes the remaining text; it is
// decoded back because values are stored as plain text and escaped on output.
// Decoding can surface entity-encoded tags, so the pass repeats until stable.
// Every changing pass shortens the text; a pass that grows it is answered
// with the still-escaped policy output.
func stripMarkup(raw string) string {
	out := strings.ToValidUTF8(raw, "")
	for out != "" {
		sanitized := stripper().Sanitize(out)
		next := html.UnescapeString(sanitized)
		if next == out {
			break
		}
		if len(next) >= len(out) {
			return sanitized
		}
		out = next
	}
	return out
}

func dropControl(s string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		if keepNewlines && (r == '\n' || r == '\t') {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
