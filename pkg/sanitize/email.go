package sanitize

import (
	"regexp"
	"strings"
)

var (
	emailLocalInvalid = regexp.MustCompile("[^a-zA-Z0-9!#$%&'*+/=?^_`{|}~.\\-]")
	emailLabelInvalid = regexp.MustCompile(`[^a-zA-Z0-9\-]`)
)

// Email strips characters that cannot appear in an address and returns "" when
// what remains is not a plausible address (local@label.label).
func Email(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 6 {
		return ""
	}
	at := strings.Index(trimmed, "@")
	if at < 1 {
		return ""
	}

	local := emailLocalInvalid.ReplaceAllString(trimmed[:at], "")
	if local == "" {
		return ""
	}

	domain := trimmed[at+1:]
	if strings.Contains(domain, "..") {
		return ""
	}
	domain = strings.Trim(domain, " \t\n\r\x00\x0B.")
	if domain == "" {
		return ""
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return ""
	}
	clean := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.Trim(label, " \t\n\r\x00\x0B-")
		label = emailLabelInvalid.ReplaceAllString(label, "")
		if label != "" {
			clean = append(clean, label)
		}
	}
	if len(clean) < 2 {
		return ""
	}

	return local + "@" + strings.Join(clean, ".")
}
