package sanitize

import (
	"net/url"
	"regexp"
	"strings"
)

// AllowedSchemes lists the URL schemes URL keeps. Anything else is dropped.
var AllowedSchemes = []string{
	"http", "https", "ftp", "ftps", "mailto", "news", "irc", "irc6", "ircs",
	"gopher", "nntp", "feed", "telnet", "mms", "rtsp", "sms", "svn", "tel",
	"fax", "xmpp", "webcal", "urn",
}

var (
	urlInvalidChars = regexp.MustCompile(`[^a-zA-Z0-9\-~+_.?#=!&;,/:%@$|*'()\[\]\x{80}-\x{10FFFF}]`)
	urlScheme       = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*):`)
	scriptFile      = regexp.MustCompile(`^[a-zA-Z0-9\-]+?\.(php|html?)`)
)

// URL returns raw as a safe URL or "" when it cannot be made safe. Scheme-less
// host names are prefixed with http://; relative references starting with /,
// # or ? are kept as they are.
func URL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, " ", "%20")
	trimmed = urlInvalidChars.ReplaceAllString(trimmed, "")
	if trimmed == "" {
		return ""
	}

	if match := urlScheme.FindStringSubmatch(trimmed); match != nil {
		if !schemeAllowed(match[1]) {
			return ""
		}
	} else if !strings.HasPrefix(trimmed, "/") &&
		!strings.HasPrefix(trimmed, "#") &&
		!strings.HasPrefix(trimmed, "?") &&
		!scriptFile.MatchString(trimmed) {
		trimmed = "http://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && !schemeAllowed(parsed.Scheme) {
		return ""
	}
	return parsed.String()
}

func schemeAllowed(scheme string) bool {
	lower := strings.ToLower(scheme)
	for _, allowed := range AllowedSchemes {
		if lower == allowed {
			return true
		}
	}
	return false
}
