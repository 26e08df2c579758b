package web

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)

	// linkRegex matches URLs with or without a scheme ("example.com/path").
	linkRegex = regexp.MustCompile(`(?i)((?:https?|ftp)://)?([\w-]+(?:\.[\w-]+)+)([\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?`)

	schemeRegex = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)
)

// StripEmails removes e-mail addresses so their domains are not taken for links.
func StripEmails(text string) string {
	return emailRegex.ReplaceAllString(text, "")
}

// ExtractURL returns the first link in text, or "" when there is none.
// Links without a scheme are prefixed with https://.
func ExtractURL(text string) string {
	match := linkRegex.FindString(StripEmails(text))
	if match == "" {
		return ""
	}
	if !schemeRegex.MatchString(match) {
		match = "https://" + match
	}
	return match
}

// DomainOf returns the host of rawURL without a leading "www.".
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// resolveReference resolves ref against base. Absolute refs are returned as-is.
func resolveReference(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}
