// Package privacy scrubs credentials and query strings from messages before
// they leave the process as telemetry.
package privacy

import (
	"net/url"
	"regexp"
	"strings"
)

const redacted = "redacted"

var (
	urlPattern   = regexp.MustCompile(`\bhttps?://[^\s"'<>]+`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// ScrubMessage redacts every URL and email address found in message.
func ScrubMessage(message string) string {
	if message == "" {
		return message
	}
	// URLs first so userinfo is not mistaken for an email address.
	var urls []string
	scrubbed := urlPattern.ReplaceAllStringFunc(message, func(raw string) string {
		trimmed := strings.TrimRight(raw, ".,;:)]")
		urls = append(urls, RedactURL(trimmed))
		return "\x00" + raw[len(trimmed):]
	})
	scrubbed = emailPattern.ReplaceAllString(scrubbed, "[email]")
	for _, u := range urls {
		scrubbed = strings.Replace(scrubbed, "\x00", u, 1)
	}
	return scrubbed
}

// RedactURL removes userinfo and replaces the query and fragment of rawURL.
// Scheme, host and path are kept because they identify the remote image.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "[url]"
	}
	u.User = nil
	if u.RawQuery != "" {
		u.RawQuery = redacted
	}
	if u.Fragment != "" {
		u.Fragment = redacted
		u.RawFragment = ""
	}
	return u.String()
}
