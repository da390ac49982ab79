package markup

import (
	"regexp"
	"strings"
)

var (
	anyTagPattern = regexp.MustCompile(`<[^>]+>`)
	htmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// EscapeHTML escapes &, < and >. Quotes are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// StripTags removes anything that looks like a tag
func StripTags(s string) string {
	return anyTagPattern.ReplaceAllString(s, "")
}

// CleanName turns a marked-up display name into plain text
func CleanName(name string) string {
	return strings.TrimSpace(StripTags(name))
}
