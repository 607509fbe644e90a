// ABOUTME: Markup neutralization for user-entered form text
// ABOUTME: Strips active HTML content before a value reaches a draft or the network
package validate

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize strips every HTML element from s. Entities that bluemonday
// escaped are restored only while the result stays free of markup, so
// "O'Brien & Sons" survives unchanged and "&lt;script&gt;" stays escaped.
func Sanitize(s string) string {
	if !strings.ContainsAny(s, "<>&'\"") {
		return s
	}
	cleaned := strict.Sanitize(s)
	unescaped := html.UnescapeString(cleaned)
	if strings.ContainsAny(unescaped, "<>") {
		return cleaned
	}
	return unescaped
}
