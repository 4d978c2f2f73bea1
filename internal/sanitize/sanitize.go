// Package sanitize cleans free-text user input before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every HTML element and comment, keeping only text content.
var strict = bluemonday.StrictPolicy()

// Clean strips markup (tags and HTML comments) from free-text input and trims
// surrounding whitespace. An empty or all-markup input comes back as "".
func Clean(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
