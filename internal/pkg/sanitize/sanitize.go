// Package sanitize strips markup from user-supplied text fields.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element and trims surrounding whitespace. Entities
// produced by the policy are decoded back so plain text round-trips.
func Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(input)))
}
