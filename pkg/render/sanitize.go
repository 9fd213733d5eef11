package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans a value before substitution. *bluemonday.Policy satisfies
// it.
type Sanitizer interface {
	Sanitize(s string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(string) string

// Sanitize calls f(s).
func (f SanitizerFunc) Sanitize(s string) string {
	return f(s)
}

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
	ugcOnce      sync.Once
	ugcPolicy    *bluemonday.Policy
)

// StrictSanitizer strips all markup and escapes the remaining text.
func StrictSanitizer() Sanitizer {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// UGCSanitizer keeps common formatting markup (links, emphasis, lists,
// tables) and drops scripts, handlers and unsafe URLs.
func UGCSanitizer() Sanitizer {
	ugcOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("style").Globally()
		policy.AllowStyles("color", "background-color", "font-weight", "font-style", "text-align", "text-decoration").Globally()
		ugcPolicy = policy
	})
	return ugcPolicy
}
