// Package render fills flat HTML templates by substituting values for
// placeholder tokens. It is pure token substitution: there are no
// conditionals, loops or expressions, and placeholders without a value are
// left in place so partial renders can be previewed.
package render

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-pagefill/pkg/placeholder"
)

// Renderer substitutes values into HTML. The zero value is not usable; build
// one with New. A Renderer holds no per-call state and is safe for
// concurrent use.
type Renderer struct {
	cache     *placeholder.Cache
	sanitizer Sanitizer
	decode    bool
}

// New constructs a Renderer. By default values are inserted as given and the
// filled output is percent-decoded once.
func New(options ...Option) *Renderer {
	r := &Renderer{decode: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

var defaultRenderer = New()

// Render fills html with the package default renderer.
func Render(html string, values map[string]string, delims placeholder.Delimiters) (string, error) {
	return defaultRenderer.Render(html, values, delims)
}

// Render replaces every occurrence of each key in values with its value.
// Keys are applied in sorted order so the output never depends on map
// iteration. Values are inserted literally; escaping them for HTML is the
// caller's concern unless a Sanitizer is configured. The decode step runs
// exactly once, after all substitutions.
func (r *Renderer) Render(html string, values map[string]string, delims placeholder.Delimiters) (string, error) {
	if err := delims.Validate(); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	out := html
	for _, key := range sortedKeys(values) {
		m, err := r.matcher(delims, key)
		if err != nil {
			return "", fmt.Errorf("render: key %q: %w", key, err)
		}
		value := values[key]
		if r.sanitizer != nil {
			value = r.sanitizer.Sanitize(value)
		}
		out = m.ReplaceAll(out, value)
	}

	if r.decode {
		out = PercentDecode(out)
	}
	return out, nil
}

// RenderAll fills html once per values set, preserving input order.
func (r *Renderer) RenderAll(html string, sets []map[string]string, delims placeholder.Delimiters) ([]string, error) {
	out := make([]string, 0, len(sets))
	for i, values := range sets {
		filled, err := r.Render(html, values, delims)
		if err != nil {
			return nil, fmt.Errorf("render: values set %d: %w", i, err)
		}
		out = append(out, filled)
	}
	return out, nil
}

func (r *Renderer) matcher(d placeholder.Delimiters, key string) (*placeholder.Matcher, error) {
	if r.cache != nil {
		return r.cache.ForKey(d, key)
	}
	return placeholder.CachedForKey(d, key)
}

func sortedKeys(values map[string]string) []string {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
