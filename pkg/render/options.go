package render

import "github.com/goliatone/go-pagefill/pkg/placeholder"

// Option customises a Renderer.
type Option func(*Renderer)

// WithSanitizer cleans every value before it is substituted. Pass
// StrictSanitizer() to strip markup entirely or UGCSanitizer() to keep safe
// formatting tags.
func WithSanitizer(s Sanitizer) Option {
	return func(r *Renderer) {
		r.sanitizer = s
	}
}

// WithoutDecode disables the trailing percent-decode step, for callers whose
// values never crossed an HTTP boundary.
func WithoutDecode() Option {
	return func(r *Renderer) {
		r.decode = false
	}
}

// WithCache uses a dedicated matcher cache instead of the package default.
func WithCache(cache *placeholder.Cache) Option {
	return func(r *Renderer) {
		r.cache = cache
	}
}
