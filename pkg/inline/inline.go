// Package inline moves stylesheet rules into style attributes so that
// documents survive email clients which drop <style> blocks.
package inline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/inliner"
)

// ErrInline wraps every failure reported by an Inliner.
var ErrInline = errors.New("inline: failed to inline css")

// Inliner merges css into the elements of html.
type Inliner interface {
	Inline(ctx context.Context, html, css string) (string, error)
}

// Func adapts a function to Inliner.
type Func func(ctx context.Context, html, css string) (string, error)

// Inline calls f(ctx, html, css).
func (f Func) Inline(ctx context.Context, html, css string) (string, error) {
	return f(ctx, html, css)
}

// Douceur inlines with github.com/aymerick/douceur.
type Douceur struct{}

var _ Inliner = Douceur{}

// New returns the default inliner.
func New() Inliner {
	return Douceur{}
}

// Inline appends css as a <style> block and lets douceur apply it. Rules
// that cannot be inlined (media queries, pseudo classes) stay in a <style>
// element in the output.
func (Douceur) Inline(ctx context.Context, html, css string) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	source := Combine(html, css)
	out, err := inliner.Inline(source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInline, err)
	}
	return out, nil
}

// Combine joins markup and stylesheet the way the inliner expects them.
func Combine(html, css string) string {
	if strings.TrimSpace(css) == "" {
		return html
	}
	return html + "<style>" + css + "</style>"
}
