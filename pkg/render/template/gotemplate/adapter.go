package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pagefill/pkg/render/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tpl"

// Option configures an Engine before construction.
type Option func(*Engine)

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// Engine satisfies template.TemplateRenderer with a pongo2 template set.
// Parsed templates are cached by path; rendering is safe for concurrent use.
type Engine struct {
	files fs.FS
	set   *pongo2.TemplateSet

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{cache: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.files == nil {
		return nil, errors.New("gotemplate: a template fs.FS is required")
	}

	e.set = pongo2.NewSet("pagefill", pongo2.NewFSLoader(e.files))
	registerFilters()
	return e, nil
}

// RenderTemplate renders the template stored at name, appending
// DefaultExtension when name has none.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, DefaultExtension) {
		path += DefaultExtension
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	if data == nil {
		data = map[string]any{}
	}

	rendered, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

var filtersOnce sync.Once

// pongo2 filters are process-wide.
func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("cssvalue") {
			_ = pongo2.RegisterFilter("cssvalue", filterCSSValue)
		}
	})
}

// filterCSSValue replaces characters that could end a declaration, a block
// or a <style> element with spaces, then collapses whitespace runs.
func filterCSSValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(CSSValue(in.String())), nil
}

// CSSValue is the function behind the cssvalue filter.
func CSSValue(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\\':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}
