package store

import (
	"strings"
	"time"

	"github.com/goliatone/go-pagefill/pkg/placeholder"
)

// Type classifies what a template was designed for.
type Type string

const (
	TypeHTML  Type = "html"
	TypeEmail Type = "email"
	TypeWeb   Type = "web"
)

// Template is a stored document: markup, stylesheet and the placeholder
// metadata captured when it was designed.
type Template struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Slug        string              `json:"slug" yaml:"slug"`
	Type        Type                `json:"temp_type,omitempty" yaml:"temp_type,omitempty"`
	HTML        string              `json:"html" yaml:"html"`
	CSS         string              `json:"css,omitempty" yaml:"css,omitempty"`
	Brackets    []string            `json:"brackets,omitempty" yaml:"brackets,omitempty"`
	Fields      map[string][]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Values      map[string]string   `json:"values,omitempty" yaml:"values,omitempty"`
	CreatedAt   time.Time           `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   time.Time           `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Delimiters returns the template's bracket pair, or the default pair when
// Brackets does not hold exactly two entries.
func (t Template) Delimiters() placeholder.Delimiters {
	return placeholder.FromSlice(t.Brackets)
}

// Ref returns the reference that resolves to t.
func (t Template) Ref() Ref {
	return Ref{ID: t.ID, Slug: t.Slug}
}

func (t Template) clone() Template {
	out := t
	out.Brackets = append([]string(nil), t.Brackets...)
	if t.Fields != nil {
		out.Fields = make(map[string][]string, len(t.Fields))
		for owner, keys := range t.Fields {
			out.Fields[owner] = append([]string(nil), keys...)
		}
	}
	if t.Values != nil {
		out.Values = make(map[string]string, len(t.Values))
		for k, v := range t.Values {
			out.Values[k] = v
		}
	}
	return out
}

func (t *Template) normalise() {
	t.ID = strings.TrimSpace(t.ID)
	t.Slug = strings.TrimSpace(t.Slug)
	t.Name = strings.TrimSpace(t.Name)
	if t.Type == "" {
		t.Type = TypeHTML
	}
}
