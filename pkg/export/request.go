package export

import (
	"strings"

	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/store"
)

// Format names an export handler.
type Format string

const (
	FormatHTML       Format = "html"
	FormatInlineHTML Format = "inline-html"
	FormatEmail      Format = "email"
	FormatPDF        Format = "pdf"
)

// DefaultFormat is used when a request leaves Format empty.
const DefaultFormat = FormatHTML

// ParseFormat normalises raw. It does not check that a handler exists.
func ParseFormat(raw string) Format {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultFormat
	}
	return Format(trimmed)
}

// Request describes one export.
type Request struct {
	// Ref selects the template from the pipeline's store. Ignored when
	// Template is set.
	Ref store.Ref

	// Template bypasses the store for callers that already hold the record.
	Template *store.Template

	// Values carries one value set or a batch.
	Values Values

	// Format selects the handler; empty means DefaultFormat.
	Format Format

	// Delimiters overrides the template's bracket pair.
	Delimiters *placeholder.Delimiters

	// Orientation and PageSize apply to pdf only.
	Orientation pdf.Orientation
	PageSize    pdf.PageSize

	// ThemeName and ThemeVariant select theme tokens when the pipeline has
	// a theme selector.
	ThemeName    string
	ThemeVariant string
}

// Job is the fully resolved input a Handler receives.
type Job struct {
	Template    store.Template
	HTML        []string
	CSS         string
	Batch       bool
	Orientation pdf.Orientation
	PageSize    pdf.PageSize
}

// Filename suggests a download name using the template slug.
func (j Job) Filename(ext string) string {
	base := strings.TrimSpace(j.Template.Slug)
	if base == "" {
		base = "template"
	}
	return base + ext
}
