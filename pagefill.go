// Package pagefill fills placeholder templates with values and exports the
// result as HTML, inlined HTML, email markup or PDF. The root package
// re-exports the common entry points; the building blocks live under pkg/.
package pagefill

import (
	"context"

	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/extract"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/render"
	"github.com/goliatone/go-pagefill/pkg/store"
	theme "github.com/goliatone/go-theme"
)

// Request aliases export.Request.
type Request = export.Request

// Result aliases export.Result.
type Result = export.Result

// Values aliases export.Values.
type Values = export.Values

// Format aliases export.Format.
type Format = export.Format

// Template aliases store.Template.
type Template = store.Template

// Delimiters aliases placeholder.Delimiters.
type Delimiters = placeholder.Delimiters

// ExtractResult aliases extract.Result.
type ExtractResult = extract.Result

// NewPipeline exposes the export pipeline constructor from the top-level
// module.
func NewPipeline(options ...export.Option) *export.Pipeline {
	return export.New(options...)
}

// Export runs a single export with a pipeline built from options. Callers
// exporting repeatedly should keep a pipeline from NewPipeline instead.
func Export(ctx context.Context, req Request, options ...export.Option) (Result, error) {
	return export.New(options...).Export(ctx, req)
}

// Fill substitutes values into html using delims. It is the simplest entry
// point for callers that only need the filled markup.
func Fill(html string, values map[string]string, delims Delimiters) (string, error) {
	return render.Render(html, values, delims)
}

// ExtractProject walks a serialised editor project and reports the
// placeholder keys it references.
func ExtractProject(ctx context.Context, project []byte, delims Delimiters, options ...extract.Option) (ExtractResult, error) {
	return extract.ExtractProject(ctx, project, delims, options...)
}

// WithThemeSelector passes a go-theme selector through to the pipeline so
// theme tokens are prepended to exported stylesheets.
func WithThemeSelector(selector theme.ThemeSelector) export.Option {
	return export.WithThemeSelector(selector)
}
