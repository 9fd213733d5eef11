package pagefill

import (
	"io/fs"

	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/pdf"
)

// ExportTemplates exposes the built-in batch page and theme templates so
// callers can reuse or override them without importing pkg/export.
func ExportTemplates() fs.FS {
	return export.TemplatesFS()
}

// DocumentTemplates exposes the HTML shell used for PDF rendering.
func DocumentTemplates() fs.FS {
	return pdf.TemplatesFS()
}
