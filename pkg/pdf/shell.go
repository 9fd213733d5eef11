package pdf

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-pagefill/pkg/render/template"
	"github.com/goliatone/go-pagefill/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in document shell templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

var (
	shellOnce   sync.Once
	shellEngine template.TemplateRenderer
	shellErr    error
)

func defaultShellEngine() (template.TemplateRenderer, error) {
	shellOnce.Do(func() {
		shellEngine, shellErr = gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	})
	return shellEngine, shellErr
}

// Shell wraps a document body and stylesheet in a complete HTML page, the
// form the browser loads before printing.
func Shell(engine template.TemplateRenderer, doc Document, title string) (string, error) {
	if engine == nil {
		var err error
		engine, err = defaultShellEngine()
		if err != nil {
			return "", fmt.Errorf("pdf: shell engine: %w", err)
		}
	}
	out, err := engine.RenderTemplate("document", map[string]any{
		"title": title,
		"css":   doc.CSS,
		"html":  doc.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("pdf: render shell: %w", err)
	}
	return out, nil
}
