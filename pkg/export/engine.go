package export

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-pagefill/pkg/render/template"
	"github.com/goliatone/go-pagefill/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the page wrapper and theme templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

var (
	engineOnce    sync.Once
	defaultEngine template.TemplateRenderer
	engineErr     error
)

// DefaultEngine returns the shared engine over TemplatesFS.
func DefaultEngine() (template.TemplateRenderer, error) {
	engineOnce.Do(func() {
		defaultEngine, engineErr = gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	})
	return defaultEngine, engineErr
}
