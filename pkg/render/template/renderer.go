package template

import (
	"io"
)

// TemplateRenderer renders a named template. name may omit the engine's
// file extension. The optional writers receive the rendered output in
// addition to the returned string.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}
