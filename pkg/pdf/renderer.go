package pdf

import "context"

// Document is the input of one PDF render.
type Document struct {
	HTML        string
	CSS         string
	Orientation Orientation
	PageSize    PageSize
}

// Renderer converts a document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Func adapts a function to Renderer.
type Func func(ctx context.Context, doc Document) ([]byte, error)

// Render calls f(ctx, doc).
func (f Func) Render(ctx context.Context, doc Document) ([]byte, error) {
	return f(ctx, doc)
}
