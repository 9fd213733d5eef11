package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagefill/pkg/inline"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/render/template"
)

// Handler produces the output of one format.
type Handler interface {
	Name() Format
	ContentType() string
	Export(ctx context.Context, job Job) (Result, error)
}

// Validator is implemented by handlers that check format-specific request
// options. The pipeline calls it before any rendering happens.
type Validator interface {
	Validate(job Job) error
}

// DefaultRegistry registers the html, inline-html, email and pdf handlers.
// A nil engine uses DefaultEngine for the pdf page wrapper.
func DefaultRegistry(inliner inline.Inliner, renderer pdf.Renderer, engine template.TemplateRenderer) *Registry {
	registry := NewRegistry()
	registry.MustRegister(HTMLHandler{})
	registry.MustRegister(NewInlineHandler(FormatInlineHTML, inliner))
	registry.MustRegister(NewInlineHandler(FormatEmail, inliner))
	registry.MustRegister(NewPDFHandler(renderer, engine))
	return registry
}

// HTMLHandler returns the rendered documents and the stylesheet unchanged.
type HTMLHandler struct{}

var _ Handler = HTMLHandler{}

func (HTMLHandler) Name() Format        { return FormatHTML }
func (HTMLHandler) ContentType() string { return "application/json" }

func (HTMLHandler) Export(_ context.Context, job Job) (Result, error) {
	return Result{
		ContentType: "application/json",
		HTML:        append([]string{}, job.HTML...),
		CSS:         job.CSS,
	}, nil
}

// InlineHandler merges the stylesheet into every document. One failure
// fails the whole export.
type InlineHandler struct {
	name    Format
	inliner inline.Inliner
}

var _ Handler = (*InlineHandler)(nil)

// NewInlineHandler registers an inliner under name. A nil inliner uses
// inline.New().
func NewInlineHandler(name Format, inliner inline.Inliner) *InlineHandler {
	if inliner == nil {
		inliner = inline.New()
	}
	return &InlineHandler{name: name, inliner: inliner}
}

func (h *InlineHandler) Name() Format        { return h.name }
func (h *InlineHandler) ContentType() string { return "application/json" }

func (h *InlineHandler) Export(ctx context.Context, job Job) (Result, error) {
	out := make([]string, len(job.HTML))
	for i, doc := range job.HTML {
		inlined, err := h.inliner.Inline(ctx, doc, job.CSS)
		if err != nil {
			return Result{}, newError("inline", i, ErrInliningFailed, err)
		}
		if inlined == "" && strings.TrimSpace(doc) != "" {
			return Result{}, newError("inline", i, ErrInliningFailed, errors.New("inliner returned no output"))
		}
		out[i] = inlined
	}
	return Result{
		ContentType: "application/json",
		HTML:        out,
	}, nil
}

// PDFHandler prints the rendered documents into one PDF. Batches are
// wrapped one document per page and printed with a single renderer call.
type PDFHandler struct {
	renderer pdf.Renderer
	engine   template.TemplateRenderer
}

var (
	_ Handler   = (*PDFHandler)(nil)
	_ Validator = (*PDFHandler)(nil)
)

// NewPDFHandler wraps renderer. A nil renderer uses pdf.NewChrome().
func NewPDFHandler(renderer pdf.Renderer, engine template.TemplateRenderer) *PDFHandler {
	if renderer == nil {
		renderer = pdf.NewChrome()
	}
	return &PDFHandler{renderer: renderer, engine: engine}
}

func (h *PDFHandler) Name() Format        { return FormatPDF }
func (h *PDFHandler) ContentType() string { return "application/pdf" }

// Validate rejects unknown orientations and page sizes.
func (h *PDFHandler) Validate(job Job) error {
	if _, err := pdf.ParseOrientation(string(job.Orientation)); err != nil {
		return err
	}
	return job.PageSize.Validate()
}

func (h *PDFHandler) Export(ctx context.Context, job Job) (Result, error) {
	if len(job.HTML) == 0 {
		return Result{}, newError("pdf", -1, ErrNothingToRender, nil)
	}
	orientation, err := pdf.ParseOrientation(string(job.Orientation))
	if err != nil {
		return Result{}, err
	}

	body := job.HTML[0]
	if job.Batch {
		body, err = h.paginate(job.HTML)
		if err != nil {
			return Result{}, newError("pdf", -1, ErrPDFGenerationFailed, err)
		}
	}

	data, err := h.renderer.Render(ctx, pdf.Document{
		HTML:        body,
		CSS:         job.CSS,
		Orientation: orientation,
		PageSize:    job.PageSize,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return Result{}, newError("pdf", -1, ErrPDFGenerationFailed, err)
	}
	if len(data) == 0 {
		return Result{}, newError("pdf", -1, ErrPDFGenerationFailed, pdf.ErrEmptyOutput)
	}

	return Result{
		ContentType: "application/pdf",
		PDF:         data,
		Filename:    job.Filename(".pdf"),
	}, nil
}

// paginate wraps every document in a page container; each page breaks
// after itself except the last.
func (h *PDFHandler) paginate(docs []string) (string, error) {
	engine := h.engine
	if engine == nil {
		var err error
		engine, err = DefaultEngine()
		if err != nil {
			return "", err
		}
	}
	return engine.RenderTemplate("pages", map[string]any{"documents": docs})
}
