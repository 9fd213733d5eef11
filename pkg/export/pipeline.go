package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pagefill/pkg/inline"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/render"
	"github.com/goliatone/go-pagefill/pkg/render/template"
	"github.com/goliatone/go-pagefill/pkg/store"
)

// DefaultPDFTimeout bounds a pdf export.
const DefaultPDFTimeout = 60 * time.Second

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithStore injects the template store used to resolve Request.Ref.
func WithStore(s store.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithRegistry injects a handler registry. When omitted the pipeline builds
// DefaultRegistry from its inliner and pdf renderer.
func WithRegistry(registry *Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithRenderer injects the placeholder renderer.
func WithRenderer(renderer *render.Renderer) Option {
	return func(p *Pipeline) {
		p.renderer = renderer
	}
}

// WithInliner overrides the inliner of the default inline handlers.
func WithInliner(inliner inline.Inliner) Option {
	return func(p *Pipeline) {
		p.inliner = inliner
	}
}

// WithPDFRenderer overrides the renderer of the default pdf handler.
func WithPDFRenderer(renderer pdf.Renderer) Option {
	return func(p *Pipeline) {
		p.pdfRenderer = renderer
	}
}

// WithPDFTimeout bounds every pdf export. Non-positive values disable the
// bound.
func WithPDFTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.pdfTimeout = d
	}
}

// WithThemeSelector resolves Request.ThemeName/ThemeVariant into CSS custom
// properties prepended to the template stylesheet.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(p *Pipeline) {
		p.themes = selector
	}
}

// WithDefaultDelimiters overrides the pair used when neither the request
// nor the template sets one.
func WithDefaultDelimiters(d placeholder.Delimiters) Option {
	return func(p *Pipeline) {
		p.delims = d
	}
}

// WithTemplateEngine overrides the engine used for the page wrapper and the
// theme stylesheet.
func WithTemplateEngine(engine template.TemplateRenderer) Option {
	return func(p *Pipeline) {
		p.engine = engine
	}
}

// Pipeline resolves templates, renders value sets and dispatches to format
// handlers. It keeps no per-call state and is safe for concurrent use.
type Pipeline struct {
	store       store.Store
	registry    *Registry
	renderer    *render.Renderer
	inliner     inline.Inliner
	pdfRenderer pdf.Renderer
	pdfTimeout  time.Duration
	themes      theme.ThemeSelector
	delims      placeholder.Delimiters
	engine      template.TemplateRenderer
}

// New constructs a Pipeline. Missing collaborators get the built-in
// implementations: render.New, inline.New and pdf.NewChrome.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		pdfTimeout: DefaultPDFTimeout,
		delims:     placeholder.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.renderer == nil {
		p.renderer = render.New()
	}
	if p.registry == nil {
		p.registry = DefaultRegistry(p.inliner, p.pdfRenderer, p.engine)
	}
	return p
}

// Registry returns the handler registry in use.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// Export runs one export. Request validation (reference, format, template,
// delimiters, format options) completes before any rendering starts.
func (p *Pipeline) Export(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("export: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if req.Template == nil && req.Ref.IsZero() {
		return Result{}, ErrMissingTemplateRef
	}

	format := ParseFormat(string(req.Format))
	handler, err := p.registry.Get(format)
	if err != nil {
		return Result{}, err
	}

	tpl, err := p.loadTemplate(ctx, req)
	if err != nil {
		return Result{}, err
	}

	delims := p.resolveDelimiters(req, tpl)
	if err := delims.Validate(); err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	values := req.Values.normalised()
	job := Job{
		Template:    tpl,
		Batch:       values.Batch,
		Orientation: req.Orientation,
		PageSize:    req.PageSize,
	}
	if v, ok := handler.(Validator); ok {
		if err := v.Validate(job); err != nil {
			return Result{}, err
		}
	}

	job.HTML = make([]string, len(values.Sets))
	for i, set := range values.Sets {
		filled, err := p.renderer.Render(tpl.HTML, set, delims)
		if err != nil {
			return Result{}, newError("render", i, nil, err)
		}
		job.HTML[i] = filled
	}

	job.CSS, err = p.stylesheet(tpl.CSS, req)
	if err != nil {
		return Result{}, err
	}

	if format == FormatPDF && p.pdfTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.pdfTimeout)
		defer cancel()
	}

	result, err := handler.Export(ctx, job)
	if err != nil {
		return Result{}, err
	}
	result.Format = format
	result.Batch = values.Batch
	if result.ContentType == "" {
		result.ContentType = handler.ContentType()
	}
	return result, nil
}

func (p *Pipeline) loadTemplate(ctx context.Context, req Request) (store.Template, error) {
	if req.Template != nil {
		return *req.Template, nil
	}
	if p.store == nil {
		return store.Template{}, fmt.Errorf("export: no template store configured: %w", store.ErrTemplateNotFound)
	}
	tpl, err := p.store.Get(ctx, req.Ref)
	if err != nil {
		return store.Template{}, err
	}
	return tpl, nil
}

func (p *Pipeline) resolveDelimiters(req Request, tpl store.Template) placeholder.Delimiters {
	if req.Delimiters != nil && !req.Delimiters.IsZero() {
		return *req.Delimiters
	}
	if len(tpl.Brackets) == 2 {
		return tpl.Delimiters()
	}
	return p.delims
}

func (p *Pipeline) stylesheet(css string, req Request) (string, error) {
	if p.themes == nil {
		return css, nil
	}
	selection, err := p.themes.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return "", fmt.Errorf("export: select theme: %w", err)
	}
	prefix, err := ThemeStylesheet(p.engine, CSSVars(ThemeTokens(selection)))
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return css, nil
	}
	if strings.TrimSpace(css) == "" {
		return prefix, nil
	}
	return prefix + "\n" + css, nil
}
