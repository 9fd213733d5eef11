package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-pagefill/pkg/render/template"
)

// DefaultTimeout bounds one Chrome render, browser startup included.
const DefaultTimeout = 60 * time.Second

// ErrEmptyOutput is returned when the browser produced no bytes.
var ErrEmptyOutput = errors.New("pdf: renderer returned no output")

// ChromeOption configures a Chrome renderer.
type ChromeOption func(*Chrome)

// WithExecPath points at a specific Chrome/Chromium binary.
func WithExecPath(path string) ChromeOption {
	return func(c *Chrome) {
		c.execPath = path
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) ChromeOption {
	return func(c *Chrome) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMargins overrides DefaultMargins.
func WithMargins(m Margins) ChromeOption {
	return func(c *Chrome) {
		c.margins = m
	}
}

// WithNoSandbox disables the Chrome sandbox, required in most containers.
func WithNoSandbox(disable bool) ChromeOption {
	return func(c *Chrome) {
		c.noSandbox = disable
	}
}

// WithShellEngine renders the document shell with a custom engine.
func WithShellEngine(engine template.TemplateRenderer) ChromeOption {
	return func(c *Chrome) {
		c.shell = engine
	}
}

// WithTitle sets the <title> of generated documents.
func WithTitle(title string) ChromeOption {
	return func(c *Chrome) {
		c.title = title
	}
}

// Chrome renders PDFs with a headless Chrome started per call.
type Chrome struct {
	execPath  string
	timeout   time.Duration
	margins   Margins
	noSandbox bool
	shell     template.TemplateRenderer
	title     string
}

var _ Renderer = (*Chrome)(nil)

// NewChrome constructs a Chrome renderer.
func NewChrome(options ...ChromeOption) *Chrome {
	c := &Chrome{
		timeout:   DefaultTimeout,
		margins:   DefaultMargins,
		noSandbox: true,
		title:     "document",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Render starts a browser, loads the document, prints it and shuts the
// browser down again, whatever the outcome.
func (c *Chrome) Render(ctx context.Context, doc Document) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("pdf: context is required")
	}
	orientation, err := ParseOrientation(string(doc.Orientation))
	if err != nil {
		return nil, err
	}
	width, height, err := doc.PageSize.Inches()
	if err != nil {
		return nil, err
	}
	html, err := Shell(c.shell, doc, c.title)
	if err != nil {
		return nil, err
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, c.timeout)
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var out []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(orientation == Landscape).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(mmToInches(c.margins.Top)).
				WithMarginRight(mmToInches(c.margins.Right)).
				WithMarginBottom(mmToInches(c.margins.Bottom)).
				WithMarginLeft(mmToInches(c.margins.Left)).
				Do(ctx)
			if err != nil {
				return err
			}
			out = buf
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf: render timed out after %s: %w", c.timeout, ctx.Err())
		}
		return nil, fmt.Errorf("pdf: chrome render: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyOutput
	}
	return out, nil
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption(nil), chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-zygote", true),
	)
	if c.noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	return opts
}

func mmToInches(mm float64) float64 {
	return mm / perInch[UnitMM]
}
