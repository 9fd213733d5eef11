package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/render"
	"github.com/goliatone/go-pagefill/pkg/store"
)

// RenderOptions translates the render section into renderer options.
func (c Config) RenderOptions() []render.Option {
	var opts []render.Option
	switch strings.ToLower(strings.TrimSpace(c.Render.Sanitize)) {
	case SanitizeStrict:
		opts = append(opts, render.WithSanitizer(render.StrictSanitizer()))
	case SanitizeUGC:
		opts = append(opts, render.WithSanitizer(render.UGCSanitizer()))
	}
	if c.Render.Decode != nil && !*c.Render.Decode {
		opts = append(opts, render.WithoutDecode())
	}
	return opts
}

// ChromeOptions translates the pdf section into Chrome renderer options.
func (c Config) ChromeOptions() []pdf.ChromeOption {
	var opts []pdf.ChromeOption
	if path := strings.TrimSpace(c.PDF.ChromePath); path != "" {
		opts = append(opts, pdf.WithExecPath(path))
	}
	if c.PDF.Timeout > 0 {
		opts = append(opts, pdf.WithTimeout(c.PDF.Timeout))
	}
	if c.PDF.NoSandbox != nil {
		opts = append(opts, pdf.WithNoSandbox(*c.PDF.NoSandbox))
	}
	if c.PDF.Margins != nil {
		opts = append(opts, pdf.WithMargins(*c.PDF.Margins))
	}
	return opts
}

// PipelineOptions wires an export pipeline over s: renderer, Chrome PDF
// renderer with its timeout, and the configured default brackets.
func (c Config) PipelineOptions(s store.Store) ([]export.Option, error) {
	delims, err := c.Delimiters()
	if err != nil {
		return nil, err
	}
	opts := []export.Option{
		export.WithStore(s),
		export.WithRenderer(render.New(c.RenderOptions()...)),
		export.WithPDFRenderer(pdf.NewChrome(c.ChromeOptions()...)),
		export.WithDefaultDelimiters(delims),
	}
	if c.PDF.Timeout > 0 {
		opts = append(opts, export.WithPDFTimeout(c.PDF.Timeout))
	}
	return opts, nil
}

// TemplatesFS opens the templates directory. When the directory does not
// exist fallback is returned instead; a nil fallback makes that an error.
func (c Config) TemplatesFS(fallback fs.FS) (fs.FS, error) {
	dir := strings.TrimSpace(c.Templates.Dir)
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("templates: %q is not a directory", dir)
	case err == nil:
		return os.DirFS(dir), nil
	case errors.Is(err, fs.ErrNotExist) && fallback != nil:
		return fallback, nil
	default:
		return nil, fmt.Errorf("templates: %w", err)
	}
}
