package export_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/store"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func acmeSelection(variant string) *theme.Selection {
	return &theme.Selection{
		Theme:   "acme",
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				"brand":        "#123456",
				"font.body":    "Inter, sans-serif",
				"spacing unit": "4px",
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"brand": "#654321"},
				},
			},
		},
	}
}

func TestThemeTokensMergeVariant(t *testing.T) {
	got := export.ThemeTokens(acmeSelection("dark"))
	want := map[string]string{
		"brand":        "#654321",
		"font.body":    "Inter, sans-serif",
		"spacing unit": "4px",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if export.ThemeTokens(nil) != nil {
		t.Fatalf("nil selection should yield nil tokens")
	}
}

func TestCSSVars(t *testing.T) {
	got := export.CSSVars(map[string]string{
		"brand":        "#123456",
		"font.body":    "Inter",
		"--already":    "1",
		"spacing unit": "4px",
		"  ":           "dropped",
	})
	want := map[string]string{
		"--brand":        "#123456",
		"--font-body":    "Inter",
		"--already":      "1",
		"--spacing-unit": "4px",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeStylesheetSanitisesValues(t *testing.T) {
	out, err := export.ThemeStylesheet(nil, map[string]string{
		"--brand": "red;} body{display:none",
		"--font":  "Inter",
	})
	if err != nil {
		t.Fatalf("ThemeStylesheet: %v", err)
	}
	want := ":root {\n  --brand: red body display:none;\n  --font: Inter;\n}"
	if out != want {
		t.Fatalf("stylesheet mismatch:\nwant %q\ngot  %q", want, out)
	}

	empty, err := export.ThemeStylesheet(nil, nil)
	if err != nil || empty != "" {
		t.Fatalf("empty vars: out=%q err=%v", empty, err)
	}
}

func TestExportPrependsThemeVariables(t *testing.T) {
	selector := &stubThemeSelector{selection: acmeSelection("dark")}
	p := export.New(export.WithStore(helloStore(t)), export.WithThemeSelector(selector))

	res, err := p.Export(context.Background(), export.Request{
		Ref:          store.Ref{Slug: "hello"},
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(res.CSS, ":root {") {
		t.Fatalf("expected :root prefix, got %q", res.CSS)
	}
	if !strings.Contains(res.CSS, "--brand: #654321;") {
		t.Fatalf("variant token missing from %q", res.CSS)
	}
	if !strings.HasSuffix(res.CSS, "p{color:red}") {
		t.Fatalf("template css should follow the theme block, got %q", res.CSS)
	}
}

func TestExportThemeSelectionError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("unknown theme")}
	p := export.New(export.WithStore(helloStore(t)), export.WithThemeSelector(selector))

	if _, err := p.Export(context.Background(), export.Request{Ref: store.Ref{Slug: "hello"}, ThemeName: "nope"}); err == nil {
		t.Fatalf("expected theme selection error")
	}
}
