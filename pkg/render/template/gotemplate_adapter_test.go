package template_test

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pagefill/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pagefill/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_CSSValueFilterAndSafeBody(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("style", map[string]any{
		"mode": "always; color: red}",
		"body": "<p>{{ name }}</p>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<div style=\"page-break-after: always color: red;\"><p>{{ name }}</p></div>\n"
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_AcceptsNameWithExtension(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello.tpl", map[string]any{"name": "Bo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "<p>Hello Bo</p>\n" {
		t.Fatalf("render mismatch: %q", result)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestCSSValue(t *testing.T) {
	cases := map[string]string{
		"#fff":                    "#fff",
		"red;} body{display:none": "red body display:none",
		"  a;;b  ":                "a b",
		"</style><script>":        "/style script",
		`\"quoted\"`:              "quoted",
	}
	for in, want := range cases {
		if got := gotemplate.CSSValue(in); got != want {
			t.Fatalf("CSSValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
