package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/internal/config"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagefill.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.PDF.Timeout != 60*time.Second || cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if *cfg.PDF.Margins != pdf.UniformMargins(10) {
		t.Fatalf("default margins = %+v", *cfg.PDF.Margins)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
pdf:
  timeout: 15s
  no_sandbox: false
brackets: ["[[", "]]"]
render:
  sanitize: strict
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("server config: %+v", cfg.Server)
	}
	if cfg.PDF.Timeout != 15*time.Second || *cfg.PDF.NoSandbox {
		t.Fatalf("pdf config: %+v", cfg.PDF)
	}
	if cfg.Templates.Dir != "templates" {
		t.Fatalf("templates dir default lost: %q", cfg.Templates.Dir)
	}
	d, err := cfg.Delimiters()
	if err != nil {
		t.Fatalf("Delimiters: %v", err)
	}
	if diff := cmp.Diff(placeholder.Delimiters{Open: "[[", Close: "]]"}, d); diff != "" {
		t.Fatalf("delimiters mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"one bracket":   `brackets: ["{{"]`,
		"empty bracket": `brackets: ["", "}}"]`,
		"sanitizer":     "render:\n  sanitize: paranoid\n",
		"yaml":          "server: [",
	}
	for name, body := range cases {
		if _, err := config.Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := config.Load(writeConfig(t, `brackets: ["", "}}"]`))
	if !errors.Is(err, placeholder.ErrInvalidDelimiter) {
		t.Fatalf("expected ErrInvalidDelimiter, got %v", err)
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestOptionTranslation(t *testing.T) {
	cfg := config.Default()
	if n := len(cfg.RenderOptions()); n != 0 {
		t.Fatalf("default render options = %d, want 0", n)
	}
	if n := len(cfg.ChromeOptions()); n != 3 {
		t.Fatalf("default chrome options = %d, want 3", n)
	}

	decode := false
	cfg.Render = config.Render{Sanitize: config.SanitizeUGC, Decode: &decode}
	cfg.PDF.ChromePath = "/usr/bin/chromium"
	if n := len(cfg.RenderOptions()); n != 2 {
		t.Fatalf("render options = %d, want 2", n)
	}
	if n := len(cfg.ChromeOptions()); n != 4 {
		t.Fatalf("chrome options = %d, want 4", n)
	}
}

func TestPipelineOptionsRejectsBadBrackets(t *testing.T) {
	cfg := config.Default()
	cfg.Brackets = []string{"", "}}"}
	if _, err := cfg.PipelineOptions(nil); !errors.Is(err, placeholder.ErrInvalidDelimiter) {
		t.Fatalf("expected ErrInvalidDelimiter, got %v", err)
	}

	cfg = config.Default()
	opts, err := cfg.PipelineOptions(nil)
	if err != nil {
		t.Fatalf("PipelineOptions: %v", err)
	}
	if len(opts) != 5 {
		t.Fatalf("options = %d, want 5", len(opts))
	}
}

func TestTemplatesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("slug: a\nhtml: x\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := config.Default()
	cfg.Templates.Dir = dir
	fsys, err := cfg.TemplatesFS(nil)
	if err != nil {
		t.Fatalf("TemplatesFS: %v", err)
	}
	if _, err := fs.Stat(fsys, "a.yaml"); err != nil {
		t.Fatalf("expected a.yaml in templates fs: %v", err)
	}

	cfg.Templates.Dir = filepath.Join(dir, "missing")
	fallback := fstest.MapFS{"b.yaml": &fstest.MapFile{Data: []byte("slug: b\nhtml: y\n")}}
	fsys, err = cfg.TemplatesFS(fallback)
	if err != nil {
		t.Fatalf("TemplatesFS with fallback: %v", err)
	}
	if _, err := fs.Stat(fsys, "b.yaml"); err != nil {
		t.Fatalf("expected fallback fs: %v", err)
	}

	if _, err := cfg.TemplatesFS(nil); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
