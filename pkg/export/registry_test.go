package export_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/pkg/export"
)

func TestDefaultRegistryFormats(t *testing.T) {
	registry := export.DefaultRegistry(nil, nil, nil)
	want := []export.Format{export.FormatEmail, export.FormatHTML, export.FormatInlineHTML, export.FormatPDF}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
	if registry.MustGet(export.FormatPDF).ContentType() != "application/pdf" {
		t.Fatalf("pdf handler content type mismatch")
	}
}

func TestRegistryRejectsDuplicatesAndUnknown(t *testing.T) {
	registry := export.NewRegistry()
	if err := registry.Register(export.HTMLHandler{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(export.HTMLHandler{}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	if _, err := registry.Get("docx"); !errors.Is(err, export.ErrInvalidExportType) {
		t.Fatalf("expected ErrInvalidExportType, got %v", err)
	}
	if !registry.Has(export.FormatHTML) || registry.Has(export.FormatPDF) {
		t.Fatalf("Has reported wrong membership")
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &export.Error{Op: "inline", Index: 2, Kind: export.ErrInliningFailed, Err: cause}
	if got := err.Error(); got != "export: inline [2]: inlining failed: boom" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, export.ErrInliningFailed) || !errors.Is(err, cause) {
		t.Fatalf("unwrap should expose kind and cause")
	}

	single := &export.Error{Op: "pdf", Index: -1, Kind: export.ErrPDFGenerationFailed}
	if got := single.Error(); got != "export: pdf: pdf generation failed" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]export.Format{
		"":        export.FormatHTML,
		" PDF ":   export.FormatPDF,
		"email":   export.FormatEmail,
		"unknown": "unknown",
	}
	for in, want := range cases {
		if got := export.ParseFormat(in); got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
