package pdf_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/pkg/pdf"
)

func TestParseOrientation(t *testing.T) {
	cases := map[string]pdf.Orientation{
		"":           pdf.Portrait,
		"portrait":   pdf.Portrait,
		" Landscape": pdf.Landscape,
	}
	for raw, want := range cases {
		got, err := pdf.ParseOrientation(raw)
		if err != nil {
			t.Fatalf("ParseOrientation(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseOrientation(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := pdf.ParseOrientation("sideways"); !errors.Is(err, pdf.ErrInvalidOrientation) {
		t.Fatalf("expected ErrInvalidOrientation, got %v", err)
	}
}

func TestPageSizeInches(t *testing.T) {
	cases := []struct {
		name string
		size pdf.PageSize
		w, h float64
	}{
		{name: "zero defaults to A4", size: pdf.PageSize{}, w: 210 / 25.4, h: 297 / 25.4},
		{name: "named lower case", size: pdf.Named("a5"), w: 148 / 25.4, h: 210 / 25.4},
		{name: "custom px", size: pdf.Custom(960, 480, ""), w: 10, h: 5},
		{name: "custom cm", size: pdf.Custom(25.4, 2.54, pdf.UnitCM), w: 10, h: 1},
		{name: "custom in", size: pdf.Custom(8.5, 11, pdf.UnitIn), w: 8.5, h: 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h, err := tc.size.Inches()
			if err != nil {
				t.Fatalf("Inches: %v", err)
			}
			if math.Abs(w-tc.w) > 1e-9 || math.Abs(h-tc.h) > 1e-9 {
				t.Fatalf("Inches = (%v, %v), want (%v, %v)", w, h, tc.w, tc.h)
			}
		})
	}
}

func TestPageSizeValidate(t *testing.T) {
	invalid := []pdf.PageSize{
		pdf.Named("B7"),
		pdf.Custom(0, 100, pdf.UnitMM),
		pdf.Custom(100, -1, pdf.UnitMM),
		pdf.Custom(100, 100, "furlong"),
	}
	for _, size := range invalid {
		if err := size.Validate(); !errors.Is(err, pdf.ErrInvalidPageSize) {
			t.Fatalf("Validate(%s): expected ErrInvalidPageSize, got %v", size, err)
		}
		if _, _, err := size.Inches(); err == nil {
			t.Fatalf("Inches(%s): expected error", size)
		}
	}
	if err := pdf.A4.Validate(); err != nil {
		t.Fatalf("A4 should validate: %v", err)
	}
}

func TestPageSizeJSON(t *testing.T) {
	var named pdf.PageSize
	if err := json.Unmarshal([]byte(`"a3"`), &named); err != nil {
		t.Fatalf("unmarshal named: %v", err)
	}
	if diff := cmp.Diff(pdf.Named("A3"), named); diff != "" {
		t.Fatalf("named mismatch (-want +got):\n%s", diff)
	}

	var custom pdf.PageSize
	if err := json.Unmarshal([]byte(`{"width":100,"height":50,"unit":"mm"}`), &custom); err != nil {
		t.Fatalf("unmarshal custom: %v", err)
	}
	if diff := cmp.Diff(pdf.Custom(100, 50, pdf.UnitMM), custom); diff != "" {
		t.Fatalf("custom mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(named)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"A3"` {
		t.Fatalf("marshal named = %s", out)
	}

	out, err = json.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"width":100,"height":50,"unit":"mm"}` {
		t.Fatalf("marshal custom = %s", out)
	}
}

func TestPageSizeString(t *testing.T) {
	if got := (pdf.PageSize{}).String(); got != "A4" {
		t.Fatalf("zero String = %q", got)
	}
	if got := pdf.Custom(100, 50, "").String(); got != "100x50px" {
		t.Fatalf("custom String = %q", got)
	}
}
