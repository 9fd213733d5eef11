package pdf

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPageSize is returned for unknown named sizes or non-positive
	// custom dimensions.
	ErrInvalidPageSize = errors.New("pdf: invalid page size")
	// ErrInvalidOrientation is returned for orientations other than portrait
	// and landscape.
	ErrInvalidOrientation = errors.New("pdf: invalid orientation")
)

// Orientation of the printed page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation normalises raw; blank input yields Portrait.
func ParseOrientation(raw string) (Orientation, error) {
	switch Orientation(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Portrait:
		return Portrait, nil
	case Landscape:
		return Landscape, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrientation, raw)
	}
}

// Unit of a custom page dimension.
type Unit string

const (
	UnitMM Unit = "mm"
	UnitCM Unit = "cm"
	UnitIn Unit = "in"
	UnitPX Unit = "px"
)

// perInch converts a unit to inches, the unit the browser print API expects.
var perInch = map[Unit]float64{
	UnitMM: 25.4,
	UnitCM: 2.54,
	UnitIn: 1,
	UnitPX: 96,
}

// Named ISO 216 sizes in millimetres (width x height, portrait).
var namedSizes = map[string][2]float64{
	"A0": {841, 1189},
	"A1": {594, 841},
	"A2": {420, 594},
	"A3": {297, 420},
	"A4": {210, 297},
	"A5": {148, 210},
}

// NamedSizes lists the supported named sizes.
func NamedSizes() []string {
	return []string{"A0", "A1", "A2", "A3", "A4", "A5"}
}

// PageSize is either a named size ("A4") or explicit dimensions. Unit
// defaults to px for custom sizes.
type PageSize struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Unit   Unit    `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// A4 is the default page size.
var A4 = PageSize{Name: "A4"}

// Named returns a named page size.
func Named(name string) PageSize {
	return PageSize{Name: strings.ToUpper(strings.TrimSpace(name))}
}

// Custom returns explicit dimensions.
func Custom(width, height float64, unit Unit) PageSize {
	return PageSize{Width: width, Height: height, Unit: unit}
}

// IsZero reports whether nothing was set.
func (p PageSize) IsZero() bool {
	return p.Name == "" && p.Width == 0 && p.Height == 0 && p.Unit == ""
}

// IsCustom reports whether explicit dimensions are used.
func (p PageSize) IsCustom() bool {
	return p.Name == "" && !p.IsZero()
}

// Validate checks the size is known or has positive dimensions and a
// supported unit.
func (p PageSize) Validate() error {
	if p.IsZero() {
		return nil
	}
	if p.Name != "" {
		if _, ok := namedSizes[strings.ToUpper(p.Name)]; !ok {
			return fmt.Errorf("%w: unknown size %q", ErrInvalidPageSize, p.Name)
		}
		return nil
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", ErrInvalidPageSize)
	}
	if _, ok := perInch[p.unit()]; !ok {
		return fmt.Errorf("%w: unsupported unit %q", ErrInvalidPageSize, p.Unit)
	}
	return nil
}

// Inches returns width and height in inches, falling back to A4 for the
// zero value. Dimensions are always given as declared; landscape output is
// produced by the browser's landscape flag.
func (p PageSize) Inches() (float64, float64, error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	if p.IsZero() {
		p = A4
	}
	if p.Name != "" {
		mm := namedSizes[strings.ToUpper(p.Name)]
		w, h := mm[0]/perInch[UnitMM], mm[1]/perInch[UnitMM]
		return w, h, nil
	}
	factor := perInch[p.unit()]
	return p.Width / factor, p.Height / factor, nil
}

func (p PageSize) unit() Unit {
	if p.Unit == "" {
		return UnitPX
	}
	return Unit(strings.ToLower(string(p.Unit)))
}

func (p PageSize) String() string {
	if p.IsZero() {
		return A4.Name
	}
	if p.Name != "" {
		return strings.ToUpper(p.Name)
	}
	return fmt.Sprintf("%gx%g%s", p.Width, p.Height, p.unit())
}

// UnmarshalJSON accepts either a named size string ("A4") or an object with
// width, height and an optional unit.
func (p *PageSize) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*p = PageSize{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*p = Named(name)
		return nil
	}

	type alias PageSize
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPageSize, err)
	}
	*p = PageSize(out)
	return nil
}

// MarshalJSON writes named sizes as a plain string.
func (p PageSize) MarshalJSON() ([]byte, error) {
	if p.Name != "" {
		return json.Marshal(strings.ToUpper(p.Name))
	}
	type alias PageSize
	return json.Marshal(alias(p))
}

// Margins in millimetres.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// UniformMargins returns the same margin on every side.
func UniformMargins(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// DefaultMargins are the fixed 10mm document margins.
var DefaultMargins = UniformMargins(10)
