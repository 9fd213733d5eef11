package placeholder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDelimiter is returned when either side of a delimiter pair is
// empty.
var ErrInvalidDelimiter = errors.New("placeholder: delimiter must not be empty")

const (
	DefaultOpen  = "{{"
	DefaultClose = "}}"
)

// Delimiters is the ordered (open, close) pair surrounding a placeholder key.
type Delimiters struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// Default returns the "{{" / "}}" pair.
func Default() Delimiters {
	return Delimiters{Open: DefaultOpen, Close: DefaultClose}
}

// FromSlice builds a pair from the persisted two-element form. Anything other
// than exactly two entries falls back to Default.
func FromSlice(values []string) Delimiters {
	if len(values) != 2 {
		return Default()
	}
	return Delimiters{Open: values[0], Close: values[1]}
}

// Parse reads a pair written as "open,close" (for example "[[,]]"). Blank
// input yields Default.
func Parse(raw string) (Delimiters, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Default(), nil
	}
	open, closing, ok := strings.Cut(trimmed, ",")
	if !ok {
		return Delimiters{}, fmt.Errorf("placeholder: parse delimiters %q: expected open,close", raw)
	}
	d := Delimiters{Open: strings.TrimSpace(open), Close: strings.TrimSpace(closing)}
	if err := d.Validate(); err != nil {
		return Delimiters{}, err
	}
	return d, nil
}

// Slice returns the pair in its persisted two-element form.
func (d Delimiters) Slice() []string {
	return []string{d.Open, d.Close}
}

// Validate reports ErrInvalidDelimiter when either side is empty.
func (d Delimiters) Validate() error {
	if d.Open == "" || d.Close == "" {
		return ErrInvalidDelimiter
	}
	return nil
}

// IsZero reports whether neither side is set.
func (d Delimiters) IsZero() bool {
	return d.Open == "" && d.Close == ""
}

// Wrap formats key as a placeholder token, e.g. Wrap("name") == "{{name}}".
func (d Delimiters) Wrap(key string) string {
	return d.Open + key + d.Close
}

func (d Delimiters) String() string {
	return d.Open + "," + d.Close
}
