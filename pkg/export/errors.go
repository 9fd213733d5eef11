package export

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTemplateRef is returned when a request names no template.
	ErrMissingTemplateRef = errors.New("export: template id or slug is required")
	// ErrInvalidExportType is returned for formats without a registered
	// handler.
	ErrInvalidExportType = errors.New("export: invalid export type")
	// ErrInliningFailed is returned when any document of a batch could not
	// be inlined.
	ErrInliningFailed = errors.New("export: inlining failed")
	// ErrPDFGenerationFailed is returned when the PDF renderer failed,
	// timed out or produced no bytes.
	ErrPDFGenerationFailed = errors.New("export: pdf generation failed")
	// ErrNothingToRender is returned for a PDF batch without value sets.
	ErrNothingToRender = errors.New("export: nothing to render")
)

// Error reports the step and, for batches, the element that failed. Kind is
// one of the package sentinels; Err is the underlying cause.
type Error struct {
	Op    string
	Index int
	Kind  error
	Err   error
}

func (e *Error) Error() string {
	msg := "export: " + e.Op
	if e.Index >= 0 {
		msg += fmt.Sprintf(" [%d]", e.Index)
	}
	if e.Kind != nil {
		msg += ": " + trimPrefix(e.Kind.Error())
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	var out []error
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func newError(op string, index int, kind, err error) *Error {
	return &Error{Op: op, Index: index, Kind: kind, Err: err}
}

func trimPrefix(msg string) string {
	const prefix = "export: "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
