package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-pagefill/internal/openapi/parser"
	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/store"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeMissingTemplateRef  = "missing_template_ref"
	CodeInvalidExportType   = "invalid_export_type"
	CodeInvalidDelimiter    = "invalid_delimiter"
	CodeInvalidPageSize     = "invalid_page_size"
	CodeInvalidOrientation  = "invalid_orientation"
	CodeNothingToRender     = "nothing_to_render"
	CodeTemplateNotFound    = "template_not_found"
	CodeInliningFailed      = "inlining_failed"
	CodePDFGenerationFailed = "pdf_generation_failed"
	CodeNotImplemented      = "not_implemented"
	CodeInternal            = "internal_error"
)

// ErrorBody is the JSON payload of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: an export error can wrap both a pipeline sentinel and the
// collaborator's cause, and the pipeline sentinel decides the status.
var errorMappings = []errorMapping{
	{export.ErrMissingTemplateRef, http.StatusBadRequest, CodeMissingTemplateRef},
	{export.ErrInvalidExportType, http.StatusBadRequest, CodeInvalidExportType},
	{export.ErrNothingToRender, http.StatusBadRequest, CodeNothingToRender},
	{export.ErrInliningFailed, http.StatusInternalServerError, CodeInliningFailed},
	{export.ErrPDFGenerationFailed, http.StatusInternalServerError, CodePDFGenerationFailed},
	{placeholder.ErrInvalidDelimiter, http.StatusBadRequest, CodeInvalidDelimiter},
	{pdf.ErrInvalidPageSize, http.StatusBadRequest, CodeInvalidPageSize},
	{pdf.ErrInvalidOrientation, http.StatusBadRequest, CodeInvalidOrientation},
	{parser.ErrInvalidBody, http.StatusBadRequest, CodeInvalidRequest},
	{errInvalidRequest, http.StatusBadRequest, CodeInvalidRequest},
	{store.ErrEmptyRef, http.StatusBadRequest, CodeMissingTemplateRef},
	{store.ErrTemplateNotFound, http.StatusNotFound, CodeTemplateNotFound},
}

var errInvalidRequest = errors.New("httpapi: invalid request")

// Classify maps err to an HTTP status and error code.
func Classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	if status >= http.StatusInternalServerError {
		s.logf("httpapi: %s: %v", code, err)
	}
	writeJSON(w, status, ErrorBody{Code: code, Message: err.Error()}, s.logf)
}

func writeJSON(w http.ResponseWriter, status int, payload any, logf func(string, ...any)) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logf != nil {
		logf("httpapi: write json response: %v", err)
	}
}
