package httpapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-pagefill/internal/openapi/parser"
	"github.com/goliatone/go-pagefill/pkg/document"
	"github.com/goliatone/go-pagefill/pkg/export"
	"github.com/goliatone/go-pagefill/pkg/extract"
	"github.com/goliatone/go-pagefill/pkg/pdf"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/store"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// OpenAPIDocument returns the embedded OpenAPI description (YAML).
func OpenAPIDocument() []byte {
	return append([]byte(nil), openAPIDocument...)
}

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes int64 = 10 << 20

// Option customises a Server.
type Option func(*Server)

// WithStore serves template lookups from s. The export pipeline keeps its
// own store; pass the same value to both.
func WithStore(s store.Store) Option {
	return func(srv *Server) {
		srv.store = s
	}
}

// WithPipeline injects the export pipeline.
func WithPipeline(p *export.Pipeline) Option {
	return func(srv *Server) {
		srv.pipeline = p
	}
}

// WithExtractOptions forwards options to every extraction.
func WithExtractOptions(opts ...extract.Option) Option {
	return func(srv *Server) {
		srv.extractOpts = append(srv.extractOpts, opts...)
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(srv *Server) {
		if n > 0 {
			srv.maxBody = n
		}
	}
}

// WithLogf receives server-side failures (5xx responses, write errors).
func WithLogf(logf func(format string, args ...any)) Option {
	return func(srv *Server) {
		srv.logf = logf
	}
}

// Server serves the HTTP API.
type Server struct {
	spec        *parser.Spec
	store       store.Store
	pipeline    *export.Pipeline
	extractOpts []extract.Option
	maxBody     int64
	logf        func(format string, args ...any)
	mux         *http.ServeMux
}

// New loads and validates the OpenAPI description and wires the routes.
// Without WithPipeline the server builds export.New over its store.
func New(ctx context.Context, options ...Option) (*Server, error) {
	spec, err := parser.Parse(ctx, openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("httpapi: %w", err)
	}

	s := &Server{
		spec:    spec,
		maxBody: DefaultMaxBodyBytes,
		logf:    func(string, ...any) {},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}
	if s.pipeline == nil {
		s.pipeline = export.New(export.WithStore(s.store))
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	s.mux.HandleFunc("GET /api/templates/{id}", s.handleGetTemplate)
	s.mux.HandleFunc("POST /api/templates/export", s.handleExport)
	s.mux.HandleFunc("POST /api/templates/extract", s.handleExtract)
	s.mux.HandleFunc("GET /api/openapi.json", s.handleOpenAPI)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.spec, s.logf)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.store.(store.Lister)
	if !ok {
		writeJSON(w, http.StatusNotImplemented, ErrorBody{Code: CodeNotImplemented, Message: "template store cannot list templates"}, s.logf)
		return
	}
	templates, err := lister.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates, s.logf)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, store.ErrTemplateNotFound)
		return
	}
	tpl, err := s.store.Get(r.Context(), store.Ref{ID: r.PathValue("id")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl, s.logf)
}

type exportBody struct {
	Values      export.Values `json:"values"`
	ExportType  string        `json:"export-type"`
	Orientation string        `json:"orientation"`
	PageSize    pdf.PageSize  `json:"page-size"`
	Brackets    []string      `json:"brackets"`
	Theme       string        `json:"theme"`
	Variant     string        `json:"variant"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ref := store.Ref{
		ID:   strings.TrimSpace(query.Get("id")),
		Slug: strings.TrimSpace(query.Get("slug")),
	}
	if ref.IsZero() {
		s.writeError(w, export.ErrMissingTemplateRef)
		return
	}

	var body exportBody
	if err := s.decodeBody(w, r, "exportTemplate", &body); err != nil {
		s.writeError(w, err)
		return
	}

	req := export.Request{
		Ref:          ref,
		Values:       body.Values,
		Format:       export.ParseFormat(body.ExportType),
		Orientation:  pdf.Orientation(body.Orientation),
		PageSize:     body.PageSize,
		ThemeName:    body.Theme,
		ThemeVariant: body.Variant,
	}
	if len(body.Brackets) > 0 {
		d := placeholder.FromSlice(body.Brackets)
		req.Delimiters = &d
	}

	result, err := s.pipeline.Export(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if result.IsBinary() {
		w.Header().Set("Content-Type", result.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(result.PDF); err != nil {
			s.logf("httpapi: write pdf response: %v", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result.Body(), s.logf)
}

type extractBody struct {
	Project  json.RawMessage `json:"project"`
	Brackets []string        `json:"brackets"`
}

type extractResponse struct {
	Brackets []string            `json:"brackets"`
	Fields   map[string][]string `json:"fields"`
	Values   map[string]string   `json:"values"`
	Keys     []string            `json:"keys"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var body extractBody
	if err := s.decodeBody(w, r, "extractFields", &body); err != nil {
		s.writeError(w, err)
		return
	}

	delims := placeholder.FromSlice(body.Brackets)
	if err := delims.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	root, err := document.DecodeProject(body.Project)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	result, err := extract.Extract(r.Context(), root, delims, s.extractOpts...)
	if err != nil {
		s.writeError(w, err)
		return
	}

	keys := result.Keys
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, extractResponse{
		Brackets: result.Delimiters.Slice(),
		Fields:   result.Fields,
		Values:   result.Values,
		Keys:     keys,
	}, s.logf)
}

// decodeBody validates the body against the operation's schema, then
// decodes it into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, operationID string, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", errInvalidRequest, err)
	}
	if _, err := s.spec.ValidateBody(operationID, raw); err != nil {
		return err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}
