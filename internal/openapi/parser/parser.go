// Package parser loads the service's OpenAPI description with kin-openapi
// and validates request bodies against the schemas it declares.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrInvalidBody wraps every schema violation reported by ValidateBody.
var ErrInvalidBody = errors.New("openapi parser: request body does not match schema")

// Operation is the subset of an OpenAPI operation the HTTP layer needs.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	RequestBody *openapi3.SchemaRef
}

// Spec is a loaded and validated OpenAPI document.
type Spec struct {
	doc        *openapi3.T
	operations map[string]Operation
}

// Parse loads raw (JSON or YAML), validates it and indexes its operations by
// operationId.
func Parse(ctx context.Context, raw []byte) (*Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi parser: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	spec := &Spec{doc: doc, operations: make(map[string]Operation)}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			spec.collectOperation(method, path, op)
		}
	}
	if len(spec.operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return spec, nil
}

func (s *Spec) collectOperation(method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	s.operations[opID] = Operation{
		ID:          opID,
		Method:      strings.ToUpper(method),
		Path:        path,
		Summary:     operation.Summary,
		RequestBody: requestSchema(operation.RequestBody),
	}
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	if mt, ok := content["application/json"]; ok && mt != nil {
		return mt.Schema
	}
	for _, mt := range content {
		if mt != nil {
			return mt.Schema
		}
	}
	return nil
}

// Operation returns the operation registered under id.
func (s *Spec) Operation(id string) (Operation, bool) {
	op, ok := s.operations[id]
	return op, ok
}

// Title returns info.title.
func (s *Spec) Title() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Title
}

// Schema returns a named component schema.
func (s *Spec) Schema(name string) (*openapi3.Schema, bool) {
	if s.doc.Components == nil {
		return nil, false
	}
	ref, ok := s.doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, false
	}
	return ref.Value, true
}

// ValidateBody decodes body as JSON and checks it against the request
// schema of operation id. Operations without a request schema accept any
// body. The decoded value is returned for callers that want to reuse it.
func (s *Spec) ValidateBody(id string, body []byte) (any, error) {
	op, ok := s.operations[id]
	if !ok {
		return nil, fmt.Errorf("openapi parser: operation %q not found", id)
	}

	var value any
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return value, nil
	}
	if value == nil {
		value = map[string]any{}
	}
	if err := op.RequestBody.Value.VisitJSON(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return value, nil
}

// MarshalJSON renders the document as JSON.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.doc)
}
