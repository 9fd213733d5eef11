// Package httpapi exposes template export and field extraction over HTTP.
// Request bodies are validated against the embedded OpenAPI description,
// which is also served at /api/openapi.json.
package httpapi
