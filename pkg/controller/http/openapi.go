package http

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed openapi.yaml
var openapiYAML []byte

type openapiSpec struct {
	doc *openapi3.T
	raw []byte
}

// loadOpenAPI parses and validates the embedded API document
func loadOpenAPI(ctx context.Context) (*openapiSpec, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse OpenAPI document")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, goerr.Wrap(err, "invalid OpenAPI document")
	}
	return &openapiSpec{doc: doc, raw: openapiYAML}, nil
}

// OpenAPI returns the parsed API document served at /api/openapi.yaml
func OpenAPI(ctx context.Context) (*openapi3.T, error) {
	spec, err := loadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	return spec.doc, nil
}

func (s *openapiSpec) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(s.raw); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write OpenAPI document", "error", err)
	}
}
