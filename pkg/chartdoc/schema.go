package chartdoc

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed schema/chartdoc.yaml
var schemaDocument []byte

const documentSchema = "Document"

var (
	schemaOnce sync.Once
	schemaRoot *openapi3.Schema
	schemaErr  error
)

// SchemaSource returns the embedded OpenAPI document describing chart
// documents under components.schemas.
func SchemaSource() []byte {
	return append([]byte(nil), schemaDocument...)
}

func documentSchemaRef() (*openapi3.Schema, error) {
	schemaOnce.Do(func() {
		ctx := context.Background()
		loader := &openapi3.Loader{Context: ctx}
		spec, err := loader.LoadFromData(schemaDocument)
		if err != nil {
			schemaErr = fmt.Errorf("chartdoc: load schema: %w", err)
			return
		}
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			schemaErr = fmt.Errorf("chartdoc: validate schema: %w", err)
			return
		}
		ref := spec.Components.Schemas[documentSchema]
		if ref == nil || ref.Value == nil {
			schemaErr = fmt.Errorf("chartdoc: schema %q missing", documentSchema)
			return
		}
		schemaRoot = ref.Value
	})
	return schemaRoot, schemaErr
}

// ValidationError lists every schema violation found in one document.
type ValidationError struct {
	Document string
	Issues   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("chartdoc: %s: invalid document: %s", e.Document, strings.Join(e.Issues, "; "))
}

// validate checks a JSON-shaped value against the document schema.
func validate(ctx context.Context, name string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	schema, err := documentSchemaRef()
	if err != nil {
		return err
	}
	err = schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	verr := &ValidationError{Document: name}
	for _, issue := range flatten(err) {
		verr.Issues = append(verr.Issues, issueString(issue))
	}
	return verr
}

func flatten(err error) []error {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []error{err}
	}
	var out []error
	for _, inner := range multi {
		out = append(out, flatten(inner)...)
	}
	return out
}

func issueString(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := strings.Join(schemaErr.JSONPointer(), "/")
		if pointer == "" {
			return schemaErr.Reason
		}
		return "/" + pointer + ": " + schemaErr.Reason
	}
	return err.Error()
}
