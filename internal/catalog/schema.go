package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema only checks the catalog shape. Record contents are checked
// field by field while decoding.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {"type": ["string", "number", "null"]}
    }
  }
}`

// SchemaError lists the violations found in a catalog document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog document is invalid: %s", strings.Join(e.Violations, "; "))
}

// ValidateDocument checks raw catalog JSON against the document schema.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate catalog document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Violations: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Violations = append(schemaErr.Violations, fmt.Sprintf("%s: %s", field, desc.Description()))
	}

	return schemaErr
}
