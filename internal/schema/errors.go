package schema

import "fmt"

// SchemaError reports required columns absent from an input batch. It is
// fatal: no normalization runs after it.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %v", e.Missing)
}
