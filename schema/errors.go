package schema

import "fmt"

// StructureError means a required container or list is missing from the input.
// It is always fatal to the current invocation.
type StructureError struct {
	Path   string // JSON path of the missing container, e.g. "finalCallInfoGraph.edges"
	Reason string
}

func (e *StructureError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("structure error: %s is missing", e.Path)
	}
	return fmt.Sprintf("structure error: %s %s", e.Path, e.Reason)
}

// FieldError means a required field is missing or unparsable on a record
// that was otherwise eligible for processing.
type FieldError struct {
	Record string // where the record came from, e.g. "edge 3" or "line 17"
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("field error: %s: %s is missing", e.Record, e.Field)
	}
	return fmt.Sprintf("field error: %s: %s: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// EmptyInputError means an operation that needs at least one record got none.
type EmptyInputError struct {
	Operation string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s needs at least one record", e.Operation)
}
