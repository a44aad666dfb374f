package schemas

import "fmt"

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// EvaluationError is returned when a document could not be evaluated at all.
// Rule failures are never errors; they are returned as violations.
type EvaluationError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluating against %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluating against %s: %s", e.Schema, e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}
