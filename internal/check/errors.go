package check

import (
	"errors"
	"fmt"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
	"github.com/huppifluppi/survey-tool-cli/internal/schemas"
)

// FileReadError represents a configuration file that cannot be located or read.
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a document the validator could not evaluate.
// Schema violations are reported in the result, never as this error.
type ValidationError struct {
	Document int // 0-based
	Cause    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validating document %d: %v", e.Document+1, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ErrorKind names the class of a fatal check error.
type ErrorKind int

const (
	// KindUnknown is any error outside the check error set (for example a cancelled context).
	KindUnknown ErrorKind = iota
	// KindIO means the source could not be read.
	KindIO
	// KindParse means the source is not well-formed YAML.
	KindParse
	// KindSchemaLoad means the schema could not be loaded or compiled.
	KindSchemaLoad
	// KindValidation means a document could not be evaluated.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindSchemaLoad:
		return "schema_load"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classify reports which kind of fatal error err is.
func Classify(err error) ErrorKind {
	var (
		readErr   *FileReadError
		parseErr  *document.ParseError
		schemaErr *schemas.SchemaLoadError
		valErr    *ValidationError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &readErr):
		return KindIO
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &schemaErr):
		return KindSchemaLoad
	case errors.As(err, &valErr):
		return KindValidation
	default:
		return KindUnknown
	}
}
