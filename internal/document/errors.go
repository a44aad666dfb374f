package document

import "fmt"

// ParseError reports a document that is not well-formed YAML or cannot be represented
// as a generic value.
type ParseError struct {
	// Document is the 0-based index of the failing document.
	Document int
	// Line is the 1-based source line of the offending node, 0 when the YAML parser
	// reported the failure itself.
	Line    int
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("document %d", e.Document+1)
	if e.Line > 0 {
		loc = fmt.Sprintf("%s, line %d", loc, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
