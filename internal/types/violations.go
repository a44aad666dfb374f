// Package types provides type definitions for structured data used throughout the survey-tool system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Violation represents a single schema rule failure in one document
type Violation struct {
	Message string `json:"message"`
	// Document is the 0-based index of the offending document
	Document int `json:"document"`
	// InstanceLocation is a JSON pointer into the document ("" is the document root)
	InstanceLocation string `json:"instance_location"`
	// SchemaLocation is a JSON pointer into the schema locating the violated rule
	SchemaLocation string `json:"schema_location"`
	Keyword        string `json:"keyword,omitempty"`

	// Source position of the offending value, when known
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}

// String formats the violation for display. Document numbers are 1-based.
func (v Violation) String() string {
	return fmt.Sprintf("%s (document %d, loc %s - schema %s)",
		v.Message, v.Document+1, v.InstanceLocation, v.SchemaLocation)
}

// Violations represents a collection of schema violations
type Violations struct {
	Violations []Violation `json:"violations"`
}
