// Package schemas ships the JSON Schema documents the tool validates against.
package schemas

import _ "embed"

// Survey is the draft-07 schema every survey configuration document is checked with.
//
//go:embed survey.schema.json
var Survey []byte

// SurveyName is the name Survey is reported under in errors and logs.
const SurveyName = "survey.schema.json"
