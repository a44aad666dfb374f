package schemas

import (
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
	"github.com/huppifluppi/survey-tool-cli/internal/types"
)

// summaryErrors are raised by gojsonschema in addition to the branch errors it
// already merged into the result. They repeat those failures and are skipped.
var summaryErrors = map[string]bool{
	"number_all_of":  true,
	"condition_then": true,
	"condition_else": true,
}

// Validate evaluates value against schema and returns every violation found.
// A valid document yields an empty slice. Violations are ordered by the source
// position of the offending value; ties keep the evaluator's order.
func Validate(value document.Value, schema *Schema) ([]types.Violation, error) {
	if schema == nil || schema.compiled == nil {
		return nil, &EvaluationError{Schema: "(none)", Message: "schema not loaded"}
	}

	data, err := value.MarshalJSON()
	if err != nil {
		return nil, &EvaluationError{Schema: schema.name, Message: "document cannot be encoded", Cause: err}
	}

	result, err := schema.compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &EvaluationError{Schema: schema.name, Message: "document cannot be evaluated", Cause: err}
	}

	violations := make([]types.Violation, 0, len(result.Errors()))
	if result.Valid() {
		return violations, nil
	}

	loc := &locator{schema: schema, doc: value}
	for _, desc := range result.Errors() {
		errType := desc.Type()
		if summaryErrors[errType] {
			continue
		}

		tokens := instanceTokens(desc.Context())
		property := detail(desc.Details(), "property")

		v := types.Violation{
			Message:          desc.Description(),
			InstanceLocation: document.JoinPointer(tokens...),
			SchemaLocation:   loc.locate(tokens, errType, property),
			Keyword:          keywordFor(errType),
		}
		if node, ok := value.At(v.InstanceLocation); ok {
			if errType == "additional_property_not_allowed" {
				if member, ok := node.Get(property); ok {
					node = member
				}
			}
			v.Line, v.Column = node.Line, node.Column
		}
		violations = append(violations, v)
	}

	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return violations, nil
}

// instanceTokens turns a gojsonschema context such as (root).content.0.title
// into unescaped pointer tokens.
func instanceTokens(ctx *gojsonschema.JsonContext) []string {
	if ctx == nil {
		return nil
	}
	parts := strings.Split(ctx.String("\x00"), "\x00")
	if len(parts) > 0 && parts[0] == gojsonschema.STRING_CONTEXT_ROOT {
		parts = parts[1:]
	}
	return parts
}

func detail(details gojsonschema.ErrorDetails, key string) string {
	if details == nil {
		return ""
	}
	s, _ := details[key].(string)
	return s
}

func keywordFor(errType string) string {
	if kw, ok := keywords[errType]; ok {
		return kw
	}
	return errType
}
