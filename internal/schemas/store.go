// Package schemas compiles JSON Schema documents and evaluates parsed survey documents against them.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
	embedded "github.com/huppifluppi/survey-tool-cli/schemas"
)

// Schema is a compiled, read-only schema. It is safe for concurrent use.
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
	// raw is the decoded schema document, walked to build schema pointers
	raw interface{}
	// ifs holds the "if" sub-schemas compiled on their own, keyed by the
	// pointer of the schema object that carries them. A nil entry means the
	// condition could not be compiled separately and both branches are searched.
	ifs map[string]*gojsonschema.Schema
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

var (
	surveyOnce   sync.Once
	surveySchema *Schema
	surveyErr    error
)

// Load returns the embedded survey schema. It is compiled on first use and
// shared by every later caller.
func Load() (*Schema, error) {
	surveyOnce.Do(func() {
		surveySchema, surveyErr = Compile(embedded.SurveyName, embedded.Survey)
	})
	return surveySchema, surveyErr
}

// LoadFile reads and compiles an external schema file.
// Relative paths are looked up with ResolveSchemaPath first.
func LoadFile(path string) (*Schema, error) {
	resolved := path
	if !filepath.IsAbs(path) {
		if p := ResolveSchemaPath(path); p != "" {
			resolved = p
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    resolved,
			Message: "schema file not readable",
			Cause:   err,
		}
	}
	return Compile(resolved, data)
}

// Compile compiles a draft-07 schema document. The document is checked against
// the draft-07 meta-schema before use.
func Compile(name string, data []byte) (*Schema, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaLoadError{
			Path:    name,
			Message: "schema is not valid JSON",
			Cause:   err,
		}
	}
	switch raw.(type) {
	case map[string]interface{}, bool:
	default:
		return nil, &SchemaLoadError{
			Path:    name,
			Message: "schema must be an object or a boolean",
		}
	}

	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	loader.Validate = true
	compiled, err := loader.Compile(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    name,
			Message: "schema does not compile",
			Cause:   err,
		}
	}

	s := &Schema{
		name:     name,
		compiled: compiled,
		raw:      raw,
		ifs:      make(map[string]*gojsonschema.Schema),
	}
	if root, ok := raw.(map[string]interface{}); ok {
		for _, ptr := range conditionPointers(raw, "") {
			s.ifs[ptr] = compileCondition(root, ptr)
		}
	}
	return s, nil
}

// compileCondition compiles the "if" member of the schema object at ptr as a
// standalone schema. The whole document is carried along so local references
// inside the condition still resolve.
func compileCondition(root map[string]interface{}, ptr string) *gojsonschema.Schema {
	wrapper := make(map[string]interface{}, len(root)+1)
	for k, v := range root {
		wrapper[k] = v
	}
	wrapper["$ref"] = "#" + ptr + "/if"

	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	compiled, err := loader.Compile(gojsonschema.NewGoLoader(wrapper))
	if err != nil {
		return nil
	}
	return compiled
}

// conditionPointers lists the pointers of every schema object holding an "if" keyword.
func conditionPointers(node interface{}, ptr string) []string {
	var out []string
	switch n := node.(type) {
	case map[string]interface{}:
		if _, ok := n["if"]; ok {
			out = append(out, ptr)
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, conditionPointers(n[k], ptr+"/"+document.EscapeToken(k))...)
		}
	case []interface{}:
		for i, item := range n {
			out = append(out, conditionPointers(item, fmt.Sprintf("%s/%d", ptr, i))...)
		}
	}
	return out
}

// ResolveSchemaPath attempts to find a schema file by trying multiple common path resolutions.
// It tries paths relative to the current working directory, then one and two levels up.
// Returns the first path that exists, or empty string if none found.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}
