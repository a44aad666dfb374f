package schemas

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/xeipuuv/gojsonschema"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
)

// keywords maps gojsonschema error types to the schema keyword that raised them.
// Types without an entry are attributed to the schema object itself.
var keywords = map[string]string{
	"required":                        "required",
	"invalid_type":                    "type",
	"const":                           "const",
	"enum":                            "enum",
	"pattern":                         "pattern",
	"format":                          "format",
	"number_any_of":                   "anyOf",
	"number_one_of":                   "oneOf",
	"number_all_of":                   "allOf",
	"number_not":                      "not",
	"missing_dependency":              "dependencies",
	"array_no_additional_items":       "additionalItems",
	"array_min_items":                 "minItems",
	"array_max_items":                 "maxItems",
	"unique":                          "uniqueItems",
	"contains":                        "contains",
	"array_min_properties":            "minProperties",
	"array_max_properties":            "maxProperties",
	"additional_property_not_allowed": "additionalProperties",
	"invalid_property_pattern":        "patternProperties",
	"invalid_property_name":           "propertyNames",
	"string_gte":                      "minLength",
	"string_lte":                      "maxLength",
	"multiple_of":                     "multipleOf",
	"number_gte":                      "minimum",
	"number_gt":                       "exclusiveMinimum",
	"number_lte":                      "maximum",
	"number_lt":                       "exclusiveMaximum",
	"condition_then":                  "then",
	"condition_else":                  "else",
}

// maxExpand bounds reference chasing while collecting the schema objects that apply to one node.
const maxExpand = 64

// candidate is one schema object that applies to the instance node being located.
type candidate struct {
	ptr  string
	node map[string]interface{}
}

// locator walks the raw schema document alongside a document to find the
// schema pointer of the rule behind a violation.
type locator struct {
	schema *Schema
	doc    document.Value
}

// locate returns the schema pointer for an error of type errType raised at the
// instance node addressed by tokens. property is the offending member name for
// required and additionalProperties errors.
func (l *locator) locate(tokens []string, errType, property string) string {
	value := l.doc
	cands := l.expand(nil, "", l.schema.raw, value, 0)
	for _, tok := range tokens {
		child, _ := value.Child(tok)
		var next []candidate
		for _, c := range cands {
			for _, sub := range childSchemas(c, tok, value.Kind) {
				next = l.expand(next, sub.ptr, sub.node, child, 0)
			}
		}
		cands = next
		value = child
		if len(cands) == 0 {
			break
		}
	}

	keyword, ok := keywords[errType]
	if !ok {
		if len(cands) > 0 {
			return cands[0].ptr
		}
		return ""
	}
	for _, c := range cands {
		member, ok := c.node[keyword]
		if !ok {
			continue
		}
		if keyword == "required" && property != "" && !listsString(member, property) {
			continue
		}
		if keyword == "additionalProperties" && property != "" && declares(c.node, property) {
			continue
		}
		return c.ptr + "/" + keyword
	}
	if len(cands) > 0 {
		return cands[0].ptr
	}
	return ""
}

// expand appends the schema object at ptr and every schema object it pulls in
// for value: reference targets, allOf/anyOf/oneOf members and the conditional
// branch selected by its "if".
func (l *locator) expand(out []candidate, ptr string, node interface{}, value document.Value, depth int) []candidate {
	m, ok := node.(map[string]interface{})
	if !ok || depth > maxExpand {
		return out
	}
	out = append(out, candidate{ptr: ptr, node: m})

	if ref, ok := m["$ref"].(string); ok {
		if target, found := resolveRef(l.schema.raw, ref); found {
			out = l.expand(out, refPointer(ref), target, value, depth+1)
		}
		return out
	}

	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		items, ok := m[key].([]interface{})
		if !ok {
			continue
		}
		for i, item := range items {
			out = l.expand(out, ptr+"/"+key+"/"+strconv.Itoa(i), item, value, depth+1)
		}
	}

	if _, ok := m["if"]; ok {
		matched, known := l.condition(ptr, value)
		if (!known || matched) && m["then"] != nil {
			out = l.expand(out, ptr+"/then", m["then"], value, depth+1)
		}
		if (!known || !matched) && m["else"] != nil {
			out = l.expand(out, ptr+"/else", m["else"], value, depth+1)
		}
	}
	return out
}

// condition evaluates the "if" of the schema object at ptr against value.
// known is false when the condition could not be evaluated on its own.
func (l *locator) condition(ptr string, value document.Value) (matched, known bool) {
	cond := l.schema.ifs[ptr]
	if cond == nil {
		return false, false
	}
	data, err := value.MarshalJSON()
	if err != nil {
		return false, false
	}
	result, err := cond.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return false, false
	}
	return result.Valid(), true
}

// subSchema is a schema member that may not be an object (boolean schemas).
type subSchema struct {
	ptr  string
	node interface{}
}

// childSchemas returns the sub-schemas of c that apply to the member tok of an
// instance of the given kind.
func childSchemas(c candidate, tok string, kind document.Kind) []subSchema {
	var out []subSchema
	switch kind {
	case document.MappingKind:
		matched := false
		if props, ok := c.node["properties"].(map[string]interface{}); ok {
			if sub, ok := props[tok]; ok {
				out = append(out, subSchema{c.ptr + "/properties/" + document.EscapeToken(tok), sub})
				matched = true
			}
		}
		if patterns, ok := c.node["patternProperties"].(map[string]interface{}); ok {
			keys := make([]string, 0, len(patterns))
			for pattern := range patterns {
				keys = append(keys, pattern)
			}
			sort.Strings(keys)
			for _, pattern := range keys {
				sub := patterns[pattern]
				re, err := regexp.Compile(pattern)
				if err != nil || !re.MatchString(tok) {
					continue
				}
				out = append(out, subSchema{c.ptr + "/patternProperties/" + document.EscapeToken(pattern), sub})
				matched = true
			}
		}
		if !matched {
			if sub, ok := c.node["additionalProperties"].(map[string]interface{}); ok {
				out = append(out, subSchema{c.ptr + "/additionalProperties", sub})
			}
		}
	case document.SequenceKind:
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return out
		}
		switch items := c.node["items"].(type) {
		case map[string]interface{}:
			out = append(out, subSchema{c.ptr + "/items", items})
		case []interface{}:
			if idx < len(items) {
				out = append(out, subSchema{c.ptr + "/items/" + tok, items[idx]})
			} else if sub, ok := c.node["additionalItems"].(map[string]interface{}); ok {
				out = append(out, subSchema{c.ptr + "/additionalItems", sub})
			}
		}
	}
	return out
}

// resolveRef resolves a document-local reference such as "#/definitions/page".
func resolveRef(root interface{}, ref string) (interface{}, bool) {
	tokens, err := document.SplitPointer(ref)
	if err != nil || len(ref) == 0 || ref[0] != '#' {
		return nil, false
	}
	cur := root
	for _, tok := range tokens {
		switch n := cur.(type) {
		case map[string]interface{}:
			next, ok := n[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case []interface{}:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			cur = n[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func refPointer(ref string) string {
	return ref[1:]
}

func listsString(list interface{}, s string) bool {
	items, ok := list.([]interface{})
	if !ok {
		return false
	}
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// declares reports whether the schema object lists name in its properties.
func declares(node map[string]interface{}, name string) bool {
	props, ok := node["properties"].(map[string]interface{})
	if !ok {
		return false
	}
	_, ok = props[name]
	return ok
}
