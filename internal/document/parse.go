package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// maxDepth bounds nesting, including nesting introduced by aliases.
	maxDepth = 512
	// maxNodes bounds the number of values produced per document after alias expansion.
	maxNodes = 1 << 20

	mergeTag = "!!merge"
)

// Parse splits raw into its YAML documents and converts each into a Value.
// The result preserves document order: index 0 is the first document in the text.
// An input without any document yields an empty slice.
func Parse(raw string) ([]Value, error) {
	dec := yaml.NewDecoder(strings.NewReader(raw))

	var docs []Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{
				Document: len(docs),
				Message:  "malformed YAML",
				Cause:    err,
			}
		}

		c := converter{document: len(docs)}
		v, err := c.convert(&node, 0)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}

	return docs, nil
}

// converter turns a yaml.Node tree into a Value tree for a single document.
type converter struct {
	document int
	nodes    int
}

func (c *converter) fail(n *yaml.Node, format string, args ...interface{}) error {
	return &ParseError{
		Document: c.document,
		Line:     n.Line,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (c *converter) convert(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, c.fail(n, "nesting deeper than %d levels", maxDepth)
	}
	c.nodes++
	if c.nodes > maxNodes {
		return Value{}, c.fail(n, "document expands to more than %d values", maxNodes)
	}

	var v Value
	var err error

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{Kind: NullKind, Line: n.Line, Column: n.Column}, nil
		}
		return c.convert(n.Content[0], depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, c.fail(n, "unknown anchor %q", n.Value)
		}
		v, err = c.convert(n.Alias, depth+1)
		if err != nil {
			return Value{}, err
		}
	case yaml.ScalarNode:
		v, err = c.scalar(n)
		if err != nil {
			return Value{}, err
		}
	case yaml.SequenceNode:
		v = Value{Kind: SequenceKind, Items: make([]Value, 0, len(n.Content))}
		for _, child := range n.Content {
			item, err := c.convert(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			v.Items = append(v.Items, item)
		}
	case yaml.MappingNode:
		v, err = c.mapping(n, depth)
		if err != nil {
			return Value{}, err
		}
	default:
		return Value{}, c.fail(n, "unsupported YAML node kind %d", n.Kind)
	}

	v.Line, v.Column = n.Line, n.Column
	return v, nil
}

func (c *converter) scalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, c.fail(n, "invalid boolean %q", n.Value)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		// Out of int64 range: keep the magnitude as a float.
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, c.fail(n, "invalid integer %q", n.Value)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, c.fail(n, "invalid float %q", n.Value)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

func (c *converter) mapping(n *yaml.Node, depth int) (Value, error) {
	v := Value{Kind: MappingKind, Entries: make([]Entry, 0, len(n.Content)/2)}
	index := make(map[string]int, len(n.Content)/2)
	explicit := make(map[string]int, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return Value{}, c.fail(keyNode, "mapping keys must be scalars")
		}

		if keyNode.ShortTag() == mergeTag {
			merged, err := c.mergeSources(valueNode, depth)
			if err != nil {
				return Value{}, err
			}
			for _, m := range merged {
				for _, e := range m.Entries {
					if _, seen := index[e.Key]; seen {
						continue
					}
					index[e.Key] = len(v.Entries)
					v.Entries = append(v.Entries, e)
				}
			}
			continue
		}

		key := keyNode.Value
		if line, dup := explicit[key]; dup {
			return Value{}, c.fail(keyNode, "mapping key %q already defined at line %d", key, line)
		}
		explicit[key] = keyNode.Line

		val, err := c.convert(valueNode, depth+1)
		if err != nil {
			return Value{}, err
		}
		if at, seen := index[key]; seen {
			// An explicit key overrides a value pulled in by a merge key.
			v.Entries[at].Value = val
			continue
		}
		index[key] = len(v.Entries)
		v.Entries = append(v.Entries, Entry{Key: key, Value: val})
	}

	return v, nil
}

// mergeSources resolves the value of a "<<" key: a mapping or a sequence of mappings.
func (c *converter) mergeSources(n *yaml.Node, depth int) ([]Value, error) {
	target := n
	if target.Kind == yaml.AliasNode && target.Alias != nil {
		target = target.Alias
	}

	var sources []*yaml.Node
	switch target.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{target}
	case yaml.SequenceNode:
		sources = target.Content
	default:
		return nil, c.fail(n, "merge key value must be a mapping or a sequence of mappings")
	}

	out := make([]Value, 0, len(sources))
	for _, src := range sources {
		m, err := c.convert(src, depth+1)
		if err != nil {
			return nil, err
		}
		if m.Kind != MappingKind {
			return nil, c.fail(src, "merge key value must be a mapping or a sequence of mappings")
		}
		out = append(out, m)
	}
	return out, nil
}
