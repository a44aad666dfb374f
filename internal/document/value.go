// Package document splits multi-document YAML input into generic, order-preserving values.
package document

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies which member of the Value union is populated.
type Kind int

const (
	// NullKind is an explicit null, a missing value or an empty document.
	NullKind Kind = iota
	// BoolKind is a boolean scalar.
	BoolKind
	// IntKind is an integer scalar.
	IntKind
	// FloatKind is a floating point scalar.
	FloatKind
	// StringKind is a string scalar. Timestamps and binary scalars are kept as text.
	StringKind
	// SequenceKind is an ordered list of values.
	SequenceKind
	// MappingKind is a key-ordered mapping.
	MappingKind
)

// String returns the name of the kind as used in error messages.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case IntKind:
		return "integer"
	case FloatKind:
		return "number"
	case StringKind:
		return "string"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed document.
// Exactly the fields matching Kind are meaningful.
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Items   []Value
	Entries []Entry

	// Line and Column locate the value in the source text (1-based, 0 when unknown).
	Line   int
	Column int
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// Null returns a null value.
func Null() Value { return Value{Kind: NullKind} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: BoolKind, Bool: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: IntKind, Int: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{Kind: FloatKind, Float: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: StringKind, Str: s} }

// Sequence returns a sequence holding items.
func Sequence(items ...Value) Value { return Value{Kind: SequenceKind, Items: items} }

// Mapping returns a mapping holding entries in the given order.
func Mapping(entries ...Entry) Value { return Value{Kind: MappingKind, Entries: entries} }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.Kind == NullKind }

// Get returns the value stored under key if v is a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != MappingKind {
		return Value{}, false
	}
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Index returns the i-th item if v is a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.Kind != SequenceKind || i < 0 || i >= len(v.Items) {
		return Value{}, false
	}
	return v.Items[i], true
}

// Child resolves one JSON pointer reference token against v.
func (v Value) Child(token string) (Value, bool) {
	switch v.Kind {
	case MappingKind:
		return v.Get(token)
	case SequenceKind:
		i, err := strconv.Atoi(token)
		if err != nil {
			return Value{}, false
		}
		return v.Index(i)
	default:
		return Value{}, false
	}
}

// At resolves an RFC 6901 JSON pointer against v. The empty pointer is v itself.
func (v Value) At(pointer string) (Value, bool) {
	tokens, err := SplitPointer(pointer)
	if err != nil {
		return Value{}, false
	}
	cur := v
	for _, tok := range tokens {
		next, ok := cur.Child(tok)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Interface converts v to plain Go values: nil, bool, int64, float64, string,
// []interface{} and map[string]interface{}. Key order is lost.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case BoolKind:
		return v.Bool
	case IntKind:
		return v.Int
	case FloatKind:
		return v.Float
	case StringKind:
		return v.Str
	case SequenceKind:
		out := make([]interface{}, len(v.Items))
		for i, item := range v.Items {
			out[i] = item.Interface()
		}
		return out
	case MappingKind:
		out := make(map[string]interface{}, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Key] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as JSON keeping mapping keys in document order.
// Non-finite floats have no JSON form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case IntKind:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case FloatKind:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return encodeString(buf, strconv.FormatFloat(v.Float, 'g', -1, 64))
		}
		buf.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case StringKind:
		return encodeString(buf, v.Str)
	case SequenceKind:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MappingKind:
		buf.WriteByte('{')
		for i, e := range v.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := e.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
