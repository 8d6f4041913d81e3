package tabview

import (
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	// KindNull represents an absent cell (empty field in the input).
	KindNull ValueKind = iota
	// KindInteger represents a 64-bit signed integer cell.
	KindInteger
	// KindFloat represents a 64-bit floating-point cell.
	KindFloat
	// KindBool represents a boolean cell ("true"/"false", case-insensitive).
	KindBool
	// KindText represents a plain text cell.
	KindText
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a tagged cell value. The type is inferred per cell, independent
// of other rows in the same column.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Integer returns an integer value.
func Integer(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// Float returns a floating-point value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// InferValue converts a raw field into a typed value. Inference order is
// integer, then float, then boolean, else text. An empty field is null,
// not an empty string.
func InferValue(field string) Value {
	if field == "" {
		return Null()
	}
	if i, ok := parseInteger(field); ok {
		return Integer(i)
	}
	if f, ok := parseFloat(field); ok {
		return Float(f)
	}
	switch strings.ToLower(field) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Text(field)
}

// RawValue converts a raw field without type inference. Empty fields still
// become null so that the null/empty distinction survives round trips.
func RawValue(field string) Value {
	if field == "" {
		return Null()
	}
	return Text(field)
}

// parseInteger reports whether the field is an integer, with a cheap
// first-byte check before strconv.
func parseInteger(field string) (int64, bool) {
	first := field[0]
	if first != '+' && first != '-' && (first < '0' || first > '9') {
		return 0, false
	}
	i, err := strconv.ParseInt(field, 10, 64)
	return i, err == nil
}

// parseFloat reports whether the field is a floating-point number. Values
// accepted by parseInteger never reach here, so this covers non-integer
// numerics only.
func parseFloat(field string) (float64, bool) {
	hasDigit := false
	for _, r := range field {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(field, 64)
	return f, err == nil
}

// Kind returns the variant held by the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// isNumeric reports whether the value is an integer or a float.
func (v Value) isNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// asFloat returns the numeric value as a float64. Only meaningful for
// numeric kinds.
func (v Value) asFloat() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// Int returns the integer payload; zero unless Kind is KindInteger.
func (v Value) Int() int64 {
	return v.i
}

// Float64 returns the float payload; zero unless Kind is KindFloat.
func (v Value) Float64() float64 {
	return v.f
}

// IsTrue returns the boolean payload; false unless Kind is KindBool.
func (v Value) IsTrue() bool {
	return v.b
}

// String returns the serialized form of the value. Null serializes to the
// empty string, which the parser maps back to null.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		// Keep a float marker so the value re-infers as a float, not an
		// integer, on the next parse.
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	default:
		return v.s == o.s
	}
}

// Compare orders two values for sorting. Nulls sort before all non-null
// values. Numeric values compare numerically, integers and floats
// inter-comparable. Booleans compare false before true. Any other mixed
// pairing compares the serialized forms lexicographically (case-sensitive).
func (v Value) Compare(o Value) int {
	if v.kind == KindNull || o.kind == KindNull {
		switch {
		case v.kind == o.kind:
			return 0
		case v.kind == KindNull:
			return -1
		default:
			return 1
		}
	}

	if v.isNumeric() && o.isNumeric() {
		vf, of := v.asFloat(), o.asFloat()
		switch {
		case vf < of:
			return -1
		case vf > of:
			return 1
		default:
			return 0
		}
	}

	if v.kind == KindBool && o.kind == KindBool {
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	}

	return strings.Compare(v.String(), o.String())
}
