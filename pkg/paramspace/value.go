package paramspace

import (
	"strconv"
)

// Kind identifies the domain variant of a descriptor
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindContinuous
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindContinuous:
		return "continuous"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ParseKind converts a configuration type name into a Kind
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "boolean", "bool":
		return KindBoolean, true
	case "integer", "int":
		return KindInteger, true
	case "continuous", "float", "real":
		return KindContinuous, true
	case "enum":
		return KindEnum, true
	default:
		return 0, false
	}
}

// Value is one typed assignment drawn from a descriptor's domain
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// BoolValue wraps a boolean domain value
func BoolValue(b bool) Value { return Value{kind: KindBoolean, b: b} }

// IntValue wraps an integer domain value
func IntValue(i int64) Value { return Value{kind: KindInteger, i: i} }

// FloatValue wraps a continuous domain value
func FloatValue(f float64) Value { return Value{kind: KindContinuous, f: f} }

// EnumValue wraps an enumerated domain value
func EnumValue(s string) Value { return Value{kind: KindEnum, s: s} }

// Kind returns the domain variant the value belongs to
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload
func (v Value) Int() int64 { return v.i }

// Float returns the continuous payload
func (v Value) Float() float64 { return v.f }

// String formats the value the way it appears in a rendered configuration
func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindContinuous:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindEnum:
		return v.s
	default:
		return ""
	}
}
