package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindFloat Kind = iota
	KindString
	KindBool
	KindNil
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The language has no
// numeric tower: every number is a float64.
type Value interface {
	Kind() Kind
}

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// Truthy applies the language's condition coercion: nil and false are falsy,
// everything else is truthy.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case NilValue:
		return false
	case BoolValue:
		return v.Val
	default:
		return true
	}
}

// Equals compares by type and value. Mismatched kinds are unequal, never an
// error.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case FloatValue:
		return av.Val == b.(FloatValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NilValue:
		return true
	default:
		return false
	}
}

// Format renders a value the way the print statement emits it: floats in
// their shortest decimal form, strings unquoted, booleans as true/false,
// nil as nil.
func Format(val Value) string {
	switch v := val.(type) {
	case FloatValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case StringValue:
		return v.Val
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case NilValue:
		return "nil"
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}
