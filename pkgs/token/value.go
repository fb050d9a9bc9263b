package token

import (
	"math"
	"strconv"
)

// Value is the tagged union of runtime values: Number, String, Bool,
// and Nil. It doubles as the literal carried by NUMBER/STRING tokens
// and as the result type of expression evaluation. Each variant is a
// distinct concrete type implementing the marker method, the same
// interface-plus-one-struct-per-variant idiom the teacher uses for its
// AST node sum types.
type Value interface {
	isValue()
	// Truthy reports whether the value counts as true in a boolean
	// context. Only Nil and Bool(false) are falsy.
	Truthy() bool
	// Equal implements Lox's structural equality: cross-variant
	// comparisons are always false except Nil == Nil.
	Equal(Value) bool
	// String renders the canonical printable form used by `print`
	// and by diagnostic messages.
	String() string
}

// Number is an IEEE-754 double.
type Number float64

func (Number) isValue()     {}
func (Number) Truthy() bool { return true }

func (n Number) Equal(other Value) bool {
	o, ok := other.(Number)
	if !ok {
		return false
	}
	return float64(n) == float64(o) // NaN != NaN, per IEEE-754.
}

func (n Number) String() string {
	v := float64(n)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// Str is the String value variant (named Str to avoid colliding with
// the String() method required by the Value interface).
type Str string

func (Str) isValue()     {}
func (Str) Truthy() bool { return true }

func (s Str) Equal(other Value) bool {
	o, ok := other.(Str)
	if !ok {
		return false
	}
	return s == o
}

func (s Str) String() string { return string(s) }

// Bool is a boolean value.
type Bool bool

func (Bool) isValue()       {}
func (b Bool) Truthy() bool { return bool(b) }

func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	if !ok {
		return false
	}
	return b == o
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// nilValue is the singleton Nil variant.
type nilValue struct{}

func (nilValue) isValue()     {}
func (nilValue) Truthy() bool { return false }

func (nilValue) Equal(other Value) bool {
	_, ok := other.(nilValue)
	return ok
}

func (nilValue) String() string { return "nil" }

// Nil is the single Nil value, analogous to the source's `void*` nil
// encoding but as a proper variant of the union (spec.md §9 redesign).
var Nil Value = nilValue{}
