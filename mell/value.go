// Copyright © 2026 The Mell authors

// Package mell defines the data model shared by the mell compiler and
// runtime: values, syntax-tree nodes, variable scopes, the function registry,
// and the per-compilation environment.
package mell

import (
	"fmt"
	"strconv"
)

// Kind is the type of a Value.
type Kind uint

// Possible Kind values.
const (
	// KInvalid (0) is not a valid value kind.
	KInvalid Kind = iota
	// KVoid is the no-op value left behind when a rewrite discards a node.
	KVoid
	// KLiteral values store a scalar constant as text in Value.Str.  Numeric
	// literals keep their source text and are parsed on demand.
	KLiteral
	// KVariable values reference a runtime variable named Value.Str.
	KVariable
	// KCall values reference a function in the registry by name.  The arity
	// observed at parse time is recorded in Value.Arity.
	KCall
	// KSymbol values are operator symbols inside an unresolved placeholder
	// run.  Symbols only exist between parsing and autoconcat reduction and
	// never survive a successful compilation.
	KSymbol
	// KTypeMax is numerically greater than all valid Kind values.
	KTypeMax
)

var kindStrings = []string{
	KInvalid:  "INVALID",
	KVoid:     "void",
	KLiteral:  "literal",
	KVariable: "variable",
	KCall:     "call",
	KSymbol:   "symbol",
}

func (k Kind) String() string {
	if k >= Kind(len(kindStrings)) {
		return kindStrings[KInvalid]
	}
	return kindStrings[k]
}

// Value is the polymorphic value carried by every tree node and scope
// binding.  Values are deep-cloned when scope stacks fork and are never
// aliased between independent stacks.
type Value struct {
	Kind  Kind
	Str   string // literal text, variable name, function name, or operator
	Arity int    // number of call arguments, meaningful only for KCall

	destructor func()
	destroyed  bool
}

// Void returns the no-op value.
func Void() *Value {
	return &Value{Kind: KVoid}
}

// Literal returns a scalar constant holding text.
func Literal(text string) *Value {
	return &Value{Kind: KLiteral, Str: text}
}

// Int returns a numeric literal.
func Int(n int) *Value {
	return Literal(strconv.Itoa(n))
}

// Float returns a numeric literal.  Integral values render without a
// fractional part so that folded arithmetic stays readable.
func Float(f float64) *Value {
	if f == float64(int64(f)) {
		return Literal(strconv.FormatInt(int64(f), 10))
	}
	return Literal(strconv.FormatFloat(f, 'g', -1, 64))
}

// Bool returns a boolean literal.
func Bool(b bool) *Value {
	if b {
		return Literal("true")
	}
	return Literal("false")
}

// Variable returns a reference to the runtime variable name.
func Variable(name string) *Value {
	return &Value{Kind: KVariable, Str: name}
}

// Call returns a reference to the function name with the given arity.
func Call(name string, arity int) *Value {
	return &Value{Kind: KCall, Str: name, Arity: arity}
}

// Symbol returns an unresolved operator symbol.
func Symbol(text string) *Value {
	return &Value{Kind: KSymbol, Str: text}
}

// IsConstant reports whether v has no runtime dependency.
func (v *Value) IsConstant() bool {
	return v.Kind == KLiteral || v.Kind == KVoid
}

// IsDynamic reports whether v depends on runtime state.
func (v *Value) IsDynamic() bool {
	return !v.IsConstant()
}

// IsImmutable reports whether v can never be mutated after creation.
func (v *Value) IsImmutable() bool {
	return v.IsConstant()
}

// Clone returns a deep copy of v.  The copy shares no mutable state with v;
// in particular its destruction hook may fire independently.
func (v *Value) Clone() *Value {
	return &Value{
		Kind:       v.Kind,
		Str:        v.Str,
		Arity:      v.Arity,
		destructor: v.destructor,
	}
}

// SetDestructor registers fn to run when the scope frame owning v is popped.
func (v *Value) SetDestructor(fn func()) {
	v.destructor = fn
}

// destroy runs the destruction hook at most once.
func (v *Value) destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.destructor != nil {
		v.destructor()
	}
}

// Float64 parses a literal as a number.  The second return value is false
// when v is not a parseable numeric literal.
func (v *Value) Float64() (float64, bool) {
	if v.Kind != KLiteral {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Truthy reports the boolean interpretation of a constant value.  Void, the
// empty string, "0" and "false" are false; everything else is true.
func (v *Value) Truthy() bool {
	if v.Kind == KVoid {
		return false
	}
	switch v.Str {
	case "", "0", "false":
		return false
	}
	return true
}

func (v *Value) String() string {
	switch v.Kind {
	case KVoid:
		return "void"
	case KVariable:
		return "@" + v.Str
	case KCall:
		return v.Str + "()"
	case KSymbol:
		return v.Str
	case KLiteral:
		if _, ok := v.Float64(); ok || v.Str == "true" || v.Str == "false" {
			return v.Str
		}
		return fmt.Sprintf("'%s'", v.Str)
	default:
		return kindStrings[KInvalid]
	}
}
