package vm

import (
	"fmt"
	"math"
)

// ValueType identifies the type of value stored in the Value struct
type ValueType uint8

const (
	ValNil ValueType = iota
	ValBool
	ValNumber
)

// Value is a stack-allocated tagged union over the three runtime types.
// The payload lives in a uint64 (float64 bits or bool 0/1), so values are
// copied by value everywhere and never alias.
type Value struct {
	Type ValueType
	Data uint64
}

// Constructors

func NilVal() Value {
	return Value{Type: ValNil}
}

func BoolVal(v bool) Value {
	var data uint64
	if v {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func NumberVal(v float64) Value {
	return Value{Type: ValNumber, Data: math.Float64bits(v)}
}

// Accessors

func (v Value) AsBool() bool {
	return v.Data == 1
}

func (v Value) AsNumber() float64 {
	return math.Float64frombits(v.Data)
}

// Type checking helpers

func (v Value) IsNil() bool    { return v.Type == ValNil }
func (v Value) IsBool() bool   { return v.Type == ValBool }
func (v Value) IsNumber() bool { return v.Type == ValNumber }

// IsFalsey implements the truthiness rule: nil and false are falsey,
// true and every number (zero included) are truthy.
func (v Value) IsFalsey() bool {
	return v.Type == ValNil || (v.Type == ValBool && v.Data == 0)
}

// Equals is type-aware equality: a tag mismatch is false regardless of
// payload, matching tags compare payloads (two nils are always equal).
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValNil:
		return true
	case ValBool:
		return v.Data == other.Data
	case ValNumber:
		return v.AsNumber() == other.AsNumber()
	default:
		return false
	}
}

// Inspect returns string representation (for disassembly and tracing)
func (v Value) Inspect() string {
	switch v.Type {
	case ValNil:
		return "nil"
	case ValBool:
		return fmt.Sprintf("%t", v.Data == 1)
	case ValNumber:
		return fmt.Sprintf("%g", v.AsNumber())
	default:
		return "<?>"
	}
}
