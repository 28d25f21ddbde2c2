package codegen

import "fmt"

// Kind classifies the machine representation of an emitted value, the
// axis every cast helper below switches on.
type Kind int

const (
	KInteger Kind = iota
	KFloat
	KPointer
	KFatPointer
)

// Value is the result of lowering one expression: an LLVM type string
// paired with the textual operand (an SSA register like "%t3", or a
// literal constant like "5") that yields it.
type Value struct {
	Kind Kind
	Type string
	Text string
}

func intConst(v int64, llType string) Value {
	return Value{Kind: KInteger, Type: llType, Text: fmt.Sprintf("%d", v)}
}

func floatConst(v float64, llType string) Value {
	return Value{Kind: KFloat, Type: llType, Text: fmt.Sprintf("%g", v)}
}

func reg(kind Kind, llType, ssa string) Value {
	return Value{Kind: kind, Type: llType, Text: ssa}
}
