package ir

import (
	"fmt"
)

// Register, integer literal, address cast, or value-producing instruction.
type Value interface {
	isValue()
	String() string
}

// Named storage location in the lifted execution model.  Registers are
// created by the lifting engine; identity is by pointer, one object per
// architectural register per module.
type Register struct {
	Name string
}

var _ Value = &Register{}

func (Register) isValue() {}

func (reg *Register) String() string {
	return "%" + reg.Name
}

type IntConst struct {
	Value uint64
}

var _ Value = &IntConst{}

func (IntConst) isValue() {}

func (imm *IntConst) String() string {
	return fmt.Sprintf("0x%x", imm.Value)
}

// Pure integer-to-address cast.  The lifting engine materializes absolute
// memory references as inttoptr(<literal>).
type IntToPtr struct {
	Src Value
}

var _ Value = &IntToPtr{}

func (IntToPtr) isValue() {}

func (cast *IntToPtr) String() string {
	return fmt.Sprintf("inttoptr(%s)", cast.Src)
}

// ConstAddr matches addresses of the form inttoptr(<literal>) and returns
// the literal.  Runtime-computed addresses do not match.
func ConstAddr(val Value) (uint64, bool) {
	cast, ok := val.(*IntToPtr)
	if !ok {
		return 0, false
	}

	imm, ok := cast.Src.(*IntConst)
	if !ok {
		return 0, false
	}

	return imm.Value, true
}
