package platform

import (
	"github.com/cgrenz/revamb/ir"
)

type ArchitectureName string

const (
	Amd64   = ArchitectureName("amd64")
	Aarch64 = ArchitectureName("aarch64")
)

// Platform describes the lifted register file of one target architecture.
// The lifting engine exposes every architectural register as a named
// ir.Register; which of them denotes the program counter is the one
// architecture-specific fact the translate passes need.
type Platform interface {
	ArchitectureName() ArchitectureName

	RegisterNames() []string

	ProgramCounterName() string

	IsProgramCounter(reg *ir.Register) bool
}

// RegisterBank owns the ir.Register objects of one lifted module, one per
// architectural register.  Register identity within a module is by
// pointer, so all passes must obtain registers from the same bank.
type RegisterBank struct {
	byName map[string]*ir.Register
	pc     *ir.Register
}

func NewRegisterBank(target Platform) *RegisterBank {
	bank := &RegisterBank{
		byName: map[string]*ir.Register{},
	}
	for _, name := range target.RegisterNames() {
		bank.byName[name] = &ir.Register{Name: name}
	}
	bank.pc = bank.byName[target.ProgramCounterName()]
	return bank
}

// Register returns nil for names outside the platform's register file.
func (bank *RegisterBank) Register(name string) *ir.Register {
	return bank.byName[name]
}

func (bank *RegisterBank) ProgramCounter() *ir.Register {
	return bank.pc
}
