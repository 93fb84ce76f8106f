package amd64

import (
	"github.com/cgrenz/revamb/ir"
	"github.com/cgrenz/revamb/platform"
)

// The lifting engine names the program counter CSV "pc" regardless of the
// architectural register name (rip on x86-64).
const programCounter = "pc"

var registerNames = []string{
	programCounter,
	"rsp", "rbp",
	"rax", "rbx", "rcx", "rdx", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

type Platform struct{}

var _ platform.Platform = Platform{}

func NewPlatform() platform.Platform {
	return Platform{}
}

func (Platform) ArchitectureName() platform.ArchitectureName {
	return platform.Amd64
}

func (Platform) RegisterNames() []string {
	return registerNames
}

func (Platform) ProgramCounterName() string {
	return programCounter
}

func (Platform) IsProgramCounter(reg *ir.Register) bool {
	return reg != nil && reg.Name == programCounter
}
