package aarch64

import (
	"strconv"

	"github.com/cgrenz/revamb/ir"
	"github.com/cgrenz/revamb/platform"
)

const programCounter = "pc"

var registerNames = func() []string {
	names := []string{programCounter, "sp", "fp", "lr"}
	for idx := 0; idx < 29; idx++ {
		names = append(names, "x"+strconv.Itoa(idx))
	}
	return names
}()

type Platform struct{}

var _ platform.Platform = Platform{}

func NewPlatform() platform.Platform {
	return Platform{}
}

func (Platform) ArchitectureName() platform.ArchitectureName {
	return platform.Aarch64
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
