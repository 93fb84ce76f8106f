package translate

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/cgrenz/revamb/binaryfile"
	"github.com/cgrenz/revamb/ir"
	"github.com/cgrenz/revamb/platform"
	"github.com/cgrenz/revamb/platform/amd64"
)

// testProgram is the canonical lifted shape the passes look for:
//
//	r = load(inttoptr(<slot>)); store(pc, r); ret
type testProgram struct {
	module *ir.Module
	block  *ir.Block
	load   *ir.Load
	store  *ir.Store
	pc     *ir.Register
}

func newTestProgram(slot uint64) *testProgram {
	bank := platform.NewRegisterBank(amd64.NewPlatform())
	pc := bank.ProgramCounter()

	module := ir.NewModule("input")
	block := module.AddFunction("root").AddBlock("entry")

	load := &ir.Load{Ptr: &ir.IntToPtr{Src: &ir.IntConst{Value: slot}}}
	store := &ir.Store{Dest: pc, Src: load}
	block.Append(load)
	block.Append(store)
	block.Append(&ir.Ret{})

	return &testProgram{
		module: module,
		block:  block,
		load:   load,
		store:  store,
		pc:     pc,
	}
}

func printfTable() []binaryfile.Relocation {
	return []binaryfile.Relocation{
		{Address: 0x4020, Symbol: "printf", Addend: 0},
	}
}

func newTestContext(relocations []binaryfile.Relocation) *Context {
	return NewContext(
		relocations,
		amd64.NewPlatform(),
		&parseutil.Emitter{})
}
