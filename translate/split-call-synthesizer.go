package translate

import (
	"github.com/cgrenz/revamb/ir"
)

// SplitCallSynthesizer is the module-wide, idempotent variant: it reuses
// tags left by an already-run RelocationLocator (or derives them itself),
// then rewrites program-counter stores across the whole module.  The
// positional alreadySynthesized check makes it safe to run any number of
// times, including interleaved with unrelated transformations.
type SplitCallSynthesizer struct {
	ctx *Context

	changed bool
}

var _ CallSynthesizer = &SplitCallSynthesizer{}
var _ Pass[*ir.Module] = &SplitCallSynthesizer{}

func NewSplitCallSynthesizer(ctx *Context) *SplitCallSynthesizer {
	return &SplitCallSynthesizer{
		ctx: ctx,
	}
}

func (syn *SplitCallSynthesizer) Process(module *ir.Module) {
	changed := false

	// Dependency sharing: skip the locating step when a locator pass
	// already ran under this context.
	if !syn.ctx.alreadyLocated() {
		changed = syn.Locate(module)
	}

	syn.changed = syn.Rewrite(module) || changed
}

func (syn *SplitCallSynthesizer) Changed() bool {
	return syn.changed
}

func (syn *SplitCallSynthesizer) Locate(module *ir.Module) bool {
	changed := ParallelProcessBlocks(
		module,
		NewRelocationLocator(syn.ctx).LocateBlock)
	syn.ctx.markLocated()
	return changed
}

// Rewrite scans every store in the module.  Stores to the program counter
// whose stored value is a read tagged with a zero addend get a call to
// the symbol's stub inserted immediately after them, unless the following
// instruction already is that call.
//
// Serialized at module scope: stub creation mutates the shared function
// table.
func (syn *SplitCallSynthesizer) Rewrite(module *ir.Module) bool {
	changed := false
	for _, fn := range module.Functions {
		for _, block := range fn.Blocks {
			instructions := make([]ir.Instruction, len(block.Instructions))
			copy(instructions, block.Instructions)

			for _, inst := range instructions {
				store, ok := inst.(*ir.Store)
				if !ok {
					continue
				}

				reg, ok := store.Dest.(*ir.Register)
				if !ok || !syn.ctx.Oracle.IsProgramCounter(reg) {
					continue
				}

				load, ok := store.Src.(*ir.Load)
				if !ok {
					continue
				}

				tag, ok := syn.ctx.tagOf(load)
				if !ok || tag.Addend != 0 {
					continue
				}

				if alreadySynthesized(store, tag) {
					continue
				}

				changed = syn.ctx.synthesizeCall(store, tag) || changed
				if syn.ctx.Emitter.HasErrors() {
					return changed
				}
			}
		}
	}
	return changed
}
