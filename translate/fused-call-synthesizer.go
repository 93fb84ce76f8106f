package translate

import (
	"github.com/cgrenz/revamb/ir"
)

// FusedCallSynthesizer combines locating and rewriting in one block-local
// traversal.  Meant to run once, early in the pipeline, possibly
// alongside a cooperating expression-simplification pass; only reads it
// tags itself trigger rewriting, so re-running it is a no-op for blocks
// whose reads are already tagged.
//
// By default the fused variant performs no duplicate-call check (single
// application semantics, matching its intended use).  Pipelines that may
// re-run it over modules carrying synthesized calls from other sources
// set recheck, which applies the split variant's positional check.
type FusedCallSynthesizer struct {
	ctx     *Context
	recheck bool

	changed bool
}

var _ CallSynthesizer = &FusedCallSynthesizer{}
var _ Pass[*ir.Module] = &FusedCallSynthesizer{}

func NewFusedCallSynthesizer(
	ctx *Context,
	recheck bool,
) *FusedCallSynthesizer {
	return &FusedCallSynthesizer{
		ctx:     ctx,
		recheck: recheck,
	}
}

func (syn *FusedCallSynthesizer) Process(module *ir.Module) {
	syn.changed = syn.Rewrite(module)
}

func (syn *FusedCallSynthesizer) Changed() bool {
	return syn.changed
}

func (syn *FusedCallSynthesizer) Locate(module *ir.Module) bool {
	changed := ParallelProcessBlocks(
		module,
		NewRelocationLocator(syn.ctx).LocateBlock)
	syn.ctx.markLocated()
	return changed
}

func (syn *FusedCallSynthesizer) Rewrite(module *ir.Module) bool {
	return ParallelProcessBlocks(module, syn.ProcessBlock)
}

// ProcessBlock tags relocation reads and, in the same traversal, rewrites
// every immediate user of a freshly tagged read that stores it to the
// program counter.  Only zero-addend tags qualify: a nonzero addend is
// symbol+offset data arithmetic, and collapsing it into a no-argument
// call would silently discard the offset.
func (syn *FusedCallSynthesizer) ProcessBlock(block *ir.Block) bool {
	changed := false

	// Snapshot: synthesized calls are appended into the block mid-walk.
	instructions := make([]ir.Instruction, len(block.Instructions))
	copy(instructions, block.Instructions)

	for _, inst := range instructions {
		load, ok := inst.(*ir.Load)
		if !ok {
			continue
		}

		tag, fresh := syn.ctx.locateLoad(load)
		if !fresh {
			continue
		}
		changed = true

		if tag.Addend != 0 {
			continue
		}

		for _, user := range load.Users() {
			store, ok := user.(*ir.Store)
			if !ok || store.Src != load {
				continue
			}

			// Purely local: a worker may only mutate its own block.
			// Cross-block users are the split variant's job.
			if store.ParentBlock() != block {
				continue
			}

			reg, ok := store.Dest.(*ir.Register)
			if !ok || !syn.ctx.Oracle.IsProgramCounter(reg) {
				continue
			}

			if syn.recheck && alreadySynthesized(store, tag) {
				continue
			}

			syn.ctx.synthesizeCall(store, tag)
			if syn.ctx.Emitter.HasErrors() {
				return changed
			}
		}
	}

	return changed
}
