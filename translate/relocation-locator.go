package translate

import (
	"github.com/cgrenz/revamb/binaryfile"
	"github.com/cgrenz/revamb/ir"
)

// RelocationLocator tags reads whose address is a known relocation slot.
// Leaf pass; its tags feed both call synthesizer variants.
type RelocationLocator struct {
	ctx *Context

	changed bool
}

var _ Pass[*ir.Module] = &RelocationLocator{}

func NewRelocationLocator(ctx *Context) *RelocationLocator {
	return &RelocationLocator{
		ctx: ctx,
	}
}

func (locator *RelocationLocator) Process(module *ir.Module) {
	locator.changed = ParallelProcessBlocks(module, locator.LocateBlock)
	locator.ctx.markLocated()
}

func (locator *RelocationLocator) Changed() bool {
	return locator.changed
}

// LocateBlock tags every untagged read in block whose address is a
// compile-time-constant integer present in the relocation table.  Reads
// with runtime-computed addresses, or constants absent from the table,
// are left untouched; that is the common case, not an error.
//
// Only the matched reads' metadata is mutated.  Control flow is never
// changed and no instructions are created or deleted.
func (locator *RelocationLocator) LocateBlock(block *ir.Block) bool {
	changed := false
	for _, inst := range block.Instructions {
		load, ok := inst.(*ir.Load)
		if !ok {
			continue
		}

		_, fresh := locator.ctx.locateLoad(load)
		changed = changed || fresh
	}
	return changed
}

// locateLoad performs the shared tagging step on a single read: match the
// constant address against the relocation table and attach a write-once
// tag.  fresh reports whether this call attached the tag.
func (ctx *Context) locateLoad(load *ir.Load) (Tag, bool) {
	address, ok := ir.ConstAddr(load.Ptr)
	if !ok {
		return Tag{}, false
	}

	reloc, ok := binaryfile.Lookup(ctx.Relocations, address)
	if !ok {
		return Tag{}, false
	}

	tag := Tag{
		Symbol: reloc.Symbol,
		Addend: reloc.Addend,
	}
	return tag, ctx.attachTag(load, tag)
}
