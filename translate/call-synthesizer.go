package translate

import (
	"fmt"

	"github.com/cgrenz/revamb/ir"
)

// CallSynthesizer rewrites program-counter stores whose stored value is
// a tagged relocation read into explicit calls to dl.<symbol> stubs.
// Two implementations: a fused single-traversal variant for early or
// standalone use, and a module-wide split variant that is idempotent and
// cooperates with a previously run RelocationLocator.
type CallSynthesizer interface {
	// Locate performs the relocation-tagging step over the whole module.
	Locate(module *ir.Module) bool

	// Rewrite synthesizes dl.<symbol> calls for qualifying stores.
	Rewrite(module *ir.Module) bool
}

// alreadySynthesized reports whether the instruction immediately
// following store is already a call to the stub tag names.  This is the
// sole de-duplication mechanism: positional on purpose, so it holds
// across repeated full-pipeline runs without a visited set, as long as
// intervening transformations preserve the store's immediate successor
// slot.
func alreadySynthesized(store *ir.Store, tag Tag) bool {
	block := store.ParentBlock()
	if block == nil {
		return false
	}

	call, ok := block.Next(store).(*ir.Call)
	return ok && call.Callee != nil && call.Callee.Name == tag.StubName()
}

// synthesizeCall inserts a no-argument call to tag's stub immediately
// after store, creating the stub on first reference.  A store with no
// following instruction indicates a malformed block left behind by an
// earlier pass; it is reported on the emitter and nothing is mutated.
func (ctx *Context) synthesizeCall(store *ir.Store, tag Tag) bool {
	block := store.ParentBlock()
	if block == nil || block.Next(store) == nil {
		ctx.Emitter.EmitErrors(fmt.Errorf(
			"store at 0x%x: no insertion point for call to %s",
			store.Address(),
			tag.StubName()))
		return false
	}

	stub := ctx.getOrCreateStub(block.Parent.Parent, tag)
	block.InsertAfter(store, &ir.Call{Callee: stub})
	return true
}

// getOrCreateStub obtains the module's stub function for tag's symbol,
// declaring it on first reference.  A new stub gets a minimal body that
// returns immediately: an opaque, control-flow-terminating external
// effect.  The module owns all stubs; stub name uniquely determines
// identity, so every reference to the same symbol resolves to the same
// function object.
func (ctx *Context) getOrCreateStub(module *ir.Module, tag Tag) *ir.Function {
	// Serialized: the module function table is shared state even when the
	// caller runs one worker per block.
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()

	stub, created := module.GetOrInsertFunction(tag.StubName())
	if created {
		stub.AddBlock("entry").Append(&ir.Ret{})
	}
	return stub
}
