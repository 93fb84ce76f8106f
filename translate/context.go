package translate

import (
	"fmt"
	"sync"

	"github.com/pattyshack/gt/parseutil"

	"github.com/cgrenz/revamb/binaryfile"
	"github.com/cgrenz/revamb/ir"
)

// JumpTargetOracle answers architecture-specific questions about lifted
// storage locations.  Implemented by the lifting engine's platform layer.
type JumpTargetOracle interface {
	IsProgramCounter(reg *ir.Register) bool
}

// Context is the shared state of one pipeline run over one module: the
// read-only relocation table, the program-counter oracle, the diagnostics
// emitter, and the typed relocation-tag side table.
//
// The side table caches tags by instruction identity.  Tags additionally
// persist as instruction metadata (RelocationMetadataKind), which is what
// later pipeline runs and downstream passes read; the side table's
// lifetime is this run only.
type Context struct {
	Relocations []binaryfile.Relocation
	Oracle      JumpTargetOracle
	Emitter     *parseutil.Emitter

	mutex   sync.Mutex
	tags    map[*ir.Load]Tag
	located bool
}

func NewContext(
	relocations []binaryfile.Relocation,
	oracle JumpTargetOracle,
	emitter *parseutil.Emitter,
) *Context {
	return &Context{
		Relocations: relocations,
		Oracle:      oracle,
		Emitter:     emitter,
		tags:        map[*ir.Load]Tag{},
	}
}

// attachTag tags load unless it already carries a tag, from this run or a
// previous one.  Tags are write-once; the first assignment sticks.
func (ctx *Context) attachTag(load *ir.Load, tag Tag) bool {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()

	if _, ok := ctx.tags[load]; ok {
		return false
	}
	if load.Metadata(RelocationMetadataKind) != nil {
		return false
	}

	ctx.tags[load] = tag
	load.SetMetadata(RelocationMetadataKind, tag.encode())
	return true
}

// tagOf returns load's relocation tag, consulting the side table first
// and falling back to metadata left by an earlier pipeline run.
func (ctx *Context) tagOf(load *ir.Load) (Tag, bool) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()

	tag, ok := ctx.tags[load]
	if ok {
		return tag, true
	}

	node := load.Metadata(RelocationMetadataKind)
	if node == nil {
		return Tag{}, false
	}

	tag, err := DecodeTag(node)
	if err != nil {
		ctx.Emitter.EmitErrors(
			fmt.Errorf("load at 0x%x: %w", load.Address(), err))
		return Tag{}, false
	}

	ctx.tags[load] = tag
	return tag, true
}

func (ctx *Context) markLocated() {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.located = true
}

func (ctx *Context) alreadyLocated() bool {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	return ctx.located
}
