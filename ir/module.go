package ir

import (
	"fmt"
	"strings"
)

type Function struct {
	Name string

	// Empty for declarations (external functions with unknown bodies).
	Blocks []*Block

	// Internal (set by Module.AddFunction / Module.GetOrInsertFunction)
	Parent *Module
}

func (fn *Function) AddBlock(label string) *Block {
	block := &Block{
		Label:  label,
		Parent: fn,
	}
	fn.Blocks = append(fn.Blocks, block)
	return block
}

func (fn *Function) String() string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "func %s:\n", fn.Name)
	for _, block := range fn.Blocks {
		fmt.Fprintf(&builder, "  :%s\n", block.Label)
		for _, inst := range block.Instructions {
			fmt.Fprintf(&builder, "    %s\n", inst)
		}
	}
	return builder.String()
}

// The lifted program unit.  Exclusively owned by the pipeline driver for
// the duration of a pass; see the translate package for which passes may
// mutate which parts concurrently.
type Module struct {
	Name string

	Functions []*Function

	// Internal
	functionIndex map[string]*Function
	namedMetadata map[string][]*Metadata
}

func NewModule(name string) *Module {
	return &Module{
		Name:          name,
		functionIndex: map[string]*Function{},
		namedMetadata: map[string][]*Metadata{},
	}
}

func (module *Module) AddFunction(name string) *Function {
	fn := &Function{
		Name:   name,
		Parent: module,
	}
	module.Functions = append(module.Functions, fn)
	module.functionIndex[name] = fn
	return fn
}

// FindFunction returns nil if no function with that name exists.
func (module *Module) FindFunction(name string) *Function {
	return module.functionIndex[name]
}

// GetOrInsertFunction returns the function named name, creating an empty
// declaration for it first if needed.  created reports whether this call
// performed the creation.
func (module *Module) GetOrInsertFunction(name string) (*Function, bool) {
	fn, ok := module.functionIndex[name]
	if ok {
		return fn, false
	}
	return module.AddFunction(name), true
}

// SetNamedMetadata attaches nodes to the module under kind, replacing any
// previously attached list.
func (module *Module) SetNamedMetadata(kind string, nodes []*Metadata) {
	module.namedMetadata[kind] = nodes
}

func (module *Module) NamedMetadata(kind string) []*Metadata {
	return module.namedMetadata[kind]
}
