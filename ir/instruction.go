package ir

import (
	"fmt"
	"strings"
)

type Instruction interface {
	ParentBlock() *Block
	SetParentBlock(*Block)

	// Original machine address this instruction was lifted from.  Zero for
	// synthesized instructions.
	Address() uint64

	Sources() []Value // empty if there are no src dependencies

	SetMetadata(kind string, node *Metadata)
	Metadata(kind string) *Metadata

	String() string
}

type instruction struct {
	// Internal (set when the instruction is attached to a block)
	Parent *Block

	addr uint64

	metadata map[string]*Metadata
}

func (ins *instruction) ParentBlock() *Block {
	return ins.Parent
}

func (ins *instruction) SetParentBlock(block *Block) {
	ins.Parent = block
}

func (ins *instruction) Address() uint64 {
	return ins.addr
}

// SetAddress records the machine address an instruction was lifted from.
// Used by the lifting engine; synthesized instructions keep zero.
func (ins *instruction) SetAddress(addr uint64) {
	ins.addr = addr
}

func (instruction) Sources() []Value {
	return nil
}

func (ins *instruction) SetMetadata(kind string, node *Metadata) {
	if ins.metadata == nil {
		ins.metadata = map[string]*Metadata{}
	}
	ins.metadata[kind] = node
}

func (ins *instruction) Metadata(kind string) *Metadata {
	return ins.metadata[kind]
}

type ControlFlowInstruction interface {
	Instruction
	isControlFlow()
}

type controlFlowInstruction struct {
	instruction
}

func (controlFlowInstruction) isControlFlow() {}

// Memory read.  A load is also a value usable as a source operand by
// instructions in the same block.
type Load struct {
	instruction

	Ptr Value // address operand, not the machine address (see Address)

	// Internal (maintained by Block.Append / Block.InsertAfter)
	users []Instruction
}

var _ Instruction = &Load{}
var _ Value = &Load{}

func (Load) isValue() {}

func (load *Load) Sources() []Value {
	return []Value{load.Ptr}
}

// Users enumerates the instructions consuming this load's value, in block
// insertion order.
func (load *Load) Users() []Instruction {
	return load.users
}

func (load *Load) String() string {
	return fmt.Sprintf("load %s", load.Ptr)
}

// Memory / register write.
type Store struct {
	instruction

	Dest Value
	Src  Value
}

var _ Instruction = &Store{}

func (store *Store) Sources() []Value {
	return []Value{store.Dest, store.Src}
}

func (store *Store) String() string {
	return fmt.Sprintf("store %s, %s", store.Dest, store.Src)
}

type Call struct {
	instruction

	Callee *Function
	Args   []Value
}

var _ Instruction = &Call{}

func (call *Call) Sources() []Value {
	return call.Args
}

func (call *Call) String() string {
	args := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("call %s(%s)", call.Callee.Name, strings.Join(args, ", "))
}

// Unconditional jump to another block in the same function.
type Jump struct {
	controlFlowInstruction

	Target *Block
}

var _ Instruction = &Jump{}

func (jump *Jump) String() string {
	return "jmp :" + jump.Target.Label
}

type Ret struct {
	controlFlowInstruction
}

var _ Instruction = &Ret{}

func (Ret) String() string {
	return "ret"
}
