package ir

// A straight-line / basic block.
//
// NOTE: only the last instruction can be a control flow instruction.  A
// block that ends without one implicitly falls through to the next block
// in the function.
type Block struct {
	Label string

	Instructions []Instruction

	// Internal (set by Function.AddBlock)
	Parent *Function
}

// Append adds inst at the end of the block and records use edges from
// inst's load operands.
func (block *Block) Append(inst Instruction) {
	block.Instructions = append(block.Instructions, inst)
	block.attach(inst)
}

// InsertAfter places inst immediately after pos.  pos must belong to the
// block; callers are expected to have located it via Next or iteration.
func (block *Block) InsertAfter(pos Instruction, inst Instruction) {
	for idx, existing := range block.Instructions {
		if existing != pos {
			continue
		}

		block.Instructions = append(block.Instructions, nil)
		copy(block.Instructions[idx+2:], block.Instructions[idx+1:])
		block.Instructions[idx+1] = inst
		block.attach(inst)
		return
	}

	panic("should never happen")
}

// Next returns the instruction immediately following inst within the
// block, or nil if inst is the block's last instruction or not in the
// block at all.
func (block *Block) Next(inst Instruction) Instruction {
	for idx, existing := range block.Instructions {
		if existing == inst {
			if idx == len(block.Instructions)-1 {
				return nil
			}
			return block.Instructions[idx+1]
		}
	}
	return nil
}

func (block *Block) attach(inst Instruction) {
	inst.SetParentBlock(block)
	for _, src := range inst.Sources() {
		load, ok := src.(*Load)
		if ok {
			load.users = append(load.users, inst)
		}
	}
}
