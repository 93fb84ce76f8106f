package translate

import (
	"fmt"

	"github.com/cgrenz/revamb/ir"
)

const (
	// Metadata kind under which relocation tags are persisted on read
	// instructions, for consumption by later passes without re-deriving.
	RelocationMetadataKind = "relocation"

	// Module-level metadata kind listing the needed shared libraries.
	LibrariesMetadataKind = "libraries"

	// Name prefix of synthesized external-function stubs.
	StubPrefix = "dl."
)

// Tag records that a read instruction targets a relocation slot: the
// slot's symbol and addend.  Write-once per read; a zero addend marks the
// symbol's own address, suitable for direct call synthesis.
type Tag struct {
	Symbol string
	Addend int64
}

func (tag Tag) StubName() string {
	return StubPrefix + tag.Symbol
}

func (tag Tag) encode() *ir.Metadata {
	return &ir.Metadata{
		Operands: []ir.MetadataOperand{
			&ir.MetadataString{Value: tag.Symbol},
			&ir.MetadataInt{Value: tag.Addend},
		},
	}
}

// DecodeTag decodes a node persisted under RelocationMetadataKind.  A
// node that does not decode was produced by a broken pass; pass-internal
// callers report that as a fatal inconsistency.
func DecodeTag(node *ir.Metadata) (Tag, error) {
	if len(node.Operands) != 2 {
		return Tag{}, fmt.Errorf(
			"malformed relocation metadata: %d operands",
			len(node.Operands))
	}

	symbol, ok := node.Operands[0].(*ir.MetadataString)
	if !ok {
		return Tag{}, fmt.Errorf(
			"malformed relocation metadata: non-string symbol operand")
	}

	addend, ok := node.Operands[1].(*ir.MetadataInt)
	if !ok {
		return Tag{}, fmt.Errorf(
			"malformed relocation metadata: non-integer addend operand")
	}

	return Tag{
		Symbol: symbol.Value,
		Addend: addend.Value,
	}, nil
}
