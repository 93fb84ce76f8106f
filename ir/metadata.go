package ir

// Metadata nodes record analysis results on instructions (or on the module
// itself) for reuse by later passes.  A node is an ordered operand list;
// operands are either strings or integers.  Interpretation of the operands
// is up to the metadata kind's producer and consumers.
type Metadata struct {
	Operands []MetadataOperand
}

type MetadataOperand interface {
	isMetadataOperand()
}

type MetadataString struct {
	Value string
}

func (MetadataString) isMetadataOperand() {}

type MetadataInt struct {
	Value int64
}

func (MetadataInt) isMetadataOperand() {}
