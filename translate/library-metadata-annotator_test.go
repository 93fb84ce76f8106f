package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgrenz/revamb/ir"
)

func libraryNames(module *ir.Module) []string {
	var names []string
	for _, node := range module.NamedMetadata(LibrariesMetadataKind) {
		operand := node.Operands[0].(*ir.MetadataString)
		names = append(names, operand.Value)
	}
	return names
}

func TestAnnotatePreservesOrder(t *testing.T) {
	module := ir.NewModule("input")

	annotator := NewLibraryMetadataAnnotator(
		[]string{"libc.so.6", "libm.so.6"})
	annotator.Annotate(module)

	nodes := module.NamedMetadata(LibrariesMetadataKind)
	require.Len(t, nodes, 2)
	assert.Equal(t, []string{"libc.so.6", "libm.so.6"}, libraryNames(module))
}

func TestAnnotateReplacesPriorList(t *testing.T) {
	module := ir.NewModule("input")

	NewLibraryMetadataAnnotator([]string{"libc.so.6"}).Annotate(module)
	NewLibraryMetadataAnnotator([]string{"libz.so.1"}).Annotate(module)

	assert.Equal(t, []string{"libz.so.1"}, libraryNames(module))
}

func TestAnnotateEmptyList(t *testing.T) {
	module := ir.NewModule("input")

	NewLibraryMetadataAnnotator(nil).Annotate(module)
	assert.Empty(t, module.NamedMetadata(LibrariesMetadataKind))
}
