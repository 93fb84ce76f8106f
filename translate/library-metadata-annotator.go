package translate

import (
	"github.com/cgrenz/revamb/ir"
)

// LibraryMetadataAnnotator attaches the needed shared library list as
// module-level metadata for the linker-configuration emitter.  Leaf pass,
// independent of the relocation passes and order-insensitive.
type LibraryMetadataAnnotator struct {
	libraries []string
}

var _ Pass[*ir.Module] = &LibraryMetadataAnnotator{}

func NewLibraryMetadataAnnotator(libraries []string) *LibraryMetadataAnnotator {
	return &LibraryMetadataAnnotator{
		libraries: libraries,
	}
}

func (annotator *LibraryMetadataAnnotator) Process(module *ir.Module) {
	annotator.Annotate(module)
}

// Annotate attaches one metadata node per library name, preserving input
// order.  Re-invocation replaces the prior list; there are no merge
// semantics.
func (annotator *LibraryMetadataAnnotator) Annotate(module *ir.Module) {
	nodes := make([]*ir.Metadata, 0, len(annotator.libraries))
	for _, name := range annotator.libraries {
		nodes = append(nodes, &ir.Metadata{
			Operands: []ir.MetadataOperand{
				&ir.MetadataString{Value: name},
			},
		})
	}
	module.SetNamedMetadata(LibrariesMetadataKind, nodes)
}
