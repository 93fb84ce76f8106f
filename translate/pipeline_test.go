package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgrenz/revamb/binaryfile"
	"github.com/cgrenz/revamb/ir"
	"github.com/cgrenz/revamb/platform/amd64"
)

func testInput() *binaryfile.File {
	return &binaryfile.File{
		Relocations: printfTable(),
		Libraries:   []string{"libc.so.6", "libm.so.6"},
	}
}

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(
		"strategy: fused\nfused-recheck: true\n"))
	require.NoError(t, err)
	assert.Equal(t, FusedOnly, config.Strategy)
	assert.True(t, config.FusedRecheck)

	// Absent keys keep the defaults.
	config, err = ParseConfig([]byte("{}\n"))
	require.NoError(t, err)
	assert.Equal(t, LocateThenSplit, config.Strategy)
	assert.False(t, config.FusedRecheck)

	_, err = ParseConfig([]byte("strategy: everything-at-once\n"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("strategy: [not, a, string]\n"))
	assert.Error(t, err)
}

func TestTranslateSplitOnly(t *testing.T) {
	program := newTestProgram(0x4020)

	changed, err := Translate(
		program.module,
		testInput(),
		amd64.NewPlatform(),
		Config{Strategy: SplitOnly})
	require.NoError(t, err)
	assert.True(t, changed)

	_, ok := program.block.Next(program.store).(*ir.Call)
	assert.True(t, ok)

	// The annotator runs under every strategy.
	assert.Equal(
		t,
		[]string{"libc.so.6", "libm.so.6"},
		libraryNames(program.module))
}

func TestTranslateStrategiesAgree(t *testing.T) {
	// Tag sharing between the locator and the split rewrite is an
	// optimization, not a semantic change.
	direct := newTestProgram(0x4020)
	shared := newTestProgram(0x4020)

	changed, err := Translate(
		direct.module,
		testInput(),
		amd64.NewPlatform(),
		Config{Strategy: SplitOnly})
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = Translate(
		shared.module,
		testInput(),
		amd64.NewPlatform(),
		Config{Strategy: LocateThenSplit})
	require.NoError(t, err)
	require.True(t, changed)

	require.Len(t, direct.module.Functions, len(shared.module.Functions))
	assert.Equal(
		t,
		direct.module.Functions[0].String(),
		shared.module.Functions[0].String())
}

func TestTranslateFusedOnly(t *testing.T) {
	program := newTestProgram(0x4020)

	changed, err := Translate(
		program.module,
		testInput(),
		amd64.NewPlatform(),
		Config{Strategy: FusedOnly})
	require.NoError(t, err)
	assert.True(t, changed)

	call, ok := program.block.Next(program.store).(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, "dl.printf", call.Callee.Name)
}

func TestTranslateRepeatedRunIsStable(t *testing.T) {
	program := newTestProgram(0x4020)
	config := Config{Strategy: LocateThenSplit}

	changed, err := Translate(
		program.module, testInput(), amd64.NewPlatform(), config)
	require.NoError(t, err)
	require.True(t, changed)

	instructions := make([]ir.Instruction, len(program.block.Instructions))
	copy(instructions, program.block.Instructions)

	changed, err = Translate(
		program.module, testInput(), amd64.NewPlatform(), config)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, instructions, program.block.Instructions)
}

func TestTranslateRejectsUnknownStrategy(t *testing.T) {
	program := newTestProgram(0x4020)

	_, err := Translate(
		program.module,
		testInput(),
		amd64.NewPlatform(),
		Config{Strategy: "adhoc"})
	assert.Error(t, err)
}

func TestTranslateReportsInconsistentModule(t *testing.T) {
	program := newTestProgram(0x4020)
	program.load.SetMetadata(RelocationMetadataKind, &ir.Metadata{
		Operands: []ir.MetadataOperand{&ir.MetadataInt{Value: 42}},
	})

	_, err := Translate(
		program.module,
		testInput(),
		amd64.NewPlatform(),
		Config{Strategy: SplitOnly})
	assert.Error(t, err)
}
