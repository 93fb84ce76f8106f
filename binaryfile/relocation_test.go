package binaryfile

import (
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRela(
	order binary.ByteOrder,
	offset uint64,
	symIdx uint32,
	relType uint32,
	addend int64,
) []byte {
	entry := make([]byte, elf64RelaSize)
	order.PutUint64(entry, offset)
	order.PutUint64(entry[8:], uint64(symIdx)<<32|uint64(relType))
	order.PutUint64(entry[16:], uint64(addend))
	return entry
}

func TestParseRelaX86_64(t *testing.T) {
	syms := []elf.Symbol{
		{Name: "printf"},
		{Name: "errno"},
	}

	data := encodeRela(
		binary.LittleEndian,
		0x4020,
		1,
		uint32(elf.R_X86_64_JMP_SLOT),
		0)
	data = append(data, encodeRela(
		binary.LittleEndian,
		0x4028,
		2,
		uint32(elf.R_X86_64_GLOB_DAT),
		8)...)
	// PC-relative class, not an address slot.
	data = append(data, encodeRela(
		binary.LittleEndian,
		0x4030,
		1,
		uint32(elf.R_X86_64_PC32),
		0)...)

	result, err := parseRela(data, binary.LittleEndian, elf.EM_X86_64, syms)
	require.NoError(t, err)

	assert.Equal(
		t,
		[]Relocation{
			{Address: 0x4020, Symbol: "printf", Addend: 0},
			{Address: 0x4028, Symbol: "errno", Addend: 8},
		},
		result)
}

func TestParseRelaAarch64BigEndian(t *testing.T) {
	syms := []elf.Symbol{{Name: "malloc"}}

	data := encodeRela(
		binary.BigEndian,
		0x11000,
		1,
		uint32(elf.R_AARCH64_JUMP_SLOT),
		0)

	result, err := parseRela(data, binary.BigEndian, elf.EM_AARCH64, syms)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(
		t,
		Relocation{Address: 0x11000, Symbol: "malloc", Addend: 0},
		result[0])
}

func TestParseRelaSkipsUnusableEntries(t *testing.T) {
	syms := []elf.Symbol{{Name: ""}}

	// Null symbol index.
	data := encodeRela(
		binary.LittleEndian,
		0x4020,
		0,
		uint32(elf.R_X86_64_GLOB_DAT),
		0)
	// Symbol index past the table.
	data = append(data, encodeRela(
		binary.LittleEndian,
		0x4028,
		7,
		uint32(elf.R_X86_64_GLOB_DAT),
		0)...)
	// Nameless symbol.
	data = append(data, encodeRela(
		binary.LittleEndian,
		0x4030,
		1,
		uint32(elf.R_X86_64_GLOB_DAT),
		0)...)

	result, err := parseRela(data, binary.LittleEndian, elf.EM_X86_64, syms)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestParseRelaTruncated(t *testing.T) {
	data := make([]byte, elf64RelaSize+1)

	_, err := parseRela(data, binary.LittleEndian, elf.EM_X86_64, nil)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	relocations := []Relocation{
		{Address: 0x4020, Symbol: "printf", Addend: 0},
		{Address: 0x4028, Symbol: "errno", Addend: 8},
		// Malformed duplicate address; the first record wins.
		{Address: 0x4020, Symbol: "puts", Addend: 0},
	}

	reloc, ok := Lookup(relocations, 0x4020)
	require.True(t, ok)
	assert.Equal(t, "printf", reloc.Symbol)

	reloc, ok = Lookup(relocations, 0x4028)
	require.True(t, ok)
	assert.Equal(t, int64(8), reloc.Addend)

	_, ok = Lookup(relocations, 0x5000)
	assert.False(t, ok)

	_, ok = Lookup(nil, 0x4020)
	assert.False(t, ok)
}
