package binaryfile

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
)

// A dynamic-linking fix-up slot read from the input binary: the slot's
// address, the symbol whose resolved address the dynamic linker writes
// there, and the constant addend applied to it.
type Relocation struct {
	Address uint64
	Symbol  string
	Addend  int64
}

// Lookup scans relocations for an exact address match.  The working sets
// are small enough that a linear scan beats maintaining an index.
//
// Well-formed inputs have one record per distinct address; on malformed
// duplicates the first record in table order wins, deterministically.
func Lookup(relocations []Relocation, address uint64) (Relocation, bool) {
	for _, reloc := range relocations {
		if reloc.Address == address {
			return reloc, true
		}
	}
	return Relocation{}, false
}

const elf64RelaSize = 24

// parseRela decodes raw Elf64_Rela entries, keeping only absolute-address
// slot relocations (the classes the dynamic linker fills with a symbol
// address).  syms is the dynamic symbol table as returned by
// debug/elf, i.e. without the null entry, so entry index n refers to
// syms[n-1].
func parseRela(
	data []byte,
	order binary.ByteOrder,
	machine elf.Machine,
	syms []elf.Symbol,
) ([]Relocation, error) {
	if len(data)%elf64RelaSize != 0 {
		return nil, fmt.Errorf(
			"rela section size (%d) not a multiple of entry size",
			len(data))
	}

	var result []Relocation
	for idx := 0; idx < len(data); idx += elf64RelaSize {
		offset := order.Uint64(data[idx:])
		info := order.Uint64(data[idx+8:])
		addend := int64(order.Uint64(data[idx+16:]))

		if !isAddressSlot(machine, uint32(info)) {
			continue
		}

		symIdx := uint32(info >> 32)
		if symIdx == 0 || int(symIdx) > len(syms) {
			continue
		}

		name := syms[symIdx-1].Name
		if name == "" {
			continue
		}

		result = append(result, Relocation{
			Address: offset,
			Symbol:  name,
			Addend:  addend,
		})
	}

	return result, nil
}

func isAddressSlot(machine elf.Machine, relType uint32) bool {
	switch machine {
	case elf.EM_X86_64:
		switch elf.R_X86_64(relType) {
		case elf.R_X86_64_GLOB_DAT, elf.R_X86_64_JMP_SLOT, elf.R_X86_64_64:
			return true
		}
	case elf.EM_AARCH64:
		switch elf.R_AARCH64(relType) {
		case elf.R_AARCH64_GLOB_DAT, elf.R_AARCH64_JUMP_SLOT, elf.R_AARCH64_ABS64:
			return true
		}
	}
	return false
}
