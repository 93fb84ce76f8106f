// Package binaryfile reads the dynamic-linking inputs of the translation
// pipeline from the input binary: the relocation table and the needed
// shared library list.
package binaryfile

import (
	"debug/elf"
	"errors"
	"fmt"
)

// Assumption: we only support 64 bit binaries.
var ErrUnsupportedClass = errors.New("unsupported ELF class")

type File struct {
	Machine     elf.Machine
	Relocations []Relocation

	// DT_NEEDED entries, in file order.
	Libraries []string
}

func Read(path string) (*File, error) {
	input, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer input.Close()

	if input.Class != elf.ELFCLASS64 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedClass, input.Class)
	}

	libraries, err := input.ImportedLibraries()
	if err != nil {
		return nil, fmt.Errorf("read needed libraries: %w", err)
	}

	relocations, err := readRelocations(input)
	if err != nil {
		return nil, err
	}

	return &File{
		Machine:     input.Machine,
		Relocations: relocations,
		Libraries:   libraries,
	}, nil
}

func readRelocations(input *elf.File) ([]Relocation, error) {
	syms, err := input.DynamicSymbols()
	if err != nil {
		// Statically linked binaries have no dynamic symbol table and no
		// relocation slots to resolve.
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dynamic symbols: %w", err)
	}

	var result []Relocation
	for _, section := range input.Sections {
		if section.Type != elf.SHT_RELA {
			continue
		}

		data, err := section.Data()
		if err != nil {
			return nil, fmt.Errorf("read section %s: %w", section.Name, err)
		}

		entries, err := parseRela(data, input.ByteOrder, input.Machine, syms)
		if err != nil {
			return nil, fmt.Errorf("parse section %s: %w", section.Name, err)
		}

		result = append(result, entries...)
	}

	return result, nil
}
