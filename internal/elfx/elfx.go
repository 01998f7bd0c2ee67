// Package elfx loads ELF binaries into the segment/symbol form the view
// machinery maps into an in-memory machine.
package elfx

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// Seg is one PT_LOAD segment with its file bytes zero-extended to Memsz.
type Seg struct {
	Vaddr uint64
	Data  []byte
	Flags elf.ProgFlag
}

// Sym is one function symbol.
type Sym struct {
	Name string
	Addr uint64
	Size uint64
}

// Image is a loaded ELF binary.
type Image struct {
	Path    string
	Machine elf.Machine
	Class   elf.Class
	Order   binary.ByteOrder
	Entry   uint64
	Loads   []Seg
	Syms    []Sym
}

// Open loads path: PT_LOAD segments, entry point, and the function symbols
// from both symbol tables. Symbols come back sorted by address.
func Open(path string) (*Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open elf: %w", err)
	}
	defer f.Close()

	var order binary.ByteOrder = binary.LittleEndian
	if f.Data == elf.ELFDATA2MSB {
		order = binary.BigEndian
	}

	im := &Image{
		Path:    path,
		Machine: f.Machine,
		Class:   f.Class,
		Order:   order,
		Entry:   f.Entry,
	}

	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(p.Open(), int64(p.Filesz)))
		if err != nil {
			return nil, fmt.Errorf("read segment at %#x: %w", p.Vaddr, err)
		}
		if p.Memsz > p.Filesz {
			data = append(data, make([]byte, p.Memsz-p.Filesz)...)
		}
		im.Loads = append(im.Loads, Seg{Vaddr: p.Vaddr, Data: data, Flags: p.Flags})
	}

	appendSyms := func(syms []elf.Symbol) {
		for _, s := range syms {
			if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Name == "" {
				continue
			}
			im.Syms = append(im.Syms, Sym{Name: s.Name, Addr: s.Value, Size: s.Size})
		}
	}
	if syms, err := f.Symbols(); err == nil {
		appendSyms(syms)
	}
	if syms, err := f.DynamicSymbols(); err == nil {
		appendSyms(syms)
	}
	sort.Slice(im.Syms, func(i, j int) bool { return im.Syms[i].Addr < im.Syms[j].Addr })

	return im, nil
}

// FindSym returns the function symbol containing va, when one is known.
func (im *Image) FindSym(va uint64) *Sym {
	i := sort.Search(len(im.Syms), func(i int) bool { return im.Syms[i].Addr > va })
	if i == 0 {
		return nil
	}
	s := &im.Syms[i-1]
	if s.Size > 0 && va >= s.Addr+s.Size {
		return nil
	}
	return s
}
