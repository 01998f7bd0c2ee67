package ctxview

import (
	"fmt"

	"emudbg/internal/emu"
)

// Kind selects how examined memory is rendered.
type Kind int

const (
	KindInstruction Kind = iota
	KindHex
	KindOctal
	KindBinary
	KindDecimal
	KindAddress
	KindASCII
)

// FormatSpec is the (kind, element size, element count) triple of one
// examine request. Size is 1, 2, 4 or 8 bytes; instruction mode steps four
// bytes per line regardless.
type FormatSpec struct {
	Kind  Kind
	Size  int
	Count int
}

// ParseFormat resolves a gdb-style format letter plus size and count into a
// FormatSpec. Letters: i (instruction), x (hex), o (octal), t or b
// (binary), d (decimal), a (address), c (ascii).
func ParseFormat(letter string, size, count int) (FormatSpec, error) {
	var kind Kind
	switch letter {
	case "i":
		kind = KindInstruction
	case "x":
		kind = KindHex
	case "o":
		kind = KindOctal
	case "t", "b":
		kind = KindBinary
	case "d":
		kind = KindDecimal
	case "a":
		kind = KindAddress
	case "c":
		kind = KindASCII
	default:
		return FormatSpec{}, fmt.Errorf("unknown format letter %q", letter)
	}

	switch size {
	case 1, 2, 4, 8:
	default:
		return FormatSpec{}, fmt.Errorf("bad element size %d", size)
	}
	if count <= 0 {
		return FormatSpec{}, fmt.Errorf("bad element count %d", count)
	}
	return FormatSpec{Kind: kind, Size: size, Count: count}, nil
}

// render formats one unpacked element. Hex and address are zero-padded to
// the element's nibble width and 0x-prefixed; ascii collapses to bare
// lowercase hex; the remaining bases print unpadded and unprefixed.
func (f FormatSpec) render(value uint64) string {
	switch f.Kind {
	case KindHex, KindAddress:
		return fmt.Sprintf("0x%0*x", 2*f.Size, value)
	case KindASCII:
		return fmt.Sprintf("%0*x", 2*f.Size, value)
	case KindOctal:
		return fmt.Sprintf("%o", value)
	case KindBinary:
		return fmt.Sprintf("%b", value)
	default:
		return fmt.Sprintf("%d", value)
	}
}

// Examine renders Count elements of memory at addr in the requested
// format, four elements per row. Elements whose probe fails are left out
// of their row; the row and its successors still print.
func (v *View) Examine(addr uint64, f FormatSpec) {
	if f.Kind == KindInstruction {
		dis := v.m.Disassembler()
		for off := addr; off < addr+uint64(f.Count)*4; off += 4 {
			// One decode step per iteration; a miss (mid-instruction or
			// unmapped) skips the line.
			chunk := v.probe(off, 4)
			if chunk == nil {
				continue
			}
			stream := dis.Disasm(chunk, off)
			if len(stream) == 0 {
				continue
			}
			fmt.Fprintf(v.out, "0x%x: %s\t%s\n", stream[0].Addr, stream[0].Mnemonic, stream[0].Operands)
		}
		fmt.Fprintln(v.out)
		return
	}

	lines := 1
	if f.Count > 4 {
		lines = (f.Count + 3) / 4
	}

	order := v.m.ByteOrder()
	size := uint64(f.Size)

	for line := 0; line < lines; line++ {
		fmt.Fprintf(v.out, "0x%x:\t", addr+uint64(line)*size*4)

		for i := line * 4; i < (line+1)*4 && i < f.Count; i++ {
			element := v.probe(addr+uint64(i)*size, size)
			if element == nil {
				continue
			}
			fmt.Fprintf(v.out, "%s\t", f.render(emu.Unpack(order, element)))
		}
		fmt.Fprintln(v.out)
	}
}
