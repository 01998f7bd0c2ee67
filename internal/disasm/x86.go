package disasm

import (
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// X86 disassembles variable-length x86 code in the given mode (16, 32, 64).
type X86 struct {
	Mode int
}

func NewX8664() X86 { return X86{Mode: 64} }

func (d X86) Disasm(code []byte, base uint64) Stream {
	mode := d.Mode
	if mode == 0 {
		mode = 64
	}

	var out Stream
	for i := 0; i < len(code); {
		inst, err := x86asm.Decode(code[i:], mode)
		if err != nil || inst.Len == 0 {
			break
		}
		pc := base + uint64(i)
		mn, ops := split(strings.ToLower(x86asm.GNUSyntax(inst, pc, nil)))
		out = append(out, Inst{
			Addr:     pc,
			Mnemonic: mn,
			Operands: ops,
		})
		i += inst.Len
	}
	return out
}
