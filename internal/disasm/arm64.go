package disasm

import (
	"strings"

	"golang.org/x/arch/arm64/arm64asm"
)

// ARM64 disassembles A64 code, four bytes per instruction.
type ARM64 struct{}

func (ARM64) Disasm(code []byte, base uint64) Stream {
	var out Stream
	for i := 0; i+4 <= len(code); i += 4 {
		inst, err := arm64asm.Decode(code[i : i+4])
		if err != nil {
			break
		}
		mn, ops := split(strings.ToLower(arm64asm.GNUSyntax(inst)))
		out = append(out, Inst{
			Addr:     base + uint64(i),
			Mnemonic: mn,
			Operands: ops,
		})
	}
	return out
}
