package disasm

import (
	"strings"

	"golang.org/x/arch/arm/armasm"
)

// ARM disassembles A32/T32 code. Mode selects between ARM and Thumb
// encodings; instruction length comes from the decoder (Thumb mixes 2- and
// 4-byte encodings).
type ARM struct {
	Mode armasm.Mode
}

func NewARM() ARM   { return ARM{Mode: armasm.ModeARM} }
func NewThumb() ARM { return ARM{Mode: armasm.ModeThumb} }

func (d ARM) Disasm(code []byte, base uint64) Stream {
	mode := d.Mode
	if mode == 0 {
		mode = armasm.ModeARM
	}

	var out Stream
	for i := 0; i < len(code); {
		inst, err := armasm.Decode(code[i:], mode)
		if err != nil || inst.Len == 0 {
			break
		}
		mn, ops := split(strings.ToLower(armasm.GNUSyntax(inst)))
		out = append(out, Inst{
			Addr:     base + uint64(i),
			Mnemonic: mn,
			Operands: ops,
		})
		i += inst.Len
	}
	return out
}
