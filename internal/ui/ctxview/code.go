package ctxview

import (
	"fmt"

	"emudbg/internal/disasm"
)

// lookaround is the byte span probed on each side of the current
// instruction for the disassembly window.
const lookaround = 16

// Code renders the [Code] section: a sliding instruction window around
// addr, which must be the address of the active instruction and size its
// byte length. The lookback and lookahead windows are best-effort and
// silently omitted when their memory is unmapped; the active instruction
// itself must be readable.
func (v *View) Code(addr, size uint64) error {
	return v.section("[Code]", '=', func() error {
		dis := v.m.Disassembler()

		if pre := v.probe(addr-lookaround, lookaround); pre != nil {
			v.printAsm(dis.Disasm(pre, addr-lookaround))
		}

		cur, err := v.m.ReadMemory(addr, size)
		if err != nil {
			return fmt.Errorf("active instruction at %#x: %w", addr, err)
		}
		v.printAsm(dis.Disasm(cur, addr))

		if post := v.probe(addr+4, lookaround); post != nil {
			v.printAsm(dis.Disasm(post, addr+4))
		}
		return nil
	})
}

// printAsm prints one instruction per line, mnemonic padded to a 6-column
// field, with the program counter's line marked instead of indented.
func (v *View) printAsm(stream disasm.Stream) {
	pc := v.m.PC()
	for _, ins := range stream {
		line := fmt.Sprintf("0x%x\t%-6s %s", ins.Addr, ins.Mnemonic, ins.Operands)
		if v.theme.Asm != nil {
			line = v.theme.Asm(line)
		}
		if ins.Addr == pc {
			fmt.Fprintf(v.out, "PC ==>  %s\n", line)
		} else {
			fmt.Fprintf(v.out, "\t%s\n", line)
		}
	}
}
