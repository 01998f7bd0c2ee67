// Package disasm defines a common instruction representation shared by the
// architecture-specific disassembler backends.
package disasm

import "strings"

// Inst is a simplified decoded instruction.
type Inst struct {
	Addr     uint64 // virtual address of instruction
	Mnemonic string // mnemonic in lowercase
	Operands string // formatted operand string
}

// Stream is a linear sequence of instructions.
type Stream []Inst

// Disassembler decodes a byte chunk into an instruction stream. Decoding
// stops at the first undecodable position; malformed or partial input
// yields a shorter (possibly empty) stream, never an error.
type Disassembler interface {
	Disasm(code []byte, base uint64) Stream
}

// split divides a formatted GNU-syntax line into mnemonic and operands.
func split(text string) (string, string) {
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		return text[:i], strings.TrimSpace(text[i+1:])
	}
	return text, ""
}
