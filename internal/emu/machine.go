// Package emu defines the engine-facing surface the context renderers read
// from: the Machine interface, register snapshots, and memory fault errors.
// It also provides Core, a small in-memory segment machine used by the CLI
// and by tests in place of a real emulation engine.
package emu

import (
	"encoding/binary"
	"fmt"

	"emudbg/internal/arch"
	"emudbg/internal/disasm"
)

// Machine is the read-only view of a stopped emulated target. The renderers
// never mutate the target through it.
type Machine interface {
	// ReadMemory returns size bytes at addr or a MemFault when any part of
	// the range is unmapped.
	ReadMemory(addr, size uint64) ([]byte, error)

	// Registers returns a fresh snapshot of the register set in the
	// target's canonical order. Callers own the returned snapshot.
	Registers() *Snapshot

	Arch() arch.Arch
	ByteOrder() binary.ByteOrder
	PC() uint64
	SP() uint64
	Disassembler() disasm.Disassembler
}

// MemFault reports a read of unmapped or invalid memory.
type MemFault struct {
	Addr uint64
	Size uint64
}

func (f MemFault) Error() string {
	return fmt.Sprintf("memory fault: %d bytes at 0x%x", f.Size, f.Addr)
}

// Unpack decodes b as an unsigned integer of its own width (1, 2, 4 or 8
// bytes) in the given byte order.
func Unpack(order binary.ByteOrder, b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	}
	panic(fmt.Sprintf("unpack: bad width %d", len(b)))
}
