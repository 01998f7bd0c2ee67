package emu

import (
	"encoding/binary"

	"emudbg/internal/arch"
	"emudbg/internal/disasm"
)

// segment is one mapped region of target memory.
type segment struct {
	base uint64
	data []byte
}

// Core is an in-memory Machine: mapped segments plus a register file. It
// stands in for the real emulation engine when rendering a static image
// (the view/examine commands) and in tests.
type Core struct {
	arch  arch.Arch
	order binary.ByteOrder
	dis   disasm.Disassembler
	segs  []segment
	regs  *Snapshot

	// pc and sp back the PC/SP accessors for architectures whose program
	// counter or stack pointer is not part of the displayed register set.
	pc uint64
	sp uint64
}

func NewCore(a arch.Arch, order binary.ByteOrder, dis disasm.Disassembler) *Core {
	return &Core{
		arch:  a,
		order: order,
		dis:   dis,
		regs:  NewSnapshot(),
	}
}

// Map adds a memory segment. Segments are not merged; overlapping maps are
// resolved in favor of the earliest one.
func (c *Core) Map(base uint64, data []byte) {
	c.segs = append(c.segs, segment{base: base, data: data})
}

// SetReg assigns a register, appending it to the snapshot order when new.
func (c *Core) SetReg(name string, value uint64) {
	c.regs.Set(name, value)
}

func (c *Core) ReadMemory(addr, size uint64) ([]byte, error) {
	for _, s := range c.segs {
		end := s.base + uint64(len(s.data))
		if addr >= s.base && addr+size <= end {
			out := make([]byte, size)
			copy(out, s.data[addr-s.base:addr-s.base+size])
			return out, nil
		}
	}
	return nil, MemFault{Addr: addr, Size: size}
}

func (c *Core) Registers() *Snapshot {
	return c.regs.Clone()
}

func (c *Core) Arch() arch.Arch { return c.arch }

func (c *Core) ByteOrder() binary.ByteOrder { return c.order }

func (c *Core) Disassembler() disasm.Disassembler { return c.dis }

// SetPC assigns the program counter, updating the register of the same
// name when the architecture displays one.
func (c *Core) SetPC(v uint64) {
	c.pc = v
	if _, ok := c.regs.Get(c.arch.PCReg); ok {
		c.regs.Set(c.arch.PCReg, v)
	}
}

// SetSP assigns the stack pointer, updating the register of the same name
// when the architecture displays one.
func (c *Core) SetSP(v uint64) {
	c.sp = v
	if _, ok := c.regs.Get(c.arch.SPReg); ok {
		c.regs.Set(c.arch.SPReg, v)
	}
}

func (c *Core) PC() uint64 {
	if v, ok := c.regs.Get(c.arch.PCReg); ok {
		return v
	}
	return c.pc
}

func (c *Core) SP() uint64 {
	if v, ok := c.regs.Get(c.arch.SPReg); ok {
		return v
	}
	return c.sp
}
