// Package arch describes the register conventions of the supported
// target architectures: display aliases for raw register names, pointer
// width, and the optional decoded flags line shown under the register grid.
package arch

import (
	"fmt"
	"strings"
)

// Alias renames one raw register for display. Renaming follows re-insertion
// semantics: the renamed register moves to the end of the snapshot order.
type Alias struct {
	Raw  string
	Name string
}

// Arch is a value describing one architecture family. Adding an
// architecture means adding one table entry here, not new branches in the
// renderers.
type Arch struct {
	Tag     string
	PtrBits int

	// PCReg and SPReg are the raw names of the program counter and stack
	// pointer in the register snapshot.
	PCReg string
	SPReg string

	Aliases []Alias

	// Flags decodes a packed status register into the human-readable line
	// printed after the register grid. Nil when the architecture has no
	// such register.
	Flags    func(value uint64) string
	FlagsReg string

	// FlagsInit is the reset value of the flags register (ARM: user mode).
	FlagsInit uint64

	// SkipBreakAt suppresses the grid line break after this 1-based entry
	// index. Zero means no suppression.
	SkipBreakAt int

	// RegNames is the canonical dump order of the displayed register set.
	RegNames []string
}

// PtrSize returns the pointer width in bytes.
func (a Arch) PtrSize() int { return a.PtrBits / 8 }

var (
	// MIPS32: s8 doubles as the frame pointer. The grid break after the
	// 32nd register is suppressed so the final line carries no trailing
	// newline of its own.
	MIPS = Arch{
		Tag:     "mips",
		PtrBits: 32,
		PCReg:   "pc",
		SPReg:   "sp",
		Aliases: []Alias{
			{Raw: "s8", Name: "fp"},
		},
		SkipBreakAt: 32,
		RegNames: []string{
			"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
			"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
			"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
			"t8", "t9", "k0", "k1", "gp", "sp", "s8", "ra",
		},
	}

	// ARM32 (including Thumb state): r10/r11/r12 carry the conventional
	// sl/fp/ip roles, and CPSR decodes into its own line.
	ARM = Arch{
		Tag:     "arm",
		PtrBits: 32,
		PCReg:   "pc",
		SPReg:   "sp",
		Aliases: []Alias{
			{Raw: "r10", Name: "sl"},
			{Raw: "r11", Name: "fp"},
			{Raw: "r12", Name: "ip"},
		},
		Flags:     DecodeCPSR,
		FlagsReg:  "cpsr",
		FlagsInit: 0x10,
		RegNames: []string{
			"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
			"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc",
			"cpsr",
		},
	}

	ARM64 = Arch{
		Tag:     "arm64",
		PtrBits: 64,
		PCReg:   "pc",
		SPReg:   "sp",
		Aliases: []Alias{
			{Raw: "x29", Name: "fp"},
			{Raw: "x30", Name: "lr"},
		},
		RegNames: []string{
			"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7",
			"x8", "x9", "x10", "x11", "x12", "x13", "x14", "x15",
			"x16", "x17", "x18", "x19", "x20", "x21", "x22", "x23",
			"x24", "x25", "x26", "x27", "x28", "x29", "x30", "sp",
			"pc",
		},
	}

	X8664 = Arch{
		Tag:     "x86_64",
		PtrBits: 64,
		PCReg:   "rip",
		SPReg:   "rsp",
		RegNames: []string{
			"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp",
			"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
			"rip", "eflags",
		},
	}
)

// ByTag resolves an architecture tag as used on the command line.
func ByTag(tag string) (Arch, error) {
	switch strings.ToLower(tag) {
	case "mips", "mips32":
		return MIPS, nil
	case "arm", "thumb", "arm32":
		return ARM, nil
	case "arm64", "aarch64":
		return ARM64, nil
	case "x86_64", "amd64", "x64":
		return X8664, nil
	}
	return Arch{}, fmt.Errorf("unknown architecture %q", tag)
}

// cpsrModes maps the CPSR mode field (bits 0-4) to its processor mode name.
var cpsrModes = map[uint64]string{
	0x10: "USR",
	0x11: "FIQ",
	0x12: "IRQ",
	0x13: "SVC",
	0x16: "MON",
	0x17: "ABT",
	0x1a: "HYP",
	0x1b: "UND",
	0x1f: "SYS",
}

func onOff(set bool) string {
	if set {
		return "True"
	}
	return "False"
}

// DecodeCPSR renders the ARM status register as the flags line shown under
// the register grid: processor mode, Thumb state, interrupt masks, and the
// NZCV condition flags.
func DecodeCPSR(value uint64) string {
	mode, ok := cpsrModes[value&0x1f]
	if !ok {
		mode = fmt.Sprintf("0x%02x", value&0x1f)
	}

	return fmt.Sprintf("[%s mode], Thumb: %s, FIQ: %s, IRQ: %s, NEG: %s, ZERO: %s, Carry: %s, Overflow: %s",
		mode,
		onOff(value&(1<<5) != 0),
		onOff(value&(1<<6) != 0),
		onOff(value&(1<<7) != 0),
		onOff(value&(1<<31) != 0),
		onOff(value&(1<<30) != 0),
		onOff(value&(1<<29) != 0),
		onOff(value&(1<<28) != 0))
}
