package cmd

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"emudbg/internal/arch"
	"emudbg/internal/disasm"
	"emudbg/internal/elfx"
	"emudbg/internal/emu"
)

// stackSize is the scratch stack mapped for loaded targets; SP starts in
// the middle so both directions dump cleanly.
const stackSize = 0x1000

// target is a loaded binary ready for rendering.
type target struct {
	core  *emu.Core
	image *elfx.Image // nil for flat images
}

func disassemblerFor(a arch.Arch) disasm.Disassembler {
	switch a.Tag {
	case "arm":
		return disasm.NewARM()
	case "arm64":
		return disasm.ARM64{}
	case "x86_64":
		return disasm.NewX8664()
	}
	return disasm.None{}
}

func archForMachine(m elf.Machine) (arch.Arch, error) {
	switch m {
	case elf.EM_ARM:
		return arch.ARM, nil
	case elf.EM_AARCH64:
		return arch.ARM64, nil
	case elf.EM_MIPS:
		return arch.MIPS, nil
	case elf.EM_X86_64:
		return arch.X8664, nil
	}
	return arch.Arch{}, fmt.Errorf("unsupported ELF machine %v", m)
}

// loadTarget builds an in-memory machine from path: an ELF image by
// default, or a flat image at --base when --arch is given. Registers are
// seeded to zero in the architecture's dump order, PC to the entry point,
// and SP into a freshly mapped scratch stack.
func loadTarget(cmd *cobra.Command, path string) (*target, error) {
	archTag, _ := cmd.Flags().GetString("arch")
	bigEndian, _ := cmd.Flags().GetBool("big-endian")

	var (
		t     target
		a     arch.Arch
		entry uint64
	)

	if archTag != "" {
		var err error
		if a, err = arch.ByTag(archTag); err != nil {
			return nil, err
		}

		baseStr, _ := cmd.Flags().GetString("base")
		base, err := strconv.ParseUint(baseStr, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("bad base address %q: %w", baseStr, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		order := binary.ByteOrder(binary.LittleEndian)
		if bigEndian {
			order = binary.BigEndian
		}

		t.core = emu.NewCore(a, order, disassemblerFor(a))
		t.core.Map(base, data)
		entry = base
	} else {
		im, err := elfx.Open(path)
		if err != nil {
			return nil, err
		}
		if a, err = archForMachine(im.Machine); err != nil {
			return nil, err
		}

		t.image = im
		t.core = emu.NewCore(a, im.Order, disassemblerFor(a))
		for _, seg := range im.Loads {
			t.core.Map(seg.Vaddr, seg.Data)
		}
		entry = im.Entry
	}

	for _, name := range a.RegNames {
		t.core.SetReg(name, 0)
	}
	if a.FlagsReg != "" {
		t.core.SetReg(a.FlagsReg, a.FlagsInit)
	}

	stackBase := stackTop(a) - stackSize
	t.core.Map(stackBase, make([]byte, stackSize))
	t.core.SetSP(stackBase + stackSize/2)
	t.core.SetPC(entry)

	return &t, nil
}

func stackTop(a arch.Arch) uint64 {
	if a.PtrBits == 64 {
		return 0x7ffffffff000
	}
	return 0x7ffff000
}
