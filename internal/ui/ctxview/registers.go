package ctxview

import (
	"fmt"
	"strings"

	"emudbg/internal/emu"
)

// Context renders the [Registers] and [Stack] sections for the current stop
// event. prev is the snapshot taken at the previous stop; registers whose
// value changed since then are emphasized. A nil prev disables
// highlighting.
//
// Alias renaming is applied to both snapshots before the diff, so changed
// registers highlight under their display name (fp rather than r11). The
// diff would come out differently on raw names; display names are the
// specified comparison domain.
func (v *View) Context(prev *emu.Snapshot) error {
	a := v.m.Arch()

	if err := v.section("[Registers]", '=', func() error {
		cur := v.m.Registers()
		cur.Rename(a)

		var changed map[string]bool
		if prev != nil {
			p := prev.Clone()
			p.Rename(a)
			changed = cur.Diff(p)
		}

		var grid strings.Builder
		idx := 0
		cur.Each(func(name string, value uint64) {
			idx++
			st := v.theme.Palette[((idx-1)/4)%len(v.theme.Palette)]
			if changed[name] && v.theme.Emphasis != nil {
				st = v.theme.Emphasis(st)
			}
			grid.WriteString(st.Render(fmt.Sprintf("%s: 0x%08x", name, value)))
			grid.WriteString("\t")
			if idx%4 == 0 && idx != a.SkipBreakAt {
				grid.WriteString("\n")
			}
		})
		fmt.Fprintln(v.out, grid.String())

		if a.Flags != nil {
			if value, ok := cur.Get(a.FlagsReg); ok {
				fmt.Fprintln(v.out, v.theme.Flags.Render(a.Flags(value)))
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return v.section("[Stack]", '-', func() error {
		sp := v.m.SP()
		order := v.m.ByteOrder()
		ptr := uint64(a.PtrSize())
		width := a.PtrSize() * 2

		for i := uint64(0); i < 8; i++ {
			addr := sp + i*ptr

			// The stack itself is expected to be mapped; a fault here is
			// structural and propagates after the closing rule.
			slot, err := v.m.ReadMemory(addr, ptr)
			if err != nil {
				return fmt.Errorf("stack slot %d: %w", i, err)
			}

			fmt.Fprintf(v.out, "$sp+0x%02x|[0x%0*x]=> 0x%0*x",
				i*ptr, width, addr, width, emu.Unpack(order, slot))

			if deref := v.probe(addr, 4); deref != nil {
				fmt.Fprintf(v.out, " => 0x%08x", emu.Unpack(order, deref))
			}
			fmt.Fprintln(v.out)
		}
		return nil
	})
}
