package ctxview

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"

	"emudbg/internal/arch"
	"emudbg/internal/emu"
)

func seedRegs(c *emu.Core, a arch.Arch, overrides map[string]uint64) {
	for _, name := range a.RegNames {
		c.SetReg(name, 0)
	}
	for name, value := range overrides {
		c.SetReg(name, value)
	}
}

func armContextCore(overrides map[string]uint64) *emu.Core {
	c := armCore()
	seedRegs(c, arch.ARM, overrides)
	c.SetSP(0x7f00)
	c.Map(0x7f00, make([]byte, 64))
	return c
}

// emphasisTheme renders everything plain except changed registers, so any
// escape sequence in the output is the change highlight.
func emphasisTheme() Theme {
	th := PlainTheme()
	th.Emphasis = func(s lipgloss.Style) lipgloss.Style {
		return s.Underline(true).Bold(true)
	}
	return th
}

func TestContextARMLayout(t *testing.T) {
	c := armContextCore(map[string]uint64{"cpsr": 0x13 | 1<<5})
	v, buf := testView(c, 80)

	if err := v.Context(nil); err != nil {
		t.Fatalf("Context: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if !strings.HasPrefix(lines[0], "[Registers] =") {
		t.Errorf("missing registers header: %q", lines[0])
	}
	if !strings.Contains(out, "r0: 0x00000000") {
		t.Error("missing register entry")
	}

	// Renaming moves the aliased registers to the end of the grid, after
	// cpsr.
	for _, name := range []string{"sl: ", "fp: ", "ip: "} {
		if !strings.Contains(out, name) {
			t.Errorf("missing aliased register %q", name)
		}
	}
	if strings.Contains(out, "r10: ") || strings.Contains(out, "r11: ") || strings.Contains(out, "r12: ") {
		t.Error("raw names rendered despite aliasing")
	}
	if strings.Index(out, "sl: ") < strings.Index(out, "cpsr: ") {
		t.Error("aliased registers did not move to the end of the grid")
	}

	if !strings.Contains(out, "[SVC mode], Thumb: True") {
		t.Error("missing cpsr flags line")
	}

	if !strings.Contains(out, strings.Repeat("=", 80)) {
		t.Error("missing registers closing rule")
	}
	if !strings.Contains(out, "[Stack] -") || !strings.Contains(out, strings.Repeat("-", 80)) {
		t.Error("missing framed stack section")
	}
}

func TestContextMIPSGridBreaks(t *testing.T) {
	c := emu.NewCore(arch.MIPS, binary.LittleEndian, stubDis{})
	seedRegs(c, arch.MIPS, nil)
	c.SetSP(0x7f00)
	c.Map(0x7f00, make([]byte, 64))
	v, buf := testView(c, 80)

	if err := v.Context(nil); err != nil {
		t.Fatalf("Context: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")

	// Section header, then the grid: 32 registers in groups of 4 with the
	// final break suppressed make exactly 8 grid lines.
	var grid []string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, strings.Repeat("=", 80)) {
			break
		}
		grid = append(grid, line)
	}
	if len(grid) != 8 {
		t.Fatalf("got %d grid lines, want 8: %q", len(grid), grid)
	}
	if !strings.HasPrefix(grid[0], "zero: ") {
		t.Errorf("first grid line = %q", grid[0])
	}
	if !strings.Contains(grid[7], "fp: ") || !strings.Contains(grid[7], "ra: ") {
		t.Errorf("last grid line = %q, want renamed fp at the end", grid[7])
	}
	if strings.Contains(buf.String(), "s8: ") {
		t.Error("raw s8 rendered despite aliasing")
	}
}

func TestContextDiffHighlight(t *testing.T) {
	prev := emu.NewSnapshot()
	for _, name := range arch.ARM.RegNames {
		prev.Set(name, 0)
	}
	prev.Set("cpsr", 0x10)
	prev.Set("r11", 5) // becomes fp after renaming

	c := armContextCore(map[string]uint64{"cpsr": 0x10})
	buf := &strings.Builder{}
	v := New(c,
		WithWriter(buf),
		WithSize(func() (int, int) { return 80, 24 }),
		WithTheme(emphasisTheme()))

	if err := v.Context(prev); err != nil {
		t.Fatalf("Context: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatal("no emphasis emitted for changed register")
	}

	// Only the renamed fp entry changed; the escape must appear on its
	// line and nowhere before it.
	if first := strings.Index(out, "\x1b["); first > strings.Index(out, "fp: ") {
		t.Error("emphasis does not precede the changed register entry")
	}
}

func TestContextNoDiffNoHighlight(t *testing.T) {
	c := armContextCore(map[string]uint64{"cpsr": 0x10})
	prev := c.Registers()

	buf := &strings.Builder{}
	v := New(c,
		WithWriter(buf),
		WithSize(func() (int, int) { return 80, 24 }),
		WithTheme(emphasisTheme()))

	if err := v.Context(prev); err != nil {
		t.Fatalf("Context: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("identical snapshots produced highlighting")
	}
}

func TestContextNilPrevNoHighlight(t *testing.T) {
	c := armContextCore(map[string]uint64{"cpsr": 0x10})
	buf := &strings.Builder{}
	v := New(c,
		WithWriter(buf),
		WithSize(func() (int, int) { return 80, 24 }),
		WithTheme(emphasisTheme()))

	if err := v.Context(nil); err != nil {
		t.Fatalf("Context: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("nil previous snapshot produced highlighting")
	}
}

func TestStackDump(t *testing.T) {
	// Slot 1 gets a recognizable value.
	stack := make([]byte, 64)
	binary.LittleEndian.PutUint32(stack[4:], 0x11223344)

	c := armCore()
	seedRegs(c, arch.ARM, map[string]uint64{"cpsr": 0x10})
	c.SetSP(0x7f00)
	c.Map(0x7f00, stack)

	v, buf := testView(c, 80)
	if err := v.Context(nil); err != nil {
		t.Fatalf("Context: %v", err)
	}

	var slots []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "$sp+") {
			slots = append(slots, line)
		}
	}
	if len(slots) != 8 {
		t.Fatalf("got %d stack slots, want 8", len(slots))
	}

	want := "$sp+0x04|[0x00007f04]=> 0x11223344 => 0x11223344"
	if slots[1] != want {
		t.Errorf("slot 1 = %q, want %q", slots[1], want)
	}
	if !strings.HasPrefix(slots[0], "$sp+0x00|[0x00007f00]=> 0x00000000") {
		t.Errorf("slot 0 = %q", slots[0])
	}
}

func TestStackFaultPropagatesAfterRule(t *testing.T) {
	c := armCore()
	seedRegs(c, arch.ARM, map[string]uint64{"cpsr": 0x10})
	c.SetSP(0x7f00) // nothing mapped there

	v, buf := testView(c, 80)
	err := v.Context(nil)
	if err == nil {
		t.Fatal("unmapped stack did not propagate")
	}
	if !strings.Contains(buf.String(), strings.Repeat("-", 80)) {
		t.Error("stack closing rule missing after fault")
	}
}
