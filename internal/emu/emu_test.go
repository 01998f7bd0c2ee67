package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"emudbg/internal/arch"
	"emudbg/internal/disasm"
)

func TestCoreReadMemory(t *testing.T) {
	c := NewCore(arch.ARM, binary.LittleEndian, disasm.NewARM())
	c.Map(0x1000, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	tests := []struct {
		name  string
		addr  uint64
		size  uint64
		want  []byte
		fault bool
	}{
		{"whole segment", 0x1000, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8}, false},
		{"middle", 0x1002, 2, []byte{3, 4}, false},
		{"unmapped", 0x2000, 4, nil, true},
		{"straddles end", 0x1006, 4, nil, true},
		{"before start", 0xfff, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ReadMemory(tt.addr, tt.size)
			if tt.fault {
				var mf MemFault
				if !errors.As(err, &mf) {
					t.Fatalf("got err %v, want MemFault", err)
				}
				if mf.Addr != tt.addr {
					t.Errorf("fault addr %#x, want %#x", mf.Addr, tt.addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != string(tt.want) {
				t.Errorf("read %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorePCSP(t *testing.T) {
	c := NewCore(arch.ARM, binary.LittleEndian, disasm.NewARM())
	c.SetReg("pc", 0x8000)
	c.SetReg("sp", 0x7f00)
	if c.PC() != 0x8000 {
		t.Errorf("PC() = %#x, want 0x8000", c.PC())
	}
	if c.SP() != 0x7f00 {
		t.Errorf("SP() = %#x, want 0x7f00", c.SP())
	}
}

func TestUnpack(t *testing.T) {
	b := []byte{0x78, 0x56, 0x34, 0x12, 0xaa, 0xbb, 0xcc, 0xdd}

	tests := []struct {
		order binary.ByteOrder
		width int
		want  uint64
	}{
		{binary.LittleEndian, 1, 0x78},
		{binary.LittleEndian, 2, 0x5678},
		{binary.LittleEndian, 4, 0x12345678},
		{binary.LittleEndian, 8, 0xddccbbaa12345678},
		{binary.BigEndian, 4, 0x78563412},
	}

	for _, tt := range tests {
		if got := Unpack(tt.order, b[:tt.width]); got != tt.want {
			t.Errorf("Unpack(%d bytes) = %#x, want %#x", tt.width, got, tt.want)
		}
	}
}

func TestSnapshotRenameMovesToEnd(t *testing.T) {
	s := NewSnapshot()
	for _, name := range []string{"r9", "r10", "r11", "r12", "sp", "lr", "pc", "cpsr"} {
		s.Set(name, 0)
	}

	s.Rename(arch.ARM)

	var order []string
	s.Each(func(name string, _ uint64) { order = append(order, name) })

	want := []string{"r9", "sp", "lr", "pc", "cpsr", "sl", "fp", "ip"}
	if len(order) != len(want) {
		t.Fatalf("got %d registers, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSnapshotRenamePreservesCardinality(t *testing.T) {
	s := NewSnapshot()
	for i := 0; i < 13; i++ {
		s.Set(fmt.Sprintf("r%d", i), uint64(i))
	}
	n := s.Len()
	s.Rename(arch.ARM)
	if s.Len() != n {
		t.Errorf("rename changed cardinality: %d -> %d", n, s.Len())
	}
}

func TestSnapshotDiff(t *testing.T) {
	cur := NewSnapshot()
	cur.Set("r0", 1)
	cur.Set("r1", 2)
	cur.Set("sp", 0x7f00)

	if d := cur.Diff(nil); len(d) != 0 {
		t.Errorf("diff against nil = %v, want empty", d)
	}

	if d := cur.Diff(cur.Clone()); len(d) != 0 {
		t.Errorf("diff against identical clone = %v, want empty", d)
	}

	prev := cur.Clone()
	prev.Set("r1", 99)
	d := cur.Diff(prev)
	if !d["r1"] || len(d) != 1 {
		t.Errorf("diff = %v, want {r1}", d)
	}
}

// Diffing after renaming and renaming after diffing disagree for aliased
// registers: the diff set carries whatever names the snapshots held at
// comparison time. Renaming first (as the renderers do) is the specified
// order, so changed aliased registers highlight under their display name.
func TestSnapshotDiffOrderSensitivity(t *testing.T) {
	mk := func(r11 uint64) *Snapshot {
		s := NewSnapshot()
		s.Set("r10", 0xa)
		s.Set("r11", r11)
		return s
	}

	cur, prev := mk(2), mk(1)
	cur.Rename(arch.ARM)
	prev.Rename(arch.ARM)
	renamedFirst := cur.Diff(prev)

	cur, prev = mk(2), mk(1)
	diffedFirst := cur.Diff(prev)

	if !renamedFirst["fp"] || renamedFirst["r11"] {
		t.Errorf("rename-then-diff = %v, want {fp}", renamedFirst)
	}
	if !diffedFirst["r11"] || diffedFirst["fp"] {
		t.Errorf("diff-then-rename = %v, want {r11}", diffedFirst)
	}
}
