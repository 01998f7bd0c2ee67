package emu

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"emudbg/internal/arch"
)

// Snapshot is a point-in-time copy of the register set. Iteration order is
// insertion order, which is what the register grid renders in.
type Snapshot struct {
	regs *orderedmap.OrderedMap[string, uint64]
}

func NewSnapshot() *Snapshot {
	return &Snapshot{regs: orderedmap.New[string, uint64]()}
}

// Set stores a register value. A new name appends to the order; an existing
// name updates in place.
func (s *Snapshot) Set(name string, value uint64) {
	s.regs.Set(name, value)
}

func (s *Snapshot) Get(name string) (uint64, bool) {
	return s.regs.Get(name)
}

func (s *Snapshot) Len() int {
	return s.regs.Len()
}

// Each visits registers in insertion order.
func (s *Snapshot) Each(fn func(name string, value uint64)) {
	for p := s.regs.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Clone returns an independent copy preserving order.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	s.Each(func(name string, value uint64) {
		out.Set(name, value)
	})
	return out
}

// Rename applies the architecture's display aliases. A renamed register is
// removed and re-inserted, so it moves to the end of the iteration order.
// Renaming must be applied identically to both snapshots before a Diff, or
// the diff is computed over mismatched names.
func (s *Snapshot) Rename(a arch.Arch) {
	for _, al := range a.Aliases {
		if v, ok := s.regs.Get(al.Raw); ok {
			s.regs.Delete(al.Raw)
			s.regs.Set(al.Name, v)
		}
	}
}

// Diff returns the names whose value differs from prev, or is absent from
// it. A nil prev yields an empty set (nothing highlighted).
func (s *Snapshot) Diff(prev *Snapshot) map[string]bool {
	changed := make(map[string]bool)
	if prev == nil {
		return changed
	}
	s.Each(func(name string, value uint64) {
		if old, ok := prev.Get(name); !ok || old != value {
			changed[name] = true
		}
	})
	return changed
}
