package disasm

// None is the backend for targets without a supported decoder. Every chunk
// decodes to an empty stream, so disassembly windows render as absent
// rather than failing.
type None struct{}

func (None) Disasm(code []byte, base uint64) Stream { return nil }
