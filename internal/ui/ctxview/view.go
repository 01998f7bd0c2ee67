// Package ctxview renders the debugger's context view: the register grid
// with change highlighting, the stack dump, a sliding disassembly window
// around the program counter, and the memory examiner. Everything is plain
// text with ANSI styling, written to one terminal-shaped writer.
//
// The renderers only read from the target through emu.Machine; they are
// called with the emulator quiesced and hold no state between calls.
package ctxview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"emudbg/internal/emu"
	"emudbg/internal/logging"
)

// View renders context sections for one machine.
type View struct {
	m     emu.Machine
	out   io.Writer
	size  func() (int, int)
	theme Theme
	log   *logging.LoggerCloser
}

type Option func(*View)

// WithWriter redirects output away from stdout.
func WithWriter(w io.Writer) Option {
	return func(v *View) { v.out = w }
}

// WithSize fixes the terminal dimensions instead of querying the tty.
func WithSize(size func() (int, int)) Option {
	return func(v *View) { v.size = size }
}

func WithTheme(t Theme) Option {
	return func(v *View) { v.theme = t }
}

func New(m emu.Machine, opts ...Option) *View {
	v := &View{
		m:     m,
		out:   os.Stdout,
		size:  terminalSize,
		theme: DefaultTheme(),
		log:   logging.NewLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// terminalSize reads the controlling terminal fresh on every call; the
// terminal may have been resized between stop events. Without a tty the
// classic 80x24 applies.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80, 24
	}
	return w, h
}

// section prints a header rule sized to the title and terminal width, runs
// body, and prints a closing rule of the full width. The closing rule is
// emitted from a defer so it appears on every exit path, panics included;
// a body error surfaces to the caller only after the rule is out.
func (v *View) section(title string, rule rune, body func() error) error {
	w, _ := v.size()
	pad := w - len(title) - 1
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(v.out, title, strings.Repeat(string(rule), pad))
	defer fmt.Fprintln(v.out, strings.Repeat(string(rule), w))
	return body()
}

// probe is the best-effort memory read used everywhere a miss is
// acceptable: a fault becomes a nil result, never an error.
func (v *View) probe(addr, size uint64) []byte {
	b, err := v.m.ReadMemory(addr, size)
	if err != nil {
		v.log.Debug("memory probe miss", "addr", fmt.Sprintf("%#x", addr), "size", size)
		return nil
	}
	return b
}
