package ctxview

import (
	"github.com/charmbracelet/lipgloss/v2"

	"emudbg/internal/ui/colorize"
)

// Theme carries the styling used by the renderers so callers configure it
// once instead of relying on process-wide constants. The register grid
// cycles through Palette every four entries; Emphasis marks changed
// registers on top of their palette color.
type Theme struct {
	Palette []lipgloss.Style
	Flags   lipgloss.Style

	// Emphasis transforms an entry's style into its changed-register
	// form. Nil disables highlighting.
	Emphasis func(lipgloss.Style) lipgloss.Style

	// Asm, when set, colorizes the address/mnemonic/operand part of a
	// disassembly line.
	Asm func(string) string
}

// DefaultTheme mirrors the conventional debugger palette: dark cyan, blue,
// red, yellow, green, purple, cyan, white.
func DefaultTheme() Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		Palette: []lipgloss.Style{
			fg("6"), fg("12"), fg("9"), fg("11"),
			fg("10"), fg("13"), fg("14"), fg("15"),
		},
		Emphasis: func(s lipgloss.Style) lipgloss.Style {
			return s.Underline(true).Bold(true)
		},
		Flags: fg("10"),
		Asm:   colorize.Line,
	}
}

// PlainTheme renders without any escape sequences. Used when stdout is not
// a terminal and throughout the tests.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Palette: []lipgloss.Style{plain, plain, plain, plain, plain, plain, plain, plain},
		Flags:   plain,
	}
}
