package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/ianlancetaylor/demangle"
	"github.com/spf13/cobra"

	"emudbg/internal/arch"
	"emudbg/internal/ui/ctxview"
)

var viewCmd = &cobra.Command{
	Use:   "view <binary>",
	Short: "Render a one-shot context view of a binary image",
	Long: `Load a binary, place the program counter at its entry point (or --start)
and render the register, stack and code sections exactly as the debugger
prints them on a stop event.`,
	Example: `
# Context view of an ELF at its entry point
emudbg view ./firmware.elf

# Flat ARM image loaded at 0x8000, starting at 0x8040
emudbg view --arch arm --base 0x8000 --start 0x8040 dump.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTarget(cmd, args[0])
		if err != nil {
			return err
		}

		if startStr, _ := cmd.Flags().GetString("start"); startStr != "" {
			start, err := strconv.ParseUint(startStr, 0, 64)
			if err != nil {
				return fmt.Errorf("bad start address %q: %w", startStr, err)
			}
			t.core.SetPC(start)
		}

		opts := []ctxview.Option{}
		if !term.IsTerminal(os.Stdout.Fd()) {
			opts = append(opts, ctxview.WithTheme(ctxview.PlainTheme()))
		}
		v := ctxview.New(t.core, opts...)

		pc := t.core.PC()
		if t.image != nil {
			if sym := t.image.FindSym(pc); sym != nil {
				fmt.Printf("stopped at %s\n", demangle.Filter(sym.Name))
			}
		}

		if err := v.Context(nil); err != nil {
			return err
		}
		return v.Code(pc, instructionSize(t.core.Arch()))
	},
}

// instructionSize is the byte length of the active instruction, which a
// live engine would report per step. Fixed-width targets use their word
// size; x86 gets its maximum encoding length and lets the decoder find the
// real boundary.
func instructionSize(a arch.Arch) uint64 {
	if a.Tag == "x86_64" {
		return 15
	}
	return 4
}

func init() {
	viewCmd.Flags().String("start", "", "address to place the program counter at")
}
