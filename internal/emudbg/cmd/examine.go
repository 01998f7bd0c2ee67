package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"emudbg/internal/ui/ctxview"
)

var examineCmd = &cobra.Command{
	Use:     "examine <binary> <address>",
	Aliases: []string{"x"},
	Short:   "Dump target memory in a gdb-style grid",
	Long: `Examine memory of a loaded binary at the given address. Format letters
follow gdb: i (instructions), x (hex), o (octal), t (binary), d (decimal),
a (address), c (ascii). Elements that fall on unmapped memory are omitted
from their row.`,
	Example: `
# Four hex words at the entry point
emudbg x ./firmware.elf 0x400078

# Eight instructions
emudbg x -f i -c 8 ./firmware.elf 0x400078

# Sixteen bytes, decimal
emudbg x -f d -s 1 -c 16 --arch arm dump.bin 0x10000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := strconv.ParseUint(args[1], 0, 64)
		if err != nil {
			return fmt.Errorf("bad address %q: %w", args[1], err)
		}

		letter, _ := cmd.Flags().GetString("format")
		size, _ := cmd.Flags().GetInt("size")
		count, _ := cmd.Flags().GetInt("count")

		spec, err := ctxview.ParseFormat(letter, size, count)
		if err != nil {
			return err
		}

		t, err := loadTarget(cmd, args[0])
		if err != nil {
			return err
		}

		opts := []ctxview.Option{}
		if !term.IsTerminal(os.Stdout.Fd()) {
			opts = append(opts, ctxview.WithTheme(ctxview.PlainTheme()))
		}
		ctxview.New(t.core, opts...).Examine(addr, spec)
		return nil
	},
}

func init() {
	examineCmd.Flags().StringP("format", "f", "x", "format letter (i, x, o, t, d, a, c)")
	examineCmd.Flags().IntP("size", "s", 4, "element size in bytes (1, 2, 4, 8)")
	examineCmd.Flags().IntP("count", "c", 4, "element count")
}
