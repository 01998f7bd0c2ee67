// Package cmd implements the emudbg command line: one-shot context views
// and memory examination of binary images, without the interactive
// debugger loop.
package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "emudbg",
	Short: "Terminal context viewer for emulated targets",
	Long: `emudbg renders the debugger context view (registers, stack, code window)
and gdb-style memory dumps for binary images, using the same renderers the
step-debugger prints on every stop event.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("arch", "", "treat input as a flat image for this architecture (arm, thumb, arm64, mips, x86_64)")
	rootCmd.PersistentFlags().String("base", "0x10000", "load address for flat images")
	rootCmd.PersistentFlags().Bool("big-endian", false, "flat images are big-endian")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(examineCmd)
}

// Execute runs the root command, through fang when stdout is a terminal
// and plain cobra when output is piped.
func Execute() {
	if !term.IsTerminal(os.Stdout.Fd()) {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
