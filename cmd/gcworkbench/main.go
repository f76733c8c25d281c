package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gcworkbench/internal/gcerr"
	"gcworkbench/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gcworkbench",
	Short: "A garbage collector algorithm workbench",
	Long:  `gcworkbench runs a small workload through one of four pluggable collector algorithms and records every heap mutation for animation.`,
}

// main wires the version string, registers subcommands and persistent
// flags, and executes the root command. A non-nil error, or a fatal
// *gcerr.Fault panicking up from the core, exits 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(replayCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("algo", "", "collector algorithm (refcount|marksweep|copy|markcompact)")
	rootCmd.PersistentFlags().Int("heap-size", 0, "total heap word count (0 = manifest/default)")
	rootCmd.PersistentFlags().String("out-dir", "", "directory to write rendered frames into")
	rootCmd.PersistentFlags().Bool("cache", false, "cache the run's trace on disk and reuse it on an exact repeat")

	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*gcerr.Fault)
			if !ok {
				panic(r)
			}
			fmt.Fprintln(os.Stderr, fault.Error())
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
