package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"metareflect/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "metacli",
	Short: "Runtime reflection toolkit for the meta dynamic-value core",
	Long:  `metacli registers types, runs dispatch scenarios, and benches the pool and heap memory back-ends of a meta.Registry.`,
}

// main wires the version string, registers subcommands and persistent
// flags, and executes the root command. A non-nil execution error exits
// with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	rootCmd.PersistentFlags().String("trace", "", "write a trace stream to this path (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|phase|detail)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "trace ring buffer capacity")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime/trace stream to this path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
