package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quell/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "quell",
	Short: "Suppression-fix test harness",
	Long: `quell replays recorded analyzer diagnostics against marked-up workspaces
and checks the suppression fixes offered for them`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// cleanups run after the command finishes, in reverse order.
var cleanups []func()

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "write trace events to a file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.String("cpu-profile", "", "write a CPU profile to the file")
	flags.String("mem-profile", "", "write a heap profile to the file")
	flags.String("runtime-trace", "", "write a Go runtime trace to the file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func setupCommand(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	cleanup, err = setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
