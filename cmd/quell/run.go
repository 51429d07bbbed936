package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quell/internal/casefile"
	"quell/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <case.toml|directory>...",
	Short: "Run suppression-fix cases",
	Long:  "Load each case file, check its golden diagnostics and expected documents, and report PASS or FAIL per case.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCases,
}

func init() {
	runCmd.Flags().Int("jobs", 0, "max cases run in parallel (0=auto)")
	runCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
}

func runCases(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0")
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	paths, err := collectCases(args)
	if err != nil {
		return err
	}

	opts := runner.Options{Jobs: jobs}
	var outcomes []runner.Outcome
	if !quiet && shouldUseTUI(mode) {
		outcomes, err = runCasesWithUI(cmd.Context(), "quell run", paths, opts)
	} else {
		outcomes, err = runner.Run(cmd.Context(), paths, opts)
	}
	if err != nil && !errors.Is(err, cmd.Context().Err()) {
		return err
	}

	printOutcomes(cmd.OutOrStdout(), outcomes, quiet, showTimings)
	passed, failed, _ := runner.Summary(outcomes)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, passed+failed)
	}
	return nil
}

// collectCases expands directories to the case files below them, sorted.
func collectCases(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("run: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), casefile.Extension) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("run: %w", err)
		}
		slices.Sort(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("run: no %s case files found", casefile.Extension)
	}
	return paths, nil
}

func printOutcomes(out io.Writer, outcomes []runner.Outcome, quiet, showTimings bool) {
	pass := color.New(color.FgGreen, color.Bold).Sprint("PASS")
	fail := color.New(color.FgRed, color.Bold).Sprint("FAIL")
	for i := range outcomes {
		o := &outcomes[i]
		name := o.Name
		if name == "" {
			name = o.Path
		}
		switch {
		case !o.Passed():
			fmt.Fprintf(out, "%s %s\n", fail, name)
			for _, line := range strings.Split(o.Err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		case !quiet:
			fmt.Fprintf(out, "%s %s (%.1f ms)\n", pass, name, o.Timings.TotalMS)
		}
		if showTimings && len(o.Timings.Phases) > 0 {
			for _, line := range strings.Split(strings.TrimRight(o.Timings.String(), "\n"), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
	passed, failed, total := runner.Summary(outcomes)
	fmt.Fprintf(out, "%d passed, %d failed in %.1f ms\n", passed, failed, toMillis(total))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
