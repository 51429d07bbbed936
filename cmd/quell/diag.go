package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"quell/internal/casefile"
	"quell/internal/diag"
	"quell/internal/fix"
	"quell/internal/harness"
	"quell/internal/recording"
	"quell/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <case.toml>",
	Short: "Print the filtered diagnostics of a case",
	Long: `Replay the case recording at the workspace selection and print the diagnostics
that survive the case policy. With --fixes the offered actions are listed too.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "golden", "output format (golden|pretty|sarif)")
	diagCmd.Flags().Bool("fixes", false, "also list the actions offered for the diagnostics")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "golden", "pretty", "sarif":
	default:
		return fmt.Errorf("unknown format %q (must be golden, pretty or sarif)", format)
	}
	withFixes, err := cmd.Flags().GetBool("fixes")
	if err != nil {
		return fmt.Errorf("failed to get fixes flag: %w", err)
	}
	if withFixes && format == "sarif" {
		return fmt.Errorf("--fixes cannot be combined with --format sarif")
	}

	file, err := casefile.Load(args[0])
	if err != nil {
		return err
	}
	ws, err := file.LoadWorkspace()
	if err != nil {
		return err
	}
	h := harness.New(file.Case())
	out := cmd.OutOrStdout()

	if !withFixes {
		diags, err := h.Diagnostics(cmd.Context(), ws)
		if err != nil {
			return err
		}
		return writeDiagnostics(out, format, diags, ws.FileSet)
	}

	res, err := h.DiagnosticsAndFixes(cmd.Context(), ws)
	if err != nil {
		return err
	}
	if err := writeDiagnostics(out, format, res.Diagnostics, ws.FileSet); err != nil {
		return err
	}
	fmt.Fprintln(out)
	writeActions(out, res.Actions, file.ActionIndex)
	return nil
}

func writeDiagnostics(out io.Writer, format string, diags []*diag.Diagnostic, fs *source.FileSet) error {
	switch format {
	case "pretty":
		return diag.WritePretty(out, diags, fs)
	case "sarif":
		return recording.WriteSARIF(out, recording.FromDiagnostics("quell", diags, fs))
	default:
		if len(diags) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(out, diag.FormatGoldenDiagnostics(diags, fs))
		return err
	}
}

// writeActions lists actions by index and marks the selected one.
func writeActions(out io.Writer, actions []fix.Action, selected int) {
	if len(actions) == 0 {
		fmt.Fprintln(out, "no actions offered")
		return
	}
	for i, a := range actions {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Fprintf(out, "%s [%d] %s", marker, i, a.Title)
		if a.Key != "" {
			fmt.Fprintf(out, " (%s)", a.Key)
		}
		if a.IsPreferred {
			fmt.Fprint(out, " preferred")
		}
		fmt.Fprintln(out)
	}
}
