package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/tools/txtar"

	"quell/internal/casefile"
	"quell/internal/fix"
	"quell/internal/harness"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <case.toml>",
	Short: "Apply the selected action of a case and print the result",
	Long: `Apply the action picked by the case action_index and print the changed
documents as a txtar archive. The output can be pasted into the workspace as
expected/ entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "print unchanged documents too")
	fixCmd.Flags().Int("index", -1, "override the case action_index")
}

func runFix(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	index, err := cmd.Flags().GetInt("index")
	if err != nil {
		return err
	}

	file, err := casefile.Load(args[0])
	if err != nil {
		return err
	}
	ws, err := file.LoadWorkspace()
	if err != nil {
		return err
	}
	c := file.Case()
	if index >= 0 {
		c.ActionIndex = index
	}
	res, err := harness.New(c).DiagnosticsAndFixes(cmd.Context(), ws)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	applied, err := fix.Apply(ws.FileSet, res.Selected)
	if err != nil {
		return fmt.Errorf("fix: %s: %w", res.Selected.Title, err)
	}

	ar := &txtar.Archive{
		Comment: fmt.Appendf(nil, "%s: %s\n", file.Name, res.Selected.Title),
	}
	for _, doc := range ws.Documents() {
		text := applied.Text(ws.FileSet, doc.ID)
		if !all && text == doc.Text() {
			continue
		}
		ar.Files = append(ar.Files, txtar.File{Name: "expected/" + doc.Name, Data: []byte(text)})
	}
	_, err = cmd.OutOrStdout().Write(txtar.Format(ar))
	return err
}
