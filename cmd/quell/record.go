package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quell/internal/recording"
)

var recordCmd = &cobra.Command{
	Use:   "record [flags] <in> <out>",
	Short: "Convert a recording between SARIF and .qrec",
	Long: `Read a recording and write it in the format picked by the output extension:
SARIF for .sarif and .json, msgpack otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().String("tool", "", "override the recorded tool name")
}

func runRecord(cmd *cobra.Command, args []string) error {
	tool, err := cmd.Flags().GetString("tool")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	rec, err := recording.Load(args[0])
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if tool != "" {
		rec.Tool = tool
	}
	if err := recording.Save(args[1], rec); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "recorded %d entries to %s\n", len(rec.Entries), args[1])
	}
	return nil
}
