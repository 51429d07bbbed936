package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"quell/internal/version"
)

// buildInfo is what `quell version` reports. Empty build fields were not
// stamped through -ldflags.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Message   string `json:"message,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Go        string `json:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quell version and build stamp",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		info := currentBuild()
		if asJSON {
			return writeBuildJSON(cmd.OutOrStdout(), info)
		}
		writeBuild(cmd.OutOrStdout(), info, version.Colored(), verbose)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "print the build stamp as JSON")
	versionCmd.Flags().BoolP("verbose", "v", false, "also print commit, build date and Go version")
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:   strings.TrimSpace(version.Version),
		Commit:    strings.TrimSpace(version.GitCommit),
		Message:   strings.TrimSpace(version.GitMessage),
		BuildDate: strings.TrimSpace(version.BuildDate),
		Go:        runtime.Version(),
	}
}

// writeBuild prints shown as the version; it is info.Version, possibly colored.
func writeBuild(out io.Writer, info buildInfo, shown string, verbose bool) {
	fmt.Fprintf(out, "quell %s\n", shown)
	if !verbose {
		return
	}
	stamp := [][2]string{
		{"commit", info.Commit},
		{"message", info.Message},
		{"built", info.BuildDate},
		{"go", info.Go},
	}
	for _, kv := range stamp {
		if kv[1] == "" {
			kv[1] = "-"
		}
		fmt.Fprintf(out, "  %-8s %s\n", kv[0], kv[1])
	}
}

func writeBuildJSON(out io.Writer, info buildInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
