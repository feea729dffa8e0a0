package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/style"
	"github.com/tevify/tevify/version"
)

type buildInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Engine   string `json:"engine"`
}

func currentBuild() buildInfo {
	return buildInfo{
		App:      constant.Tevify,
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Engine:   engineStatus(),
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build information as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := currentBuild()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(info))
			return
		}

		defer version.Notify()

		cmd.Printf("%s %s\n\n", style.Fg(color.Brand)("▇▇▇"), style.Bold(info.App))
		for _, row := range [][2]string{
			{"Version", info.Version},
			{"Git Commit", info.Revision},
			{"Build Date", info.BuiltAt},
			{"Built By", info.BuiltBy},
			{"Platform", info.Platform},
			{"Engine", info.Engine},
		} {
			cmd.Printf("  %s %s\n", style.Faint(padRight(row[0], 14)), style.Bold(row[1]))
		}
	},
}

func engineStatus() string {
	if path, err := enginePath(); err == nil {
		return path
	}
	return "not found"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
