package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tevify/tevify/catalog"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/style"
	"github.com/tevify/tevify/util"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogCmd groups the catalog inspection commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the video catalog",
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogShowCmd.Flags().StringP("filter", "f", "", "Fuzzy filter on video titles")
	catalogShowCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	catalogShowCmd.SetOut(os.Stdout)
}

// catalogShowCmd lists the videos of the configured catalog.
var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the videos of the configured catalog",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := catalog.FromConfig(context.Background())
		handleErr(err)

		videos := c.Filter(lo.Must(cmd.Flags().GetString("filter")))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(videos))
			return
		}

		if c.Name != "" {
			cmd.Printf("%s %s\n", style.Title(c.Name), style.Faint(util.Quantify(len(videos), "video", "videos")))
			cmd.Println()
		}

		for _, v := range videos {
			cmd.Printf("%s %s\n", style.Fg(color.Brand)(fmt.Sprintf("%3d", v.ID)), style.Bold(v.Title))
			if subtitles := v.Subtitles(); len(subtitles) > 0 {
				cmd.Printf("    %s\n", style.Faint(strings.Join(subtitles, " • ")))
			}
			cmd.Printf("    %s\n", style.Fg(color.Gray)(v.URI))
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
	catalogSchemaCmd.SetOut(os.Stdout)
}

// catalogSchemaCmd prints the JSON schema of catalog files.
var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of catalog files",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(catalog.Schema()))
	},
}
