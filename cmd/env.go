package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/config"
	"github.com/tevify/tevify/style"
	"github.com/tevify/tevify/where"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are unset")
	envCmd.Flags().BoolP("export", "e", false, "Print set variables as shell export lines")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only", "export")
	envCmd.SetOut(os.Stdout)
}

// envCmd lists the environment overrides, grouped like the config file.
// Set values that would not pass `config set` are flagged.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override settings",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			export    = lo.Must(cmd.Flags().GetBool("export"))
			name      = style.New().Bold(true).Foreground(color.Purple).Render
		)

		show := func(present bool) bool {
			return !(setOnly || export) || present
		}
		if unsetOnly {
			show = func(present bool) bool { return !present }
		}

		printVar := func(env, value, problem string) {
			switch {
			case export:
				cmd.Printf("export %s=%q\n", env, value)
			case value == "":
				cmd.Printf("%s=%s\n", name(env), style.Fg(color.Red)("unset"))
			case problem != "":
				cmd.Printf("%s=%s %s\n", name(env), style.Fg(color.Orange)(value), style.Faint(problem))
			default:
				cmd.Printf("%s=%s\n", name(env), style.Fg(color.Green)(value))
			}
		}

		if value := os.Getenv(where.EnvConfigPath); show(value != "") {
			printVar(where.EnvConfigPath, value, "")
		}

		for _, group := range config.Sections(lo.Values(config.Default)) {
			for _, field := range group.Fields {
				env := field.Env()
				value := os.Getenv(env)
				if !show(value != "") {
					continue
				}

				var problem string
				if value != "" {
					if _, err := config.Parse(field.Key, strings.Split(value, ",")); err != nil {
						problem = "(invalid: " + err.Error() + ")"
					}
				}
				printVar(env, value, problem)
			}
		}
	},
}
