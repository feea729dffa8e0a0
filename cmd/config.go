package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/config"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/filesystem"
	"github.com/tevify/tevify/icon"
	"github.com/tevify/tevify/style"
	"github.com/tevify/tevify/where"
)

func configPath() string {
	return filepath.Join(where.Config(), constant.Tevify+".toml")
}

// lookupField resolves k or fails with the closest registered key.
func lookupField(k string) config.Field {
	if field, ok := config.Default[k]; ok {
		return field
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	handleErr(fmt.Errorf(
		"%w %s, did you mean %s?",
		config.ErrUnknownKey,
		style.Fg(color.Red)(k),
		style.Fg(color.Yellow)(closest),
	))
	return config.Field{}
}

// persist writes viper's state, creating the file on first use.
func persist() {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = viper.SafeWriteConfig()
	}
	handleErr(err)
}

func done(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

// keyArg takes the key from the first argument or the --key flag.
func keyArg(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if k := lo.Must(cmd.Flags().GetString("key")); k != "" {
		return k
	}
	handleErr(errors.New("key is required as an argument or --key flag"))
	return ""
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change playback, controls, engine and feed settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Only describe these keys")
	configInfoCmd.Flags().StringP("section", "s", "", "Only describe one section, e.g. playback or controls")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	configInfoCmd.MarkFlagsMutuallyExclusive("key", "section")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd describes settings grouped by section.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings, grouped by section",
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)

		if keys := lo.Must(cmd.Flags().GetStringSlice("key")); len(keys) > 0 {
			fields = lo.Map(keys, func(k string, _ int) config.Field { return lookupField(k) })
		}

		groups := config.Sections(fields)
		if section := lo.Must(cmd.Flags().GetString("section")); section != "" {
			groups = lo.Filter(groups, func(g config.Group, _ int) bool { return g.Name == section })
			if len(groups) == 0 {
				handleErr(fmt.Errorf("unknown section %s", style.Fg(color.Red)(section)))
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			out := lo.FlatMap(groups, func(g config.Group, _ int) []*config.Field {
				return lo.ToSlicePtr(g.Fields)
			})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(out))
			return
		}

		for i, group := range groups {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(style.Title(group.Name))
			for _, field := range group.Fields {
				cmd.Println()
				cmd.Println(field.Pretty())
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "The key to change")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configSetCmd validates and stores a new value.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Change a setting; timings are checked before they are saved",
	Example:           "  tevify config set controls.auto_hide 5000",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)
		lookupField(k)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		v, err := config.Parse(k, raw)
		handleErr(err)

		viper.Set(k, v)
		persist()
		done("set %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(fmt.Sprint(v)))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The key to read")
	configGetCmd.Flags().BoolP("default", "d", false, "Print the built-in default instead")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field := lookupField(keyArg(cmd, args))
		if lo.Must(cmd.Flags().GetBool("default")) {
			cmd.Println(field.Value)
			return
		}
		cmd.Println(viper.Get(field.Key))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !os.IsNotExist(err) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		done("wrote config to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
	configDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath()

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Delete %s?", path),
				Default: false,
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		handleErr(filesystem.API().Remove(path))
		done("deleted %s", path)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().StringP("key", "k", "", "Reset one key")
	configResetCmd.Flags().StringP("section", "s", "", "Reset every key of a section")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "section", "all")
	configResetCmd.MarkFlagsOneRequired("key", "section", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore settings to their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			k       = lo.Must(cmd.Flags().GetString("key"))
			section = lo.Must(cmd.Flags().GetString("section"))
			fields  []config.Field
		)

		switch {
		case k != "":
			fields = []config.Field{lookupField(k)}
		case section != "":
			fields = lo.Filter(lo.Values(config.Default), func(f config.Field, _ int) bool {
				return f.Section() == section
			})
			if len(fields) == 0 {
				handleErr(fmt.Errorf("unknown section %s", style.Fg(color.Red)(section)))
			}
		default:
			fields = lo.Values(config.Default)
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		persist()

		if len(fields) == 1 {
			done("reset %s to %s", style.Fg(color.Purple)(fields[0].Key), style.Fg(color.Yellow)(fmt.Sprint(fields[0].Value)))
			return
		}
		done("reset %d settings", len(fields))
	},
}
