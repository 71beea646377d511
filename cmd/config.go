package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/config"
	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/dmp-client/dmpcfg/util"
	"github.com/dmp-client/dmpcfg/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(key string) error {
	msg := fmt.Sprintf("unknown config key %s", style.Fg(color.Red)(key))
	if closest, ok := util.Closest(key, lo.Keys(config.Default)).Get(); ok {
		msg += fmt.Sprintf(", did you mean %s?", style.Fg(color.Yellow)(closest))
	}

	return errors.New(msg)
}

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func configField(key string) config.Field {
	f, ok := config.Default[key]
	if !ok {
		handleErr(errUnknownKey(key))
	}
	return f
}

func configFile() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// saveConfig writes the in-memory configuration, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return viper.SafeWriteConfigAs(configFile())
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd manages the tool's own configuration, not the player settings.
var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage the configuration of dmpcfg itself",
	Aliases: []string{"cfg"},
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd describes configuration keys and the locations they resolve to.
var configInfoCmd = &cobra.Command{
	Use:   "info [key...]",
	Short: "Describe configuration keys and where they currently point",
	ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)
		if len(args) > 0 {
			fields = lo.Map(args, func(key string, _ int) config.Field { return configField(key) })
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(fields))
			return
		}

		for i, f := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(f.Pretty())
		}

		cmd.Printf("\n%s %s\n", style.Faint("config file"), configFile())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the value of a configuration key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		f := configField(args[0])
		cmd.Println(viper.Get(f.Key))
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

// configSetCmd validates and stores a configuration value.
var configSetCmd = &cobra.Command{
	Use:               "set <key> <value...>",
	Short:             "Change a configuration key",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		f := configField(args[0])

		v, err := f.Parse(args[1:])
		handleErr(err)

		viper.Set(f.Key, v)
		handleErr(saveConfig())

		success("set %s to %s", style.Fg(color.Key)(f.Key), style.Fg(color.Value)(fmt.Sprint(v)))
		if f.Resolve != nil {
			success("%s now resolves to %s", f.Key, f.Resolve())
		}
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every configuration key")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]",
	Short:             "Restore a configuration key to its default value",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	PreRun: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) == 1) {
			handleErr(errors.New("either a key or --all must be given"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)
		if len(args) == 1 {
			fields = []config.Field{configField(args[0])}
		}

		for _, f := range fields {
			viper.Set(f.Key, f.Value)
		}
		handleErr(saveConfig())

		if len(args) == 0 {
			success("reset every config key")
			return
		}
		success("reset %s to %s", style.Fg(color.Key)(fields[0].Key), style.Fg(color.Value)(fmt.Sprint(fields[0].Value)))
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the config file. The player settings are not touched.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file, falling back to defaults",
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()
		handleErr(filesystem.API().Remove(path))
		success("deleted %s", path)
	},
}
