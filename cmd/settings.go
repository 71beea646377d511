package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/settings"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/dmp-client/dmpcfg/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func errUnknownField(name string) error {
	msg := fmt.Sprintf("unknown setting %s", style.Fg(color.Red)(name))
	if closest, ok := util.Closest(name, settings.FieldNames()).Get(); ok {
		msg += fmt.Sprintf(", did you mean %s?", style.Fg(color.Yellow)(closest))
	}

	return errors.New(msg)
}

func completionFields(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return settings.FieldNames(), cobra.ShellCompDirectiveNoFileComp
}

func field(name string) settings.Field {
	f, ok := settings.FieldByName(name)
	if !ok {
		handleErr(errUnknownField(name))
	}
	return f
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	showCmd.SetOut(os.Stdout)
}

// showCmd prints every setting.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		_, s, _ := load(cmd)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(s))
			return
		}

		keyStyle := style.New().Bold(true).Foreground(color.Key).Width(18).Render
		for _, f := range settings.Fields {
			value := style.Fg(color.Value)(f.Get(s))
			if f.Name == settings.FieldPlayerColor {
				value = style.Swatch(s.PlayerColor.Hex()) + " " + value
			}
			cmd.Printf("%s %s\n", keyStyle(f.Name), value)
		}

		cmd.Printf("%s %s\n", keyStyle("servers"), util.Quantify(len(s.Servers), "server", "servers"))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.SetOut(os.Stdout)
}

// getCmd prints a single setting.
var getCmd = &cobra.Command{
	Use:               "get <setting>",
	Short:             "Print the value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionFields,
	Run: func(cmd *cobra.Command, args []string) {
		f := field(args[0])
		_, s, _ := load(cmd)
		cmd.Println(f.Get(s))
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// setCmd parses a value the way the settings file is parsed and saves it.
var setCmd = &cobra.Command{
	Use:               "set <setting> <value>",
	Short:             "Change a setting",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionFields,
	Run: func(cmd *cobra.Command, args []string) {
		f := field(args[0])
		manager, s, _ := load(cmd)

		handleErr(f.Set(s, args[1]))
		handleErr(manager.Save(s))

		success("set %s to %s", style.Fg(color.Key)(f.Name), style.Fg(color.Value)(f.Get(s)))
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("all", "a", false, "Reset every setting")
}

// resetCmd restores settings to their defaults. Servers and the keypair are kept.
var resetCmd = &cobra.Command{
	Use:               "reset [setting]",
	Short:             "Restore a setting to its default value",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionFields,
	PreRun: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) == 1) {
			handleErr(errors.New("either a setting or --all must be given"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fields := settings.Fields
		if len(args) == 1 {
			fields = []settings.Field{field(args[0])}
		}

		manager, s, _ := load(cmd)
		for _, f := range fields {
			f.Reset(s)
		}
		handleErr(manager.Save(s))

		for _, f := range fields {
			success("reset %s to %s", style.Fg(color.Key)(f.Name), style.Fg(color.Value)(f.Get(s)))
		}
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// schemaCmd prints the JSON schema of the show --json output.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the settings printed by show --json",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "settings." + t.Name()
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&settings.Settings{})))
	},
}
