// Package cmd implements the command-line interface for dmpcfg.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/dmp-client/dmpcfg/icon"
	"github.com/dmp-client/dmpcfg/key"
	"github.com/dmp-client/dmpcfg/keypair"
	"github.com/dmp-client/dmpcfg/log"
	"github.com/dmp-client/dmpcfg/settings"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/dmp-client/dmpcfg/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (plain, emoji, nerd)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("no-legacy", false, "Do not import a legacy servers.xml file")
}

// rootCmd defines the entry point for dmpcfg.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Inspect and edit the multiplayer client settings",
	Long: constant.Banner + "\n\n" +
		style.New().Italic(true).Foreground(color.Accent).Render("    - Inspect and edit the multiplayer client settings"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// newManager builds a settings manager over the resolved data and backup directories.
func newManager(cmd *cobra.Command) *settings.Manager {
	noLegacy, _ := cmd.Flags().GetBool("no-legacy")

	return settings.NewManager(
		filesystem.API(),
		settings.PathsIn(where.Data(), where.Backup()),
		keypair.RSAGenerator{Bits: viper.GetInt(key.KeypairBits)},
		settings.WithLegacyImport(viper.GetBool(key.SettingsLegacyImport) && !noLegacy),
	)
}

// load runs a full settings load and warns about anything it had to contain.
func load(cmd *cobra.Command) (*settings.Manager, *settings.Settings, *settings.Report) {
	manager := newManager(cmd)
	s, report := manager.Load()

	for _, err := range report.Errors {
		_, _ = fmt.Fprintf(
			os.Stderr,
			"%s %s\n",
			style.Fg(color.Warning)(icon.Get(icon.Warn)),
			err,
		)
	}

	return manager, s, report
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Success)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}
