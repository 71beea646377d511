package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/dmp-client/dmpcfg/settings"
	"github.com/dmp-client/dmpcfg/util"
	"github.com/dmp-client/dmpcfg/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a set of generated files that can be removed safely.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	paths    func(settings.Paths) []string
}

// clearTargets never includes the primary settings document or keypair.
var clearTargets = []clearTarget{
	{"log files", "logs", mo.Some("l"), func(settings.Paths) []string { return []string{where.Logs()} }},
	{"legacy settings", "legacy", mo.None[string](), func(p settings.Paths) []string {
		return []string{p.Legacy, p.BackupLegacy}
	}},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes files the tool no longer needs.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove logs and already imported legacy files",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool
		paths := newManager(cmd).Paths()

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			for _, path := range target.paths(paths) {
				if err := filesystem.API().RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
					handleErr(err)
				}
			}
			success("%s cleared", util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
