package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/icon"
	"github.com/dmp-client/dmpcfg/settings"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/dmp-client/dmpcfg/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolP("json", "j", false, "Format the report as JSON")
	doctorCmd.SetOut(os.Stdout)
}

// doctorCmd runs a load and reports every repair it made.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Load the settings, repair what is broken and report what was done",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, report := load(cmd)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				*settings.Report
				Errors []string `json:"errors"`
			}{report, report.ErrorStrings()}))
			return
		}

		cmd.Println(renderReport(report))
	},
}

func renderReport(report *settings.Report) string {
	healthy := len(report.Errors) == 0
	border := lo.Ternary(healthy, color.Success, color.Failure)

	title := style.New().Bold(true).Foreground(border).Render(
		lo.Ternary(
			healthy,
			fmt.Sprintf("%s Settings are healthy", icon.Get(icon.Success)),
			fmt.Sprintf("%s Settings needed attention", icon.Get(icon.Warn)),
		),
	)

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", style.Faint("strategy"), report.Strategy))
	for _, step := range []struct {
		name string
		done bool
	}{
		{"restored from backup", report.Restored},
		{"created", report.Created},
		{"backed up", report.BackedUp},
		{"resaved", report.Resaved},
	} {
		if step.done {
			lines = append(lines, fmt.Sprintf("%s %s", icon.Get(icon.Backup), util.Capitalize(step.name)))
		}
	}

	if report.Dirty() {
		lines = append(lines, fmt.Sprintf(
			"%s %s defaulted: %s",
			icon.Get(icon.Info),
			util.Quantify(len(report.Defaulted), "field", "fields"),
			style.Fg(color.Value)(fmt.Sprint(report.Defaulted)),
		))
	}

	for _, err := range report.Errors {
		lines = append(lines, style.Fg(color.Failure)(fmt.Sprintf("%s %s", icon.Get(icon.Fail), err)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		MaxWidth(util.TerminalWidth(100))

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, lines...)...))
}
