package cmd

import (
	"os"
	"runtime"
	"text/template"

	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}    {{ bold .Version }}
  {{ faint "Go" }}         {{ bold .Go }}
  {{ faint "Platform" }}   {{ bold .OS }}/{{ bold .Arch }}
`))

// versionCmd displays version and platform information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App     string
			Version string
			Go      string
			OS      string
			Arch    string
		}{
			App:     constant.App,
			Version: constant.Version,
			Go:      runtime.Version(),
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		}))
	},
}
