package cmd

import (
	"os"

	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/icon"
	"github.com/dmp-client/dmpcfg/keypair"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keypairCmd)
	keypairCmd.Flags().BoolP("public", "p", false, "Print the public key instead of its fingerprint")
	keypairCmd.SetOut(os.Stdout)
}

// keypairCmd prints the player's identity. The private key is never printed.
var keypairCmd = &cobra.Command{
	Use:     "keypair",
	Short:   "Show the fingerprint of the player keypair, creating the keypair if needed",
	Aliases: []string{"key"},
	Run: func(cmd *cobra.Command, args []string) {
		_, s, _ := load(cmd)
		pair := keypair.Pair{Public: s.PublicKey, Private: s.PrivateKey}

		if lo.Must(cmd.Flags().GetBool("public")) {
			cmd.Print(pair.Public)
			return
		}

		cmd.Printf(
			"%s %s\n",
			style.Fg(color.Accent)(icon.Get(icon.Key)),
			style.Fg(color.Value)(pair.Fingerprint()),
		)
	},
}
