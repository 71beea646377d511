// Package main is the entry point for dmpcfg.
package main

import (
	"github.com/dmp-client/dmpcfg/cmd"
	"github.com/dmp-client/dmpcfg/config"
	"github.com/dmp-client/dmpcfg/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
