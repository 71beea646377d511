// Package constant defines immutable application-level identifiers and file names.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "dmpcfg"

	// Version is the current application semantic version string.
	Version = "0.4.0"
)

// Banner is printed at the top of the root command help.
const Banner = `     _                       __
  __| |_ __ ___  _ __   ___ / _| __ _
 / _' | '_ ' _ \| '_ \ / __| |_ / _' |
| (_| | | | | | | |_) | (__|  _| (_| |
 \__,_|_| |_| |_| .__/ \___|_|  \__, |
                |_|             |___/`
