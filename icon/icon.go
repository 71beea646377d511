// Package icon renders status symbols in the variant chosen by the user.
//
// Icons can be displayed as plain ASCII, emoji or nerd-font glyphs.
package icon

import (
	"github.com/dmp-client/dmpcfg/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every supported variant name.
func AvailableVariants() []string {
	return []string{plain, emoji, nerd}
}

// Icon identifies a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Info
	Key
	Server
	Backup
	Arrow
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

var icons = map[Icon]*iconDef{
	Success: {emoji: "✅", nerd: "", plain: "✓"},
	Fail:    {emoji: "❌", nerd: "", plain: "✗"},
	Warn:    {emoji: "⚠️", nerd: "", plain: "!"},
	Info:    {emoji: "ℹ️", nerd: "", plain: "i"},
	Key:     {emoji: "🔑", nerd: "", plain: "*"},
	Server:  {emoji: "🛰️", nerd: "", plain: "@"},
	Backup:  {emoji: "💾", nerd: "", plain: "#"},
	Arrow:   {emoji: "➡️", nerd: "", plain: "->"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get renders i in the configured variant, or returns an empty string for an unknown variant.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.get()
}
