// Package settings loads, heals and saves the player's settings.
//
// A Manager owns the on-disk layout: a primary settings document, a backup
// copy of it, the player keypair with its backup pair, and optionally a
// legacy XML file from older releases. Load never fails hard. Every field is
// decoded on its own; a field that is absent or malformed takes its default
// and is reported, and any defaulted field makes Load write the document back
// so the files converge on the current schema.
//
// There is no process-wide instance. Callers construct one Manager at
// startup, keep the *Settings returned by Load, mutate it in place and hand
// it back to Save.
package settings

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// Hard defaults.
const (
	DefaultPlayerName  = "Player"
	DefaultCacheSize   = 100
	DefaultFlag        = "Squad/Flags/default"
	DefaultChatKey     = KeyBackQuote
	DefaultScreenshot  = KeyF8
	DefaultToolbar     = ToolbarBlizzyIfInstalled
	DefaultCompression = true
	DefaultRevert      = true
	DefaultDisclaimer  = 0
)

// Settings is the player's complete configuration.
type Settings struct {
	PlayerName         string        `json:"player_name" jsonschema:"minLength=1,default=Player"`
	PublicKey          string        `json:"public_key,omitempty"`
	PrivateKey         string        `json:"-"`
	CacheSize          int           `json:"cache_size" jsonschema:"minimum=0,default=100"`
	DisclaimerAccepted int           `json:"disclaimer_accepted"`
	Servers            []ServerEntry `json:"servers"`
	PlayerColor        Color         `json:"player_color"`
	ScreenshotKey      KeyCode       `json:"screenshot_key" jsonschema:"default=289"`
	ChatKey            KeyCode       `json:"chat_key" jsonschema:"default=96"`
	SelectedFlag       string        `json:"selected_flag" jsonschema:"default=Squad/Flags/default"`
	CompressionEnabled bool          `json:"compression_enabled" jsonschema:"default=true"`
	RevertEnabled      bool          `json:"revert_enabled" jsonschema:"default=true"`
	ToolbarType        ToolbarType   `json:"toolbar_type" jsonschema:"default=2"`
}

// ServerEntry is one known server. Duplicates are allowed.
type ServerEntry struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// Defaults returns settings holding every hard default, with color as the player color.
func Defaults(color Color) Settings {
	return Settings{
		PlayerName:         DefaultPlayerName,
		CacheSize:          DefaultCacheSize,
		DisclaimerAccepted: DefaultDisclaimer,
		Servers:            []ServerEntry{},
		PlayerColor:        color,
		ScreenshotKey:      DefaultScreenshot,
		ChatKey:            DefaultChatKey,
		SelectedFlag:       DefaultFlag,
		CompressionEnabled: DefaultCompression,
		RevertEnabled:      DefaultRevert,
		ToolbarType:        DefaultToolbar,
	}
}

// Color is an RGB player color with components in [0,1].
type Color struct {
	R float64 `json:"r" jsonschema:"minimum=0,maximum=1"`
	G float64 `json:"g" jsonschema:"minimum=0,maximum=1"`
	B float64 `json:"b" jsonschema:"minimum=0,maximum=1"`
}

// ColorFromRGB builds a Color from an r, g, b triple without range checks.
func ColorFromRGB(rgb [3]float64) Color {
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// RGB returns the components as a triple.
func (c Color) RGB() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// Clamp limits every channel to [0,1] independently.
func (c Color) Clamp() Color {
	return Color{
		R: lo.Clamp(c.R, 0, 1),
		G: lo.Clamp(c.G, 0, 1),
		B: lo.Clamp(c.B, 0, 1),
	}
}

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// RandomColor returns a random saturated color, used when no player color is stored.
func RandomColor() Color {
	c := colorful.FastHappyColor()
	return Color{R: c.R, G: c.G, B: c.B}.Clamp()
}
