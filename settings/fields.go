package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmp-client/dmpcfg/document"
	"github.com/dmp-client/dmpcfg/entry"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Field names, shared by Report.Defaulted and the field registry.
const (
	FieldPlayerName    = "player.name"
	FieldPlayerColor   = "player.color"
	FieldFlag          = "player.flag"
	FieldChatKey       = "keys.chat"
	FieldScreenshotKey = "keys.screenshot"
	FieldCacheSize     = "cache_size"
	FieldDisclaimer    = "disclaimer"
	FieldCompression   = "compression"
	FieldRevert        = "revert"
	FieldToolbar       = "toolbar"
)

// Field exposes one scalar setting by name.
type Field struct {
	Name        string
	Description string
	Get         func(*Settings) string
	Set         func(*Settings, string) error
	Reset       func(*Settings)
}

// Fields lists every scalar setting in display order.
var Fields = []Field{
	{
		Name:        FieldPlayerName,
		Description: "Name shown to other players",
		Get:         func(s *Settings) string { return s.PlayerName },
		Set: func(s *Settings, raw string) error {
			return assign(&s.PlayerName, parse(raw, func(n *document.Node, k string) mo.Result[string] {
				return entry.String(n, k).FlatMap(nonEmpty(k))
			}))
		},
		Reset: func(s *Settings) { s.PlayerName = DefaultPlayerName },
	},
	{
		Name:        FieldPlayerColor,
		Description: `Player color as "r, g, b" in [0,1] or #rrggbb`,
		Get: func(s *Settings) string {
			return fmt.Sprintf("%s (%s)", formatRGB(s.PlayerColor), s.PlayerColor.Hex())
		},
		Set: func(s *Settings, raw string) error {
			color, err := ParseColor(raw)
			if err != nil {
				return err
			}
			s.PlayerColor = color
			return nil
		},
		Reset: func(s *Settings) { s.PlayerColor = RandomColor() },
	},
	{
		Name:        FieldFlag,
		Description: "Flag texture used for new vessels",
		Get:         func(s *Settings) string { return s.SelectedFlag },
		Set: func(s *Settings, raw string) error {
			s.SelectedFlag = raw
			return nil
		},
		Reset: func(s *Settings) { s.SelectedFlag = DefaultFlag },
	},
	{
		Name:        FieldChatKey,
		Description: "Key that opens the chat window",
		Get:         func(s *Settings) string { return s.ChatKey.String() },
		Set: func(s *Settings, raw string) error {
			return assign(&s.ChatKey, mo.TupleToResult(ParseKeyCode(raw)))
		},
		Reset: func(s *Settings) { s.ChatKey = DefaultChatKey },
	},
	{
		Name:        FieldScreenshotKey,
		Description: "Key that shares a screenshot",
		Get:         func(s *Settings) string { return s.ScreenshotKey.String() },
		Set: func(s *Settings, raw string) error {
			return assign(&s.ScreenshotKey, mo.TupleToResult(ParseKeyCode(raw)))
		},
		Reset: func(s *Settings) { s.ScreenshotKey = DefaultScreenshot },
	},
	{
		Name:        FieldCacheSize,
		Description: "Size of the vessel cache in megabytes",
		Get:         func(s *Settings) string { return strconv.Itoa(s.CacheSize) },
		Set: func(s *Settings, raw string) error {
			return assign(&s.CacheSize, parse(raw, func(n *document.Node, k string) mo.Result[int] {
				return entry.Int(n, k).FlatMap(nonNegative(k))
			}))
		},
		Reset: func(s *Settings) { s.CacheSize = DefaultCacheSize },
	},
	{
		Name:        FieldDisclaimer,
		Description: "Whether the disclaimer was accepted, 1 when it was",
		Get:         func(s *Settings) string { return strconv.Itoa(s.DisclaimerAccepted) },
		Set: func(s *Settings, raw string) error {
			return assign(&s.DisclaimerAccepted, parse(raw, entry.Int))
		},
		Reset: func(s *Settings) { s.DisclaimerAccepted = DefaultDisclaimer },
	},
	{
		Name:        FieldCompression,
		Description: "Compress network messages",
		Get:         func(s *Settings) string { return strconv.FormatBool(s.CompressionEnabled) },
		Set: func(s *Settings, raw string) error {
			return assign(&s.CompressionEnabled, parse(raw, entry.Bool))
		},
		Reset: func(s *Settings) { s.CompressionEnabled = DefaultCompression },
	},
	{
		Name:        FieldRevert,
		Description: "Allow reverting flights",
		Get:         func(s *Settings) string { return strconv.FormatBool(s.RevertEnabled) },
		Set: func(s *Settings, raw string) error {
			return assign(&s.RevertEnabled, parse(raw, entry.Bool))
		},
		Reset: func(s *Settings) { s.RevertEnabled = DefaultRevert },
	},
	{
		Name:        FieldToolbar,
		Description: "Toolbar integration: disabled, stock, blizzy or both",
		Get:         func(s *Settings) string { return s.ToolbarType.String() },
		Set: func(s *Settings, raw string) error {
			return assign(&s.ToolbarType, mo.TupleToResult(ParseToolbarType(raw)))
		},
		Reset: func(s *Settings) { s.ToolbarType = DefaultToolbar },
	},
}

// FieldNames returns the names of all fields in display order.
func FieldNames() []string {
	return lo.Map(Fields, func(f Field, _ int) string {
		return f.Name
	})
}

// FieldByName finds a field by its exact name.
func FieldByName(name string) (Field, bool) {
	return lo.Find(Fields, func(f Field) bool {
		return f.Name == name
	})
}

// ParseColor accepts "r, g, b" with components in [0,1] or a #rrggbb hex color.
// Components outside [0,1] are clamped.
func ParseColor(raw string) (Color, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "#") {
		c, err := colorful.Hex(raw)
		if err != nil {
			return Color{}, err
		}
		return Color{R: c.R, G: c.G, B: c.B}, nil
	}

	rgb, err := parse(raw, entry.Color).Get()
	if err != nil {
		return Color{}, err
	}
	return ColorFromRGB(rgb).Clamp(), nil
}

// parse runs a document decoder over a single raw value, so the command line
// accepts exactly what the settings file accepts.
func parse[T any](raw string, decoder func(*document.Node, string) mo.Result[T]) mo.Result[T] {
	section := document.New("")
	section.AddValue("value", raw)
	return decoder(section, "value")
}

func assign[T any](target *T, result mo.Result[T]) error {
	value, err := result.Get()
	if err != nil {
		return err
	}
	*target = value
	return nil
}

func formatRGB(c Color) string {
	section := document.New("")
	entry.SetColor(section, "value", c.RGB())
	value, _ := section.Value("value")
	return value
}
