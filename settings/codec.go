package settings

import (
	"errors"
	"strconv"

	"github.com/dmp-client/dmpcfg/document"
	"github.com/dmp-client/dmpcfg/entry"
	"github.com/dmp-client/dmpcfg/log"
	"github.com/samber/mo"
)

// Document layout.
const (
	sectionSettings = "SETTINGS"
	sectionPlayer   = "PLAYER"
	sectionBindings = "KEYBINDINGS"
	sectionServers  = "SERVERS"
	nodeServer      = "SERVER"

	keyName        = "name"
	keyColor       = "color"
	keyFlag        = "flag"
	keyChat        = "chat"
	keyScreenshot  = "screenshot"
	keyCacheSize   = "cacheSize"
	keyDisclaimer  = "disclaimer"
	keyCompression = "compression"
	keyRevert      = "revert"
	keyToolbar     = "toolbar"
	keyAddress     = "address"
	keyPort        = "port"
)

var (
	errEmpty    = errors.New("must not be empty")
	errNegative = errors.New("must not be negative")
)

// initialDocument is what a first run writes before any field is parsed.
// Fields it lacks are defaulted by the first load, which then resaves.
func initialDocument() *document.Node {
	root := document.New("")
	settings := root.AddNode(sectionSettings)
	entry.SetInt(settings, keyCacheSize, DefaultCacheSize)
	entry.SetString(settings.AddNode(sectionPlayer), keyName, DefaultPlayerName)
	settings.AddNode(sectionBindings)
	settings.AddNode(sectionServers)
	return root
}

// decode unwraps result, or records field as defaulted and returns fallback.
func decode[T any](report *Report, field string, result mo.Result[T], fallback T) T {
	value, err := result.Get()
	if err == nil {
		return value
	}

	log.Debugf("defaulting %s: %v", field, err)
	report.defaulted(field)
	return fallback
}

func nonEmpty(key string) func(string) mo.Result[string] {
	return func(s string) mo.Result[string] {
		if s == "" {
			return entry.Invalid[string](key, s, errEmpty)
		}
		return mo.Ok(s)
	}
}

func nonNegative(key string) func(int) mo.Result[int] {
	return func(n int) mo.Result[int] {
		if n < 0 {
			return entry.Invalid[int](key, strconv.Itoa(n), errNegative)
		}
		return mo.Ok(n)
	}
}

func (m *Manager) parse(root *document.Node, report *Report) *Settings {
	settings := root.Node(sectionSettings)
	player := settings.Node(sectionPlayer)
	bindings := settings.Node(sectionBindings)

	s := &Settings{}

	s.PlayerName = decode(report, FieldPlayerName,
		entry.String(player, keyName).FlatMap(nonEmpty(keyName)),
		DefaultPlayerName)

	s.CacheSize = decode(report, FieldCacheSize,
		entry.Int(settings, keyCacheSize).FlatMap(nonNegative(keyCacheSize)),
		DefaultCacheSize)

	s.DisclaimerAccepted = decode(report, FieldDisclaimer, entry.Int(settings, keyDisclaimer), DefaultDisclaimer)

	// The UI only redraws the color when it differs from what was stored.
	if rgb, err := entry.Color(player, keyColor).Get(); err == nil {
		s.PlayerColor = ColorFromRGB(rgb).Clamp()
		report.RefreshColor = s.PlayerColor != ColorFromRGB(rgb)
	} else {
		log.Debugf("defaulting %s: %v", FieldPlayerColor, err)
		report.defaulted(FieldPlayerColor)
		s.PlayerColor = m.color().Clamp()
		report.RefreshColor = true
	}

	s.SelectedFlag = decode(report, FieldFlag, entry.String(player, keyFlag), DefaultFlag)
	s.ChatKey = decode(report, FieldChatKey, entry.Enum[KeyCode](bindings, keyChat), DefaultChatKey)
	s.ScreenshotKey = decode(report, FieldScreenshotKey, entry.Enum[KeyCode](bindings, keyScreenshot), DefaultScreenshot)
	s.CompressionEnabled = decode(report, FieldCompression, entry.Bool(settings, keyCompression), DefaultCompression)
	s.RevertEnabled = decode(report, FieldRevert, entry.Bool(settings, keyRevert), DefaultRevert)
	s.ToolbarType = decode(report, FieldToolbar, entry.Enum[ToolbarType](settings, keyToolbar), DefaultToolbar)

	s.Servers = parseServers(settings.Node(sectionServers))

	return s
}

// parseServers reads every SERVER entry in order. A port that does not parse becomes 0.
func parseServers(section *document.Node) []ServerEntry {
	nodes := section.Nodes(nodeServer)
	servers := make([]ServerEntry, 0, len(nodes))

	for _, node := range nodes {
		server := ServerEntry{
			Name:    entry.String(node, keyName).OrEmpty(),
			Address: entry.String(node, keyAddress).OrEmpty(),
		}

		port, err := entry.Int(node, keyPort).Get()
		if err != nil {
			log.Debugf("server %q has no usable port: %v", server.Name, err)
		}
		server.Port = port

		servers = append(servers, server)
	}

	return servers
}

// encode builds a complete document from s. The keypair is stored separately.
func encode(s *Settings) *document.Node {
	root := document.New("")
	settings := root.AddNode(sectionSettings)

	player := settings.AddNode(sectionPlayer)
	entry.SetString(player, keyName, s.PlayerName)
	entry.SetColor(player, keyColor, s.PlayerColor.RGB())
	entry.SetString(player, keyFlag, s.SelectedFlag)

	bindings := settings.AddNode(sectionBindings)
	entry.SetEnum(bindings, keyChat, s.ChatKey)
	entry.SetEnum(bindings, keyScreenshot, s.ScreenshotKey)

	entry.SetInt(settings, keyCacheSize, s.CacheSize)
	entry.SetInt(settings, keyDisclaimer, s.DisclaimerAccepted)
	entry.SetBool(settings, keyCompression, s.CompressionEnabled)
	entry.SetBool(settings, keyRevert, s.RevertEnabled)
	entry.SetEnum(settings, keyToolbar, s.ToolbarType)

	servers := settings.AddNode(sectionServers)
	for _, server := range s.Servers {
		node := servers.AddNode(nodeServer)
		entry.SetString(node, keyName, server.Name)
		entry.SetString(node, keyAddress, server.Address)
		entry.SetInt(node, keyPort, server.Port)
	}

	return root
}
