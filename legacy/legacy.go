// Package legacy reads the XML settings file written by older releases.
//
// It is a read-only import path. The XML attributes are translated into a
// document laid out like the current settings format, so the regular field
// parsing (and its defaults) applies to imported values unchanged.
package legacy

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmp-client/dmpcfg/document"
	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/spf13/afero"
	"gopkg.in/xmlpath.v2"
)

// ErrNotFound indicates no legacy file exists at the given path.
var ErrNotFound = errors.New("legacy settings not found")

// attribute maps one /settings/global attribute onto a section and key of the current layout.
type attribute struct {
	path    *xmlpath.Path
	section []string
	key     string
}

func global(name string, key string, section ...string) attribute {
	return attribute{
		path:    xmlpath.MustCompile("/settings/global/@" + name),
		section: section,
		key:     key,
	}
}

var attributes = []attribute{
	global("username", "name", "PLAYER"),
	global("cache-size", "cacheSize"),
	global("disclaimer", "disclaimer"),
	global("player-color", "color", "PLAYER"),
	global("chat-key", "chat", "KEYBINDINGS"),
	global("screenshot-key", "screenshot", "KEYBINDINGS"),
	global("selected-flag", "flag", "PLAYER"),
	global("compression", "compression"),
	global("revert", "revert"),
	global("toolbar", "toolbar"),
}

var (
	serverPath  = xmlpath.MustCompile("/settings/servers/server")
	serverAttrs = []struct {
		path *xmlpath.Path
		key  string
	}{
		{xmlpath.MustCompile("@name"), "name"},
		{xmlpath.MustCompile("@address"), "address"},
		{xmlpath.MustCompile("@port"), "port"},
	}
)

// Exists reports whether a legacy file is present at path.
func Exists(fs afero.Fs, path string) bool {
	return filesystem.Exists(fs, path)
}

// Read parses the legacy XML file at path into a root document holding a SETTINGS section.
// Attributes missing from the XML are left out of the result.
func Read(fs afero.Fs, path string) (*document.Node, error) {
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	xml, err := xmlpath.Parse(f)
	if err != nil {
		return nil, &document.ParseError{Path: path, Err: err}
	}

	root := document.New("")
	settings := root.AddNode("SETTINGS")

	for _, attr := range attributes {
		value, ok := attr.path.String(xml)
		if !ok {
			continue
		}

		target := settings
		for _, name := range attr.section {
			next := target.Node(name)
			if next == nil {
				next = target.AddNode(name)
			}
			target = next
		}
		target.AddValue(attr.key, value)
	}

	servers := settings.AddNode("SERVERS")
	for iter := serverPath.Iter(xml); iter.Next(); {
		node := iter.Node()
		server := servers.AddNode("SERVER")
		for _, attr := range serverAttrs {
			if value, ok := attr.path.String(node); ok {
				server.AddValue(attr.key, value)
			}
		}
	}

	return root, nil
}
