package document

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func sample() *Node {
	root := New("")
	settings := root.AddNode("SETTINGS")
	settings.AddValue("cacheSize", "100")
	settings.AddValue("compression", "true")

	player := settings.AddNode("PLAYER")
	player.AddValue("name", `Jeb "the brave"`)

	settings.AddNode("KEYBINDINGS")

	servers := settings.AddNode("SERVERS")
	for _, name := range []string{"zulu", "alpha", "mike"} {
		server := servers.AddNode("SERVER")
		server.AddValue("name", name)
		server.AddValue("port", "6702")
	}

	return root
}

func TestNode(t *testing.T) {
	Convey("Given a section tree", t, func() {
		root := sample()
		settings := root.Node("SETTINGS")

		Convey("Values are found by key", func() {
			v, ok := settings.Value("cacheSize")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "100")
		})

		Convey("Repeated children keep their order", func() {
			servers := settings.Node("SERVERS").Nodes("SERVER")
			So(len(servers), ShouldEqual, 3)
			name, _ := servers[0].Value("name")
			So(name, ShouldEqual, "zulu")
		})

		Convey("SetValue replaces instead of appending", func() {
			settings.SetValue("cacheSize", "5")
			settings.SetValue("revert", "false")
			v, _ := settings.Value("cacheSize")
			So(v, ShouldEqual, "5")
			So(len(settings.Values()), ShouldEqual, 3)
		})

		Convey("Lookups through missing sections report absence", func() {
			missing := root.Node("NOPE").Node("DEEPER")
			So(missing, ShouldBeNil)
			_, ok := missing.Value("anything")
			So(ok, ShouldBeFalse)
			So(missing.Nodes("SERVER"), ShouldBeEmpty)
			So(missing.HasNode("SERVER"), ShouldBeFalse)
		})
	})
}

func TestTOML(t *testing.T) {
	Convey("Given a marshalled document", t, func() {
		data, err := Marshal(sample())
		So(err, ShouldBeNil)

		Convey("It unmarshals into the same tree", func() {
			root, err := Unmarshal(data)
			So(err, ShouldBeNil)

			settings := root.Node("SETTINGS")
			name, ok := settings.Node("PLAYER").Value("name")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, `Jeb "the brave"`)

			servers := settings.Node("SERVERS").Nodes("SERVER")
			So(len(servers), ShouldEqual, 3)
			names := make([]string, 0, len(servers))
			for _, s := range servers {
				n, _ := s.Value("name")
				names = append(names, n)
			}
			So(names, ShouldResemble, []string{"zulu", "alpha", "mike"})
		})
	})

	Convey("Given hand-written TOML with native scalars", t, func() {
		root, err := Unmarshal([]byte(`
[SETTINGS]
cacheSize = 250
compression = false

[SETTINGS.SERVERS.SERVER]
name = "solo"
port = 6702
`))
		So(err, ShouldBeNil)

		Convey("Scalars are kept in textual form", func() {
			settings := root.Node("SETTINGS")
			v, _ := settings.Value("cacheSize")
			So(v, ShouldEqual, "250")
			b, _ := settings.Value("compression")
			So(b, ShouldEqual, "false")
		})

		Convey("A single table is one child", func() {
			servers := root.Node("SETTINGS").Node("SERVERS").Nodes("SERVER")
			So(len(servers), ShouldEqual, 1)
			port, _ := servers[0].Value("port")
			So(port, ShouldEqual, "6702")
		})
	})

	Convey("A section using one name for a value and a child cannot be encoded", t, func() {
		root := New("")
		root.AddValue("SETTINGS", "x")
		root.AddNode("SETTINGS")
		_, err := Marshal(root)
		So(errors.Is(err, ErrNameClash), ShouldBeTrue)
	})
}

func TestStore(t *testing.T) {
	Convey("Given a store on an empty filesystem", t, func() {
		fs := afero.NewMemMapFs()
		store := NewStore(fs)

		Convey("Loading a missing path fails with ErrNotFound", func() {
			_, err := store.Load("/data/settings.toml")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Loading a malformed file fails with a ParseError", func() {
			So(afero.WriteFile(fs, "/data/settings.toml", []byte("[SETTINGS\ncacheSize = "), 0o600), ShouldBeNil)
			_, err := store.Load("/data/settings.toml")
			var parseErr *ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
			So(parseErr.Path, ShouldEqual, "/data/settings.toml")
		})

		Convey("When a document is saved", func() {
			So(store.Save(sample(), "/data/settings.toml"), ShouldBeNil)

			Convey("It exists and no temporary file is left behind", func() {
				So(store.Exists("/data/settings.toml"), ShouldBeTrue)
				So(store.Exists("/data/settings.toml.tmp"), ShouldBeFalse)
			})

			Convey("It loads back", func() {
				root, err := store.Load("/data/settings.toml")
				So(err, ShouldBeNil)
				So(root.Node("SETTINGS").HasNode("PLAYER"), ShouldBeTrue)
			})

			Convey("A non-overwriting copy creates a missing destination", func() {
				So(store.Copy("/data/settings.toml", "/backup/settings.toml", false), ShouldBeNil)
				So(store.Exists("/backup/settings.toml"), ShouldBeTrue)
			})

			Convey("A non-overwriting copy keeps an existing destination", func() {
				So(afero.WriteFile(fs, "/backup/settings.toml", []byte("# keep"), 0o600), ShouldBeNil)
				err := store.Copy("/data/settings.toml", "/backup/settings.toml", false)
				So(errors.Is(err, ErrExists), ShouldBeTrue)
				data, _ := afero.ReadFile(fs, "/backup/settings.toml")
				So(string(data), ShouldEqual, "# keep")
			})

			Convey("An overwriting copy replaces the destination", func() {
				So(afero.WriteFile(fs, "/backup/settings.toml", []byte("# old"), 0o600), ShouldBeNil)
				So(store.Copy("/data/settings.toml", "/backup/settings.toml", true), ShouldBeNil)
				_, err := store.Load("/backup/settings.toml")
				So(err, ShouldBeNil)
			})
		})

		Convey("A document that would not load back is not written", func() {
			So(store.Save(sample(), "/data/settings.toml"), ShouldBeNil)
			before, _ := afero.ReadFile(fs, "/data/settings.toml")

			root := New("")
			root.AddNode("SETTINGS").AddNode("PLAYER").AddValue("name", "bad\xffname")

			So(store.Save(root, "/data/settings.toml"), ShouldNotBeNil)
			after, _ := afero.ReadFile(fs, "/data/settings.toml")
			So(string(after), ShouldEqual, string(before))
			So(store.Exists("/data/settings.toml.tmp"), ShouldBeFalse)
		})

		Convey("Copying a missing source fails with ErrNotFound", func() {
			err := store.Copy("/data/none.toml", "/backup/none.toml", true)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}
