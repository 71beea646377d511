package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/dmp-client/dmpcfg/key"
	"github.com/dmp-client/dmpcfg/keypair"
	"github.com/dmp-client/dmpcfg/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name, field := range Default {
				So(viper.Get(name), ShouldEqual, field.Value)
			}
		})

		Convey("Should expose every field to the environment", func() {
			So(len(EnvExposed), ShouldEqual, len(Default))
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("settings.legacy_import"), ShouldEqual, "settings_legacy_import")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the keypair bits field", t, func() {
		field := Default[key.KeypairBits]

		Convey("Its env name is prefixed with the app name", func() {
			So(field.Env(), ShouldEqual, "DMPCFG_KEYPAIR_BITS")
		})

		Convey("Its pretty form mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.KeypairBits)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parsing command line values", t, func() {
		parse := func(k string, words ...string) (any, error) {
			field := Default[k]
			return field.Parse(words)
		}

		Convey("Keypair sizes below the minimum are rejected", func() {
			_, err := parse(key.KeypairBits, "1024")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.KeypairBits)

			v, err := parse(key.KeypairBits, "4096")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 4096)

			v, err = parse(key.KeypairBits, "2048")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, keypair.MinBits)
		})

		Convey("Non-numeric keypair sizes are rejected", func() {
			_, err := parse(key.KeypairBits, "big")
			So(err, ShouldNotBeNil)
		})

		Convey("Log levels must be known to the logger", func() {
			_, err := parse(key.LogsLevel, "loud")
			So(err, ShouldNotBeNil)

			v, err := parse(key.LogsLevel, "debug")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "debug")
		})

		Convey("Icon variants must exist", func() {
			_, err := parse(key.IconsVariant, "ascii")
			So(err, ShouldNotBeNil)

			v, err := parse(key.IconsVariant, "nerd")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "nerd")
		})

		Convey("Directories must be absolute or empty", func() {
			_, err := parse(key.PathsData, "relative/dir")
			So(err, ShouldNotBeNil)

			_, err = parse(key.PathsBackup, "")
			So(err, ShouldBeNil)

			v, err := parse(key.PathsData, "/srv/dmp")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "/srv/dmp")
		})

		Convey("Booleans are parsed strictly", func() {
			_, err := parse(key.SettingsLegacyImport, "maybe")
			So(err, ShouldNotBeNil)

			v, err := parse(key.SettingsLegacyImport, "false")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)
		})

		Convey("A missing value is an error", func() {
			_, err := parse(key.LogsWrite)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a custom config directory", t, func() {
		t.Setenv(where.EnvConfigPath, "/cfg")
		So(Setup(), ShouldBeNil)

		Convey("The data directory resolves to the settings document", func() {
			field := Default[key.PathsData]
			So(field.Resolve(), ShouldEqual, filepath.Join("/cfg", "Data", constant.SettingsFile))
		})

		Convey("The pretty form shows the resolved path", func() {
			field := Default[key.PathsData]
			So(field.Pretty(), ShouldContainSubstring, filepath.Join("/cfg", "Data", constant.SettingsFile))
		})

		Convey("The JSON form carries the resolved path", func() {
			field := Default[key.PathsData]
			data, err := json.Marshal(&field)
			So(err, ShouldBeNil)

			var out map[string]any
			So(json.Unmarshal(data, &out), ShouldBeNil)
			So(out["resolved"], ShouldEqual, filepath.Join("/cfg", "Data", constant.SettingsFile))
		})

		Convey("Fields without a location leave it out", func() {
			field := Default[key.CliColored]
			So(field.Pretty(), ShouldNotContainSubstring, "Path:")
		})
	})
}
