package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestExists(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/data/a.txt", []byte("a"), 0o600), ShouldBeNil)

		Convey("Existing files are reported", func() {
			So(Exists(fs, "/data/a.txt"), ShouldBeTrue)
			So(Exists(fs, "/data"), ShouldBeTrue)
		})

		Convey("Missing files are not", func() {
			So(Exists(fs, "/data/b.txt"), ShouldBeFalse)
		})
	})
}

func TestCopyFile(t *testing.T) {
	Convey("Given a source file", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/src/a.txt", []byte("alpha"), 0o600), ShouldBeNil)

		Convey("It is copied into a fresh directory", func() {
			So(CopyFile(fs, "/src/a.txt", "/dst/nested/a.txt"), ShouldBeNil)
			data, err := afero.ReadFile(fs, "/dst/nested/a.txt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "alpha")
		})

		Convey("An existing destination is replaced", func() {
			So(afero.WriteFile(fs, "/dst/a.txt", []byte("old and longer"), 0o600), ShouldBeNil)
			So(CopyFile(fs, "/src/a.txt", "/dst/a.txt"), ShouldBeNil)
			data, _ := afero.ReadFile(fs, "/dst/a.txt")
			So(string(data), ShouldEqual, "alpha")
		})

		Convey("A missing source fails", func() {
			So(CopyFile(fs, "/src/missing.txt", "/dst/b.txt"), ShouldNotBeNil)
		})
	})
}
