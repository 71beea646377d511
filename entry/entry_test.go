package entry

import (
	"errors"
	"testing"

	"github.com/dmp-client/dmpcfg/document"
	. "github.com/smartystreets/goconvey/convey"
)

type toolbar int

func section(pairs ...string) *document.Node {
	n := document.New("SETTINGS")
	for i := 0; i+1 < len(pairs); i += 2 {
		n.AddValue(pairs[i], pairs[i+1])
	}
	return n
}

func TestInt(t *testing.T) {
	Convey("Int decoding", t, func() {
		Convey("Accepts plain integers", func() {
			So(Int(section("cacheSize", "250"), "cacheSize").MustGet(), ShouldEqual, 250)
			So(Int(section("cacheSize", "-3"), "cacheSize").MustGet(), ShouldEqual, -3)
		})

		Convey("Rejects partial or padded numbers", func() {
			for _, bad := range []string{"12abc", " 12", "1.5", "", "0x10"} {
				r := Int(section("cacheSize", bad), "cacheSize")
				So(r.IsError(), ShouldBeTrue)
				So(errors.Is(r.Error(), ErrMissing), ShouldBeTrue)
			}
		})

		Convey("Reports an absent key as missing", func() {
			r := Int(section(), "cacheSize")
			var decodeErr *DecodeError
			So(errors.As(r.Error(), &decodeErr), ShouldBeTrue)
			So(decodeErr.Absent, ShouldBeTrue)
		})

		Convey("Reports a nil section as missing", func() {
			So(errors.Is(Int(nil, "cacheSize").Error(), ErrMissing), ShouldBeTrue)
		})
	})
}

func TestBool(t *testing.T) {
	Convey("Bool decoding", t, func() {
		Convey("Accepts true and false in any case", func() {
			So(Bool(section("revert", "true"), "revert").MustGet(), ShouldBeTrue)
			So(Bool(section("revert", "False"), "revert").MustGet(), ShouldBeFalse)
			So(Bool(section("revert", "TRUE"), "revert").MustGet(), ShouldBeTrue)
		})

		Convey("Rejects other spellings", func() {
			for _, bad := range []string{"1", "t", "yes", "on", ""} {
				So(Bool(section("revert", bad), "revert").IsError(), ShouldBeTrue)
			}
		})
	})
}

func TestString(t *testing.T) {
	Convey("String decoding keeps empty values", t, func() {
		So(String(section("flag", ""), "flag").MustGet(), ShouldEqual, "")
		So(String(section(), "flag").IsError(), ShouldBeTrue)
	})
}

func TestColor(t *testing.T) {
	Convey("Color decoding", t, func() {
		Convey("Accepts three numbers with spacing", func() {
			rgb := Color(section("color", "-0.5, 1.5,0.3"), "color").MustGet()
			So(rgb, ShouldResemble, [3]float64{-0.5, 1.5, 0.3})
		})

		Convey("Rejects the wrong number of components", func() {
			So(Color(section("color", "0.1, 0.2"), "color").IsError(), ShouldBeTrue)
			So(Color(section("color", "0.1, 0.2, 0.3, 0.4"), "color").IsError(), ShouldBeTrue)
		})

		Convey("Rejects non-numeric components", func() {
			So(Color(section("color", "red, 0.2, 0.3"), "color").IsError(), ShouldBeTrue)
			So(Color(section("color", "NaN, 0.2, 0.3"), "color").IsError(), ShouldBeTrue)
		})
	})
}

func TestEnum(t *testing.T) {
	Convey("Enum decoding", t, func() {
		Convey("Accepts declared and undeclared values alike", func() {
			So(Enum[toolbar](section("toolbar", "2"), "toolbar").MustGet(), ShouldEqual, toolbar(2))
			So(Enum[toolbar](section("toolbar", "77"), "toolbar").MustGet(), ShouldEqual, toolbar(77))
		})

		Convey("Rejects values the type cannot hold", func() {
			So(Enum[uint8](section("toolbar", "300"), "toolbar").IsError(), ShouldBeTrue)
			So(Enum[uint8](section("toolbar", "-1"), "toolbar").IsError(), ShouldBeTrue)
		})

		Convey("Rejects text", func() {
			So(Enum[toolbar](section("toolbar", "auto"), "toolbar").IsError(), ShouldBeTrue)
		})
	})
}

func TestEncode(t *testing.T) {
	Convey("Encoded values decode back", t, func() {
		n := document.New("SETTINGS")
		SetInt(n, "cacheSize", 100)
		SetBool(n, "revert", false)
		SetString(n, "flag", "Squad/Flags/default")
		SetEnum(n, "toolbar", toolbar(3))
		SetColor(n, "color", [3]float64{0.1, 1, 0.333333333333})

		So(Int(n, "cacheSize").MustGet(), ShouldEqual, 100)
		So(Bool(n, "revert").MustGet(), ShouldBeFalse)
		So(String(n, "flag").MustGet(), ShouldEqual, "Squad/Flags/default")
		So(Enum[toolbar](n, "toolbar").MustGet(), ShouldEqual, toolbar(3))
		So(Color(n, "color").MustGet(), ShouldResemble, [3]float64{0.1, 1, 0.333333333333})

		raw, _ := n.Value("color")
		So(raw, ShouldEqual, "0.1, 1, 0.333333333333")
	})

	Convey("Strings with invalid UTF-8 are stored with replacement characters", t, func() {
		n := document.New("SETTINGS")
		SetString(n, "name", "bad\xffname")
		So(String(n, "name").MustGet(), ShouldEqual, "bad\uFFFDname")
	})

	Convey("Setting a key twice keeps one value", t, func() {
		n := document.New("SETTINGS")
		SetInt(n, "cacheSize", 1)
		SetInt(n, "cacheSize", 2)
		So(len(n.Values()), ShouldEqual, 1)
	})
}
