package cmd

import (
	"testing"

	"github.com/dmp-client/dmpcfg/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrUnknownKey(t *testing.T) {
	Convey("An unknown config key suggests the closest one", t, func() {
		So(errUnknownKey("keypair.bit").Error(), ShouldContainSubstring, key.KeypairBits)
	})
}
