package keypair

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

type countingGenerator struct {
	calls int
	fail  bool
}

func (g *countingGenerator) Generate() (Pair, error) {
	if g.fail {
		return Pair{}, errors.New("no entropy")
	}
	g.calls++
	return Pair{
		Public:  fmt.Sprintf("public-%d", g.calls),
		Private: fmt.Sprintf("private-%d", g.calls),
	}, nil
}

var (
	primary = Files{Public: "/data/publickey.txt", Private: "/data/privatekey.txt"}
	backup  = Files{Public: "/saves/publickey.txt", Private: "/saves/privatekey.txt"}
)

func read(fs afero.Fs, path string) string {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return ""
	}
	return string(data)
}

func TestEnsure(t *testing.T) {
	Convey("Given no key files", t, func() {
		fs := afero.NewMemMapFs()
		gen := &countingGenerator{}
		m := NewManager(fs, primary, backup, gen)

		Convey("A keypair is generated and backed up", func() {
			pair, err := m.Ensure()
			So(err, ShouldBeNil)
			So(gen.calls, ShouldEqual, 1)
			So(pair.Public, ShouldEqual, "public-1")
			So(read(fs, primary.Private), ShouldEqual, "private-1")
			So(read(fs, backup.Public), ShouldEqual, "public-1")
			So(read(fs, backup.Private), ShouldEqual, "private-1")

			Convey("And a second call returns the same keys without generating", func() {
				again, err := m.Ensure()
				So(err, ShouldBeNil)
				So(again, ShouldResemble, pair)
				So(gen.calls, ShouldEqual, 1)
			})
		})

		Convey("A generator failure is reported", func() {
			gen.fail = true
			_, err := m.Ensure()
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given only a backup pair", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, backup.Public, []byte("saved-public"), 0o600), ShouldBeNil)
		So(afero.WriteFile(fs, backup.Private, []byte("saved-private"), 0o600), ShouldBeNil)
		gen := &countingGenerator{}

		Convey("The primary pair is restored from it", func() {
			pair, err := NewManager(fs, primary, backup, gen).Ensure()
			So(err, ShouldBeNil)
			So(pair, ShouldResemble, Pair{Public: "saved-public", Private: "saved-private"})
			So(read(fs, primary.Public), ShouldEqual, "saved-public")
			So(gen.calls, ShouldEqual, 0)
		})

		Convey("A lone primary file is replaced by the backup", func() {
			So(afero.WriteFile(fs, primary.Public, []byte("stray"), 0o600), ShouldBeNil)
			pair, err := NewManager(fs, primary, backup, gen).Ensure()
			So(err, ShouldBeNil)
			So(pair.Public, ShouldEqual, "saved-public")
		})
	})

	Convey("Given only a primary pair", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, primary.Public, []byte("pub"), 0o600), ShouldBeNil)
		So(afero.WriteFile(fs, primary.Private, []byte("priv"), 0o600), ShouldBeNil)

		Convey("It is loaded as-is and copied to the backup", func() {
			pair, err := NewManager(fs, primary, backup, &countingGenerator{}).Ensure()
			So(err, ShouldBeNil)
			So(pair, ShouldResemble, Pair{Public: "pub", Private: "priv"})
			So(read(fs, backup.Private), ShouldEqual, "priv")
		})
	})

	Convey("Given an empty primary private key", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, primary.Public, []byte("pub"), 0o600), ShouldBeNil)
		So(afero.WriteFile(fs, primary.Private, []byte("  \n"), 0o600), ShouldBeNil)
		gen := &countingGenerator{}

		Convey("A readable backup is restored instead of generating", func() {
			So(afero.WriteFile(fs, backup.Public, []byte("saved-public"), 0o600), ShouldBeNil)
			So(afero.WriteFile(fs, backup.Private, []byte("saved-private"), 0o600), ShouldBeNil)

			pair, err := NewManager(fs, primary, backup, gen).Ensure()
			So(err, ShouldBeNil)
			So(pair.Private, ShouldEqual, "saved-private")
			So(read(fs, primary.Private), ShouldEqual, "saved-private")
			So(gen.calls, ShouldEqual, 0)
		})

		Convey("Without a backup a fresh pair replaces both copies", func() {
			pair, err := NewManager(fs, primary, backup, gen).Ensure()
			So(err, ShouldBeNil)
			So(gen.calls, ShouldEqual, 1)
			So(read(fs, primary.Private), ShouldEqual, pair.Private)
			So(read(fs, backup.Private), ShouldEqual, pair.Private)
		})
	})
}

func TestRSAGenerator(t *testing.T) {
	Convey("Given a generator asking for a weak modulus", t, func() {
		pair, err := RSAGenerator{Bits: 512}.Generate()
		So(err, ShouldBeNil)

		Convey("The private key is PKCS#1 PEM of at least MinBits", func() {
			block, _ := pem.Decode([]byte(pair.Private))
			So(block, ShouldNotBeNil)
			So(block.Type, ShouldEqual, "RSA PRIVATE KEY")
			key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			So(err, ShouldBeNil)
			So(key.N.BitLen(), ShouldBeGreaterThanOrEqualTo, MinBits)
		})

		Convey("The public key is PKIX PEM", func() {
			block, _ := pem.Decode([]byte(pair.Public))
			So(block, ShouldNotBeNil)
			So(block.Type, ShouldEqual, "PUBLIC KEY")
			_, err := x509.ParsePKIXPublicKey(block.Bytes)
			So(err, ShouldBeNil)
		})

		Convey("The fingerprint is stable", func() {
			So(pair.Fingerprint(), ShouldEqual, pair.Fingerprint())
			So(len(pair.Fingerprint()), ShouldEqual, 64)
		})
	})
}
