// Package keypair keeps the player's identity keypair on disk together with a backup pair.
//
// The keypair is identity material: once written it is reused as-is, and a
// new one is only generated when neither the primary nor the backup pair can
// be read. The key text is never validated beyond being non-empty.
package keypair

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/dmp-client/dmpcfg/log"
	"github.com/spf13/afero"
)

// ErrUnreadable indicates a key file that exists but holds no key text.
var ErrUnreadable = errors.New("key file is empty")

// Pair is the textual public and private key.
type Pair struct {
	Public  string
	Private string
}

// Fingerprint returns the hex SHA-256 of the public key text.
func (p Pair) Fingerprint() string {
	sum := sha256.Sum256([]byte(p.Public))
	return hex.EncodeToString(sum[:])
}

// Files locates one copy of the keypair.
type Files struct {
	Public  string
	Private string
}

// Manager ensures a readable keypair exists at the primary location and that a backup copy of it exists.
type Manager struct {
	fs      afero.Afero
	primary Files
	backup  Files
	gen     Generator
}

// NewManager returns a Manager working on fs.
func NewManager(fs afero.Fs, primary, backup Files, gen Generator) *Manager {
	return &Manager{
		fs:      afero.Afero{Fs: fs},
		primary: primary,
		backup:  backup,
		gen:     gen,
	}
}

// Ensure returns the player's keypair, restoring or generating it as needed.
//
// Any failure while restoring, reading or backing up ends in a freshly
// generated pair followed by a backup refresh. An error is returned only when
// that last resort fails too.
func (m *Manager) Ensure() (Pair, error) {
	pair, err := m.ensure()
	if err == nil {
		return pair, nil
	}

	log.Warnf("error processing keypair, creating new keypair: %v", err)
	pair, err = m.generate()
	if err != nil {
		return Pair{}, err
	}

	log.Info("backing up keypair")
	if err := m.copy(m.primary, m.backup); err != nil {
		return pair, fmt.Errorf("back up keypair: %w", err)
	}

	return pair, nil
}

func (m *Manager) ensure() (Pair, error) {
	if m.complete(m.backup) && !m.complete(m.primary) {
		log.Info("restoring backed up keypair")
		if err := m.copy(m.backup, m.primary); err != nil {
			return Pair{}, err
		}
	}

	var pair Pair
	if m.complete(m.primary) {
		loaded, err := m.read(m.primary)
		if err != nil {
			backup, backupErr := m.read(m.backup)
			if backupErr != nil {
				return Pair{}, err
			}

			log.Warnf("primary keypair unreadable, restoring backup: %v", err)
			if err := m.copy(m.backup, m.primary); err != nil {
				return Pair{}, err
			}
			loaded = backup
		}
		pair = loaded
	} else {
		log.Info("creating new keypair")
		generated, err := m.generate()
		if err != nil {
			return Pair{}, err
		}
		pair = generated
	}

	if !m.complete(m.backup) {
		log.Info("backing up keypair")
		if err := m.copy(m.primary, m.backup); err != nil {
			return Pair{}, err
		}
	}

	return pair, nil
}

func (m *Manager) complete(files Files) bool {
	return filesystem.Exists(m.fs, files.Public) && filesystem.Exists(m.fs, files.Private)
}

func (m *Manager) read(files Files) (Pair, error) {
	public, err := m.readKey(files.Public)
	if err != nil {
		return Pair{}, err
	}

	private, err := m.readKey(files.Private)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Public: public, Private: private}, nil
}

func (m *Manager) readKey(path string) (string, error) {
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: %s", ErrUnreadable, path)
	}
	return string(data), nil
}

func (m *Manager) generate() (Pair, error) {
	pair, err := m.gen.Generate()
	if err != nil {
		return Pair{}, err
	}

	if err := m.fs.MkdirAll(filepath.Dir(m.primary.Public), 0o700); err != nil {
		return Pair{}, err
	}
	if err := m.fs.MkdirAll(filepath.Dir(m.primary.Private), 0o700); err != nil {
		return Pair{}, err
	}

	if err := m.fs.WriteFile(m.primary.Public, []byte(pair.Public), 0o644); err != nil {
		return Pair{}, fmt.Errorf("failed to write public key at %s: %w", m.primary.Public, err)
	}
	if err := m.fs.WriteFile(m.primary.Private, []byte(pair.Private), 0o600); err != nil {
		return Pair{}, fmt.Errorf("failed to write private key at %s: %w", m.primary.Private, err)
	}

	return pair, nil
}

func (m *Manager) copy(from, to Files) error {
	if err := filesystem.CopyFile(m.fs, from.Public, to.Public); err != nil {
		return err
	}
	return filesystem.CopyFile(m.fs, from.Private, to.Private)
}
