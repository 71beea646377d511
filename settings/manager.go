package settings

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/document"
	"github.com/dmp-client/dmpcfg/keypair"
	"github.com/dmp-client/dmpcfg/legacy"
	"github.com/dmp-client/dmpcfg/log"
	"github.com/spf13/afero"
)

// Paths locates every file a Manager touches.
type Paths struct {
	Document       string
	BackupDocument string
	Legacy         string
	BackupLegacy   string
	Keys           keypair.Files
	BackupKeys     keypair.Files
}

// PathsIn lays out the standard file names under a data directory and a backup directory.
func PathsIn(data, backup string) Paths {
	return Paths{
		Document:       filepath.Join(data, constant.SettingsFile),
		BackupDocument: filepath.Join(backup, constant.SettingsFile),
		Legacy:         filepath.Join(data, constant.LegacySettingsFile),
		BackupLegacy:   filepath.Join(backup, constant.LegacySettingsFile),
		Keys: keypair.Files{
			Public:  filepath.Join(data, constant.PublicKeyFile),
			Private: filepath.Join(data, constant.PrivateKeyFile),
		},
		BackupKeys: keypair.Files{
			Public:  filepath.Join(backup, constant.PublicKeyFile),
			Private: filepath.Join(backup, constant.PrivateKeyFile),
		},
	}
}

// Manager loads and saves settings for one set of Paths.
// Load and Save are not safe for concurrent use.
type Manager struct {
	fs     afero.Fs
	store  *document.Store
	keys   *keypair.Manager
	paths  Paths
	color  func() Color
	legacy bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithColorSource replaces RandomColor as the source of a missing player color.
func WithColorSource(source func() Color) Option {
	return func(m *Manager) {
		m.color = source
	}
}

// WithLegacyImport toggles importing a legacy XML file when no current document exists.
func WithLegacyImport(enabled bool) Option {
	return func(m *Manager) {
		m.legacy = enabled
	}
}

// NewManager returns a Manager storing files on fs and generating keypairs with gen.
func NewManager(fs afero.Fs, paths Paths, gen keypair.Generator, opts ...Option) *Manager {
	m := &Manager{
		fs:     fs,
		store:  document.NewStore(fs),
		keys:   keypair.NewManager(fs, paths.Keys, paths.BackupKeys, gen),
		paths:  paths,
		color:  RandomColor,
		legacy: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Paths returns the file layout of the manager.
func (m *Manager) Paths() Paths {
	return m.paths
}

// Load returns usable settings together with a report of the repairs it made.
//
// Files are restored from their backups, created, or rewritten as needed.
// Failures are recorded in the report and never stop the load: in the worst
// case the returned settings hold the defaults.
func (m *Manager) Load() (*Settings, *Report) {
	report := &Report{Strategy: m.strategy()}

	var root *document.Node
	if report.Strategy == LegacyImport {
		root = m.importLegacy(report)
		if root == nil {
			report.Strategy = Current
		}
	}
	if report.Strategy == Current {
		root = m.loadCurrent(report)
	}

	var s *Settings
	if root != nil {
		s = m.parse(root, report)
	} else {
		defaults := Defaults(m.color().Clamp())
		s = &defaults
		report.RefreshColor = true
	}

	pair, err := m.keys.Ensure()
	if err != nil {
		log.Error(err)
		report.fail(fmt.Errorf("keypair: %w", err))
	}
	s.PublicKey, s.PrivateKey = pair.Public, pair.Private

	if root != nil && (report.Dirty() || report.Strategy == LegacyImport) {
		if err := m.Save(s); err != nil {
			log.Error(err)
			report.fail(err)
		} else {
			report.Resaved = true
		}
	}

	return s, report
}

// Save writes s as a fresh document to the primary location and refreshes the backup copy.
func (m *Manager) Save(s *Settings) error {
	if err := m.store.Save(encode(s), m.paths.Document); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := m.store.Copy(m.paths.Document, m.paths.BackupDocument, true); err != nil {
		return fmt.Errorf("back up settings: %w", err)
	}

	return nil
}

func (m *Manager) strategy() Strategy {
	if !m.legacy {
		return Current
	}

	if m.store.Exists(m.paths.Document) || m.store.Exists(m.paths.BackupDocument) {
		return Current
	}

	if legacy.Exists(m.fs, m.paths.Legacy) || legacy.Exists(m.fs, m.paths.BackupLegacy) {
		return LegacyImport
	}

	return Current
}

func (m *Manager) importLegacy(report *Report) *document.Node {
	for _, path := range []string{m.paths.Legacy, m.paths.BackupLegacy} {
		if !legacy.Exists(m.fs, path) {
			continue
		}

		root, err := legacy.Read(m.fs, path)
		if err != nil {
			log.Warnf("could not import legacy settings: %v", err)
			report.fail(err)
			continue
		}

		log.Infof("importing legacy settings from %s", path)
		return root
	}

	return nil
}

func (m *Manager) loadCurrent(report *Report) *document.Node {
	p := m.paths

	if !m.store.Exists(p.Document) && m.store.Exists(p.BackupDocument) {
		log.Info("restoring backed up settings file")
		if err := m.store.Copy(p.BackupDocument, p.Document, false); err != nil {
			report.fail(err)
		} else {
			report.Restored = true
		}
	}

	if !m.store.Exists(p.Document) {
		log.Info("creating new settings file")
		if err := m.store.Save(initialDocument(), p.Document); err != nil {
			log.Error(err)
			report.fail(err)
			return nil
		}
		report.Created = true
	}

	if !m.store.Exists(p.BackupDocument) {
		log.Info("backing up settings file")
		if err := m.store.Copy(p.Document, p.BackupDocument, false); err != nil {
			report.fail(err)
		} else {
			report.BackedUp = true
		}
	}

	root, err := m.store.Load(p.Document)
	if err == nil {
		return root
	}
	report.fail(err)

	var parseErr *document.ParseError
	if !errors.As(err, &parseErr) {
		log.Error(err)
		return nil
	}

	backup, backupErr := m.store.Load(p.BackupDocument)
	if backupErr != nil {
		log.Errorf("settings file and its backup are unusable, using defaults: %v", err)
		report.fail(backupErr)
		return nil
	}

	log.Warnf("settings file is corrupt, restoring backup: %v", err)
	if err := m.store.Copy(p.BackupDocument, p.Document, true); err != nil {
		report.fail(err)
	} else {
		report.Restored = true
	}

	return backup
}
