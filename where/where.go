// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/dmp-client/dmpcfg/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable used to override the configuration directory.
const EnvConfigPath = "DMPCFG_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the directory holding the tool's own configuration file.
// The path can be overridden with the DMPCFG_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Data resolves the directory holding the primary settings document and keypair.
func Data() string {
	if custom := viper.GetString(key.PathsData); custom != "" {
		return ensureDir(custom)
	}
	return ensureDir(filepath.Join(Config(), "Data"))
}

// Backup resolves the directory holding backup copies of everything in Data.
// It follows XDG_DATA_HOME so that wiping the config directory leaves the backups intact.
func Backup() string {
	if custom := viper.GetString(key.PathsBackup); custom != "" {
		return ensureDir(custom)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		base = filepath.Join(home, ".local", "share")
	}
	return ensureDir(filepath.Join(base, constant.App, "saves"))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Settings resolves the primary settings document.
func Settings() string {
	return filepath.Join(Data(), constant.SettingsFile)
}

// BackupSettings resolves the backup settings document.
func BackupSettings() string {
	return filepath.Join(Backup(), constant.SettingsFile)
}

// PublicKey resolves the primary public key file.
func PublicKey() string {
	return filepath.Join(Data(), constant.PublicKeyFile)
}

// PrivateKey resolves the primary private key file.
func PrivateKey() string {
	return filepath.Join(Data(), constant.PrivateKeyFile)
}
