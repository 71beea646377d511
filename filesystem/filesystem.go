// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library to allow seamless switching between OS-level and in-memory filesystem backends.
package filesystem

import (
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs installs a volatile in-memory backend for unit tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Exists reports whether path names an existing file or directory on fs.
// Stat errors other than "not exist" are reported as absent.
func Exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return ok && err == nil
}

// CopyFile duplicates src into dst, replacing dst and creating its parent directories.
func CopyFile(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return err
	}

	return afero.WriteFile(fs, dst, data, 0o600)
}
