package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmp-client/dmpcfg/filesystem"
	"github.com/spf13/afero"
)

// Store reads and writes documents on a filesystem.
// Files are opened, used and closed within a single call.
type Store struct {
	fs afero.Afero
}

// NewStore returns a Store backed by fs.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: afero.Afero{Fs: fs}}
}

// Exists reports whether a file is present at path.
func (s *Store) Exists(path string) bool {
	return filesystem.Exists(s.fs, path)
}

// Load reads and parses the document at path.
// It fails with ErrNotFound when the file is absent and with a *ParseError when it is malformed.
func (s *Store) Load(path string) (*Node, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	root, err := Unmarshal(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return root, nil
}

// Save writes root to path, creating parent directories as needed.
// The content goes to a temporary sibling first and is renamed into place.
// Content that would not load back is rejected and path is left untouched.
func (s *Store) Save(root *Node, path string) error {
	data, err := Marshal(root)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if _, err := Unmarshal(data); err != nil {
		return fmt.Errorf("encode %s: unreadable result: %w", path, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	return nil
}

// Copy duplicates the file at src into dst.
// Without overwrite, an existing dst is left untouched and ErrExists is returned.
func (s *Store) Copy(src, dst string, overwrite bool) error {
	if !overwrite && s.Exists(dst) {
		return fmt.Errorf("%w: %s", ErrExists, dst)
	}

	if err := filesystem.CopyFile(s.fs, src, dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, src)
		}
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	return nil
}
