package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoValue is returned by Get when the key was never written.
var ErrNoValue = errors.New("no value for key")

// Store is a small durable key/value store, one file per key under a
// single directory. It is the session's analog of browser local
// storage: last write wins, no versioning, no migration.
type Store struct {
	fs  afero.Fs
	dir string
}

func New(fsys afero.Fs, dir string) (Store, error) {
	const op = "localstore.New"

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return Store{}, fmt.Errorf("%s: %w", op, err)
	}
	return Store{fs: fsys, dir: dir}, nil
}

func (s Store) Get(key string) ([]byte, error) {
	const op = "Store.Get"

	b, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w: %q", op, ErrNoValue, key)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s Store) Set(key string, value []byte) error {
	const op = "Store.Set"

	err := afero.WriteFile(s.fs, s.path(key), value, 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Append adds a line to the value under key, creating it if absent.
func (s Store) Append(key string, line []byte) error {
	const op = "Store.Append"

	f, err := s.fs.OpenFile(
		s.path(key), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) Remove(key string) error {
	const op = "Store.Remove"

	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
