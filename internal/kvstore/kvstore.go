// Package kvstore persists a single JSON document per store file. Each Save
// rewrites the whole file; callers doing read-modify-write cycles must hold
// their own lock around Load+Save. Two processes racing on the same path
// still end up last-write-wins — an accepted limitation of the flat-file
// format.
package kvstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Load decodes the store file into v. A missing or empty file is not an
// error; v is left untouched.
func (s *Store) Load(v any) error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	dec := json.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s: %w", s.path, err)
	}
	return nil
}

// Save replaces the file contents with the encoding of v. The new document
// is written to a temp file in the same directory and renamed over the old
// one, so a crash before the write completes leaves the previous contents
// intact.
func (s *Store) Save(v any) error {
	f, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
