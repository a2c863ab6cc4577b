package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/plk-schedule/internal/snapshot"
)

// encoder keeps non-ASCII team names and "<>&" as-is.
var encoder = sonic.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// Storage handles persistence of snapshots
type Storage struct {
	path string
}

// New creates a Storage writing to path. A leading "~/" is expanded to the home
// directory and missing parent directories are created.
func New(path string) (*Storage, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "getting home directory")
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	return &Storage{path: path}, nil
}

// Path returns the resolved output path.
func (s *Storage) Path() string {
	return s.path
}

// Encode renders snap as two-space indented JSON with a trailing newline.
func Encode(snap *snapshot.Snapshot) ([]byte, error) {
	data, err := encoder.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}
	return append(data, '\n'), nil
}

// SaveSnapshot writes snap to the storage path.
func (s *Storage) SaveSnapshot(snap *snapshot.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	return writeFile(s.path, data)
}

// WriteFile atomically writes data next to the snapshot, e.g. a calendar export.
func (s *Storage) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	return writeFile(path, data)
}

// LoadSnapshot reads a snapshot previously written by SaveSnapshot.
func (s *Storage) LoadSnapshot() (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}

	var snap snapshot.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	return &snap, nil
}

func writeFile(path string, data []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}
