// Package file implements the entity repositories as one JSON document per
// entity on local disk. Writes are whole-file replacements staged through a
// temp file and an atomic rename, so a crash mid-write never leaves a
// half-written document behind.
package file

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/eugenekweb/micartera/internal/domain"
)

func encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &domain.StorageError{Op: "create temp", Path: dir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.StorageError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
