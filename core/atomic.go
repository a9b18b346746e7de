package core

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// CreateFile opens path for writing, creating parent directories on demand
// -- the teacher's fileio.CreateFile pattern, kept as-is.
func CreateFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		if mkErr := os.MkdirAll(filepath.Dir(path), os.ModePerm); mkErr == nil {
			f, err = os.Create(path)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// AtomicWriteFile writes data to path via a sibling ".tmp" file and an
// atomic rename, so a reader never observes a partially written file.
func AtomicWriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// AtomicWriteJSON marshals v as pretty JSON and writes it atomically.
func AtomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data)
}
