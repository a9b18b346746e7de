// Package instancestore is the default core.Persistence implementation the
// CLI wires up: a single TOML file per instance, loaded/saved the same way
// the teacher's fileio.LoadPackFile/SavePackFile round-trip core.Pack,
// substituting pelletier/go-toml/v2 for JSON since that's the file format
// the rest of this module's config already standardized on.
package instancestore

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/leocov-dev/instanceupdater/core"
)

// record is the on-disk shape of an Instance; a plain struct rather than
// core.Instance itself so the file format can evolve independently of the
// in-memory type the update pipeline works with.
type record struct {
	Name          string   `toml:"name"`
	Title         string   `toml:"title"`
	ContentDir    string   `toml:"content_dir"`
	Version       string   `toml:"version"`
	Features      []string `toml:"features,omitempty"`
	Installed     bool     `toml:"installed"`
	UpdatePending bool     `toml:"update_pending"`
	Local         bool     `toml:"local"`
	ManifestURL   string   `toml:"manifest_url,omitempty"`
}

func toRecord(i core.Instance) record {
	return record{
		Name:          i.Name,
		Title:         i.Title,
		ContentDir:    i.ContentDir,
		Version:       i.Version,
		Features:      i.Features,
		Installed:     i.Installed,
		UpdatePending: i.UpdatePending,
		Local:         i.Local,
		ManifestURL:   i.ManifestURL,
	}
}

func (r record) toInstance() core.Instance {
	return core.Instance{
		Name:          r.Name,
		Title:         r.Title,
		ContentDir:    r.ContentDir,
		Version:       r.Version,
		Features:      r.Features,
		Installed:     r.Installed,
		UpdatePending: r.UpdatePending,
		Local:         r.Local,
		ManifestURL:   r.ManifestURL,
	}
}

// Store persists a single instance's record to a fixed path, implementing
// core.Persistence for the CLI.
type Store struct {
	Path string
}

// New returns a Store backed by path (created on first Commit if missing).
func New(path string) *Store {
	return &Store{Path: path}
}

// Load reads the instance record from disk, if present.
func (s *Store) Load() (core.Instance, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return core.Instance{}, err
	}
	var r record
	if err := toml.Unmarshal(data, &r); err != nil {
		return core.Instance{}, fmt.Errorf("decoding instance record %s: %w", s.Path, err)
	}
	return r.toInstance(), nil
}

// Commit implements core.Persistence: atomically writes the instance
// record to Path.
func (s *Store) Commit(instance core.Instance) error {
	data, err := toml.Marshal(toRecord(instance))
	if err != nil {
		return fmt.Errorf("encoding instance record: %w", err)
	}
	return core.AtomicWriteFile(s.Path, data)
}
