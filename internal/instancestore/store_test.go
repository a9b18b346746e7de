package instancestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leocov-dev/instanceupdater/core"
)

func TestStoreCommitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.toml")
	s := New(path)

	instance := core.Instance{
		Name:        "demo",
		Title:       "Demo Pack",
		Version:     "1.2.3",
		Features:    []string{"optional_shaders"},
		Installed:   true,
		ManifestURL: "https://example.test/manifest.json",
	}

	require.NoError(t, s.Commit(instance))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, instance, loaded)
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.toml"))
	_, err := s.Load()
	assert.Error(t, err)
}
