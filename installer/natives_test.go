package installer

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestExtractNativesActionApply(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "natives.jar")
	writeTestZip(t, archive, map[string]string{
		"libfoo.so":          "binary",
		"META-INF/MANIFEST":  "ignored",
	})

	dest := filepath.Join(dir, "natives-out")
	action := ExtractNativesAction{ArchivePath: archive, DestDir: dest}
	require.NoError(t, action.Apply(context.Background()))

	data, err := os.ReadFile(filepath.Join(dest, "libfoo.so"))
	require.NoError(t, err)
	assert.Equal(t, "binary", string(data))

	_, err = os.Stat(filepath.Join(dest, "META-INF"))
	assert.True(t, os.IsNotExist(err))
}
