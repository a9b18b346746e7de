package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashImpl(t *testing.T) {
	tests := []struct {
		name     string
		hashType string
		wantErr  bool
	}{
		{"SHA1", "sha1", false},
		{"SHA1 uppercase", "SHA1", false},
		{"MD5", "md5", false},
		{"Invalid hash", "invalid-hash", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetHashImpl(tt.hashType)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, got)
			}
		})
	}
}

func TestHexStringer(t *testing.T) {
	hasher, err := GetHashImpl("sha1")
	require.NoError(t, err)

	_, err = hasher.Write([]byte("test data"))
	require.NoError(t, err)

	assert.Equal(t, "f48dd853820860816c75d54d0f584dc863327a7c", hasher.String())
}

func TestSha1FileAndVerifyHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	sum, err := Sha1File(path)
	require.NoError(t, err)
	assert.Equal(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed", sum)

	ok, err := VerifyHash(path, sum)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyHash(path, "0000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyHash(filepath.Join(dir, "missing.bin"), sum)
	require.NoError(t, err)
	assert.False(t, ok)
}
