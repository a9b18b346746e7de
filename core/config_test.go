package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfigView(t *testing.T) {
	cfg := NewDefaultConfigView()
	assert.Equal(t, "https://libraries.minecraft.net/", cfg.Get("librariesSource"))
	assert.Equal(t, "https://resources.download.minecraft.net/", cfg.Get("assetsSource"))
	assert.False(t, cfg.CustomSourcesFirst())
}

func TestConfigViewGetNonBlank(t *testing.T) {
	v := viper.New()
	v.SetDefault("set", "value")
	v.SetDefault("blank", "   ")
	cfg := NewConfigView(v)

	val, ok := cfg.GetNonBlank("set")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	_, ok = cfg.GetNonBlank("blank")
	assert.False(t, ok)

	_, ok = cfg.GetNonBlank("missing")
	assert.False(t, ok)
}

func TestConfigViewCustomSourcesFirstCaseInsensitive(t *testing.T) {
	v := viper.New()
	v.SetDefault("customSourcesFirst", "TRUE")
	cfg := NewConfigView(v)
	assert.True(t, cfg.CustomSourcesFirst())
}

func TestConfigViewLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updater.toml")
	require.NoError(t, os.WriteFile(path, []byte("librariesSource = \"https://mirror.example/libs/\"\n"), 0o644))

	v := viper.New()
	v.SetDefault("librariesSource", "https://libraries.minecraft.net/")
	cfg := NewConfigView(v)

	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, "https://mirror.example/libs/", cfg.Get("librariesSource"))
}
