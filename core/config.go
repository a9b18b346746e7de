package core

import (
	"strings"

	"github.com/spf13/viper"
)

// ConfigView is the "configuration view (key→string)" capability C3 reads
// from: a thin wrapper over viper so the source-list builder never touches
// flags, env vars, or file formats directly, the way internal/shared reads
// settings through viper in the teacher.
type ConfigView struct {
	v *viper.Viper
}

// NewConfigView wraps an existing *viper.Viper.
func NewConfigView(v *viper.Viper) ConfigView {
	return ConfigView{v: v}
}

// NewDefaultConfigView builds a ConfigView pre-seeded with the primary
// origins this module ships with, readable as a TOML file (via
// pelletier/go-toml) and overridable by environment variables, e.g.
// INSTANCEUPDATER_CUSTOMASSETSSOURCE.
func NewDefaultConfigView() ConfigView {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("instanceupdater")
	v.AutomaticEnv()

	v.SetDefault("librariesSource", "https://libraries.minecraft.net/")
	v.SetDefault("assetsSource", "https://resources.download.minecraft.net/")
	v.SetDefault("versionManifestUrl", "https://launchermeta.mojang.com/mc/game/version_manifest.json")
	v.SetDefault("customSourcesFirst", "false")

	return ConfigView{v: v}
}

// LoadFile merges a TOML config file (e.g. updater.toml) into the view.
func (c ConfigView) LoadFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.MergeInConfig()
}

// Get returns the string value for key, or "" if unset.
func (c ConfigView) Get(key string) string {
	return c.v.GetString(key)
}

// GetNonBlank returns (value, true) if key is set to a non-blank string,
// or ("", false) otherwise -- this is the "blank/whitespace is absent"
// rule §6 specifies for all custom-* keys.
func (c ConfigView) GetNonBlank(key string) (string, bool) {
	val := strings.TrimSpace(c.v.GetString(key))
	if val == "" {
		return "", false
	}
	return val, true
}

// CustomSourcesFirst implements the customSourcesFirst toggle: "true"
// (case-insensitive) flips ordering, anything else (including absent)
// means custom-is-fallback.
func (c ConfigView) CustomSourcesFirst() bool {
	return strings.EqualFold(strings.TrimSpace(c.v.GetString("customSourcesFirst")), "true")
}
