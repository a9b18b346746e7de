package core

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(overrides map[string]string) ConfigView {
	v := viper.New()
	for k, val := range overrides {
		v.SetDefault(k, val)
	}
	return NewConfigView(v)
}

func TestBuildSourceListPrimaryOnly(t *testing.T) {
	cfg := newTestConfig(nil)
	list, err := BuildSourceList("https://primary.example/", cfg, "customThing", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://primary.example/"}, list)
}

func TestBuildSourceListCustomFallback(t *testing.T) {
	cfg := newTestConfig(map[string]string{"customThing": "https://custom.example/"})
	list, err := BuildSourceList("https://primary.example/", cfg, "customThing", IdentityTransform)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://primary.example/", "https://custom.example/"}, list)
}

func TestBuildSourceListCustomFirst(t *testing.T) {
	cfg := newTestConfig(map[string]string{
		"customThing":        "https://custom.example/",
		"customSourcesFirst": "true",
	})
	list, err := BuildSourceList("https://primary.example/", cfg, "customThing", IdentityTransform)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://custom.example/", "https://primary.example/"}, list)
}

func TestBuildSourceListBlankCustomIsAbsent(t *testing.T) {
	cfg := newTestConfig(map[string]string{"customThing": "   "})
	list, err := BuildSourceList("https://primary.example/", cfg, "customThing", IdentityTransform)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://primary.example/"}, list)
}

func TestBuildSourceListEmptyIsError(t *testing.T) {
	cfg := newTestConfig(nil)
	_, err := BuildSourceList("", cfg, "customThing", IdentityTransform)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestBuildSourceListDropsFailingTransform(t *testing.T) {
	cfg := newTestConfig(map[string]string{"customThing": "https://custom.example/"})
	transform := func(string) (string, error) { return "", errors.New("cannot derive") }
	list, err := BuildSourceList("https://primary.example/", cfg, "customThing", transform)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://primary.example/"}, list)
}

func TestSuffixTransform(t *testing.T) {
	transform := SuffixTransform("1.20.1.json")
	out, err := transform("https://mirror.example/versions/")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example/versions/1.20.1.json", out)
}

func TestSuffixTransformEmptyBase(t *testing.T) {
	transform := SuffixTransform("1.20.1.json")
	_, err := transform("   ")
	assert.Error(t, err)
}

func TestBuildSourceListFromKey(t *testing.T) {
	cfg := newTestConfig(map[string]string{
		"librariesSource":       "https://libraries.minecraft.net/",
		"customLibrariesSource": "https://mirror.example/libs/",
	})
	list, err := BuildSourceListFromKey(cfg, "librariesSource", "customLibrariesSource")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://libraries.minecraft.net/", "https://mirror.example/libs/"}, list)
}

func TestRebaseAll(t *testing.T) {
	list := []string{"https://a.example/", "https://b.example"}
	out := RebaseAll(list, "/foo/bar.jar")
	assert.Equal(t, []string{"https://a.example/foo/bar.jar", "https://b.example/foo/bar.jar"}, out)
}
