package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryGetAllArtifactsNoRules(t *testing.T) {
	lib := Library{
		Downloads: LibraryDownloads{
			Artifact: &Artifact{URL: "https://example/lib.jar", Path: "lib.jar", Hash: "h"},
		},
	}
	artifacts := lib.GetAllArtifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, "lib.jar", artifacts[0].Path)
}

func TestLibraryGetAllArtifactsDisallowedPlatform(t *testing.T) {
	lib := Library{
		Downloads: LibraryDownloads{
			Artifact: &Artifact{URL: "https://example/lib.jar", Path: "lib.jar", Hash: "h"},
		},
		Rules: []PlatformRule{
			{Action: "allow", OS: &OSRuleMatch{Name: "nonexistent-os"}},
		},
	}
	assert.Empty(t, lib.GetAllArtifacts())
}

func TestLibraryHasNativesAbsent(t *testing.T) {
	lib := Library{Downloads: LibraryDownloads{}}
	_, ok := lib.HasNatives()
	assert.False(t, ok)
}

func TestAssetObjectPathMethod(t *testing.T) {
	a := Asset{Hash: "abcdef1234"}
	assert.Equal(t, "ab/abcdef1234", a.ObjectPath())
}

func TestValidateManifestVersion(t *testing.T) {
	assert.NoError(t, ValidateManifestVersion(PackageManifest{}))
	assert.NoError(t, ValidateManifestVersion(PackageManifest{Version: "1.2.3"}))
	assert.Error(t, ValidateManifestVersion(PackageManifest{Version: "not-a-version!"}))
}

func TestFetchPackageManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PackageManifest{Version: "1.0.0", GameVersion: "1.20.1"})
	}))
	defer srv.Close()

	m, err := FetchPackageManifest(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "1.20.1", m.GameVersion)
}
