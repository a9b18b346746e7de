package core

import (
	"context"
	"net/http"
)

// releaseList is the index-of-all-game-versions document fetched from the
// versionManifestUrl/customVersionManifestUrl source list (§4.4 step 2).
type releaseList struct {
	Versions []releaseEntry `json:"versions"`
}

type releaseEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// findReleaseEntry fetches the release list and returns the entry matching
// gameVersion, trying sources in order and stopping at the first one that
// fetches successfully (not the first one that happens to contain the
// version) -- per §4.4 step 2, "on the first success, search for an entry".
func findReleaseEntry(ctx context.Context, client *http.Client, cfg ConfigView, gameVersion string) (releaseEntry, error) {
	sources, err := BuildSourceListFromKey(cfg, "versionManifestUrl", "customVersionManifestUrl")
	if err != nil {
		return releaseEntry{}, err
	}

	var lastErr error
	for _, src := range sources {
		var list releaseList
		if err := Get(ctx, client, src).ExpectStatus(http.StatusOK).JSON(&list); err != nil {
			lastErr = err
			continue
		}
		for _, entry := range list.Versions {
			if entry.ID == gameVersion {
				return entry, nil
			}
		}
		return releaseEntry{}, &ManifestNotFoundError{GameVersion: gameVersion}
	}
	if lastErr == nil {
		lastErr = ErrNoSources
	}
	return releaseEntry{}, lastErr
}

// fetchVersionManifest fetches a fresh VersionManifest for gameVersion,
// by first locating its release entry and then fetching the per-version
// JSON document (§4.4 steps 2-3).
func fetchVersionManifest(ctx context.Context, client *http.Client, cfg ConfigView, gameVersion string) (*VersionManifest, error) {
	entry, err := findReleaseEntry(ctx, client, cfg, gameVersion)
	if err != nil {
		return nil, err
	}

	sources, err := BuildSourceList(entry.URL, cfg, "customVersionsSource", SuffixTransform(gameVersion+".json"))
	if err != nil {
		return nil, err
	}

	var vm VersionManifest
	var lastErr error
	for _, src := range sources {
		if err := Get(ctx, client, src).ExpectStatus(http.StatusOK).JSON(&vm); err != nil {
			lastErr = err
			continue
		}
		return &vm, nil
	}
	return nil, lastErr
}

// ResolveVersionManifest implements the C4 resolve() operation: start from
// the package manifest's embedded copy if present, otherwise fetch one
// fresh; repair a backwards-compatible embedded manifest whose downloads
// are empty; then persist the resolved manifest atomically.
//
// versionPath may be empty to skip persistence (used by callers -- like
// the mirror builder -- that never had an on-disk instance to begin with).
func ResolveVersionManifest(ctx context.Context, client *http.Client, cfg ConfigView, manifest PackageManifest, versionPath string) (*VersionManifest, error) {
	var vm *VersionManifest
	if manifest.VersionManifest != nil {
		copied := *manifest.VersionManifest
		vm = &copied
	} else {
		fresh, err := fetchVersionManifest(ctx, client, cfg, manifest.GameVersion)
		if err != nil {
			return nil, err
		}
		vm = fresh
	}

	// Backwards-compatibility repair (§4.4 step 4): an old embedded
	// manifest with no downloads gets a fresh copy's downloads and
	// assetIndex grafted in, preserving everything else -- crucially the
	// library list, which may differ and must not be replaced.
	if len(vm.Downloads) == 0 {
		fresh, err := fetchVersionManifest(ctx, client, cfg, manifest.GameVersion)
		if err != nil {
			return nil, err
		}
		vm.Downloads = fresh.Downloads
		vm.AssetIndex = fresh.AssetIndex
	}

	if versionPath != "" {
		if err := AtomicWriteJSON(versionPath, vm); err != nil {
			return nil, err
		}
	}

	return vm, nil
}
