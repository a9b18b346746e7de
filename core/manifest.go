package core

import (
	"context"
	"fmt"
	"net/http"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// PackageManifest is the modpack descriptor: a target game version plus
// overlay content and optional extra origins (§3 PackageManifest).
type PackageManifest struct {
	Version         string          `json:"version"`
	GameVersion     string          `json:"gameVersion"`
	ManifestURL     string          `json:"manifestUrl,omitempty"`
	LibrariesURL    string          `json:"librariesUrl,omitempty"`
	VersionManifest *VersionManifest `json:"versionManifest,omitempty"`
	Features        []string        `json:"features,omitempty"`
	Files           []FileEntry     `json:"files,omitempty"`
}

// FetchPackageManifest retrieves and decodes the manifest at url (§4.7
// step "read package manifest"), the network-facing counterpart to the
// PackageManifest value tests construct directly.
func FetchPackageManifest(ctx context.Context, client *http.Client, url string) (PackageManifest, error) {
	var m PackageManifest
	if err := Get(ctx, client, url).JSON(&m); err != nil {
		return PackageManifest{}, err
	}
	return m, nil
}

// ValidateManifestVersion checks that a non-blank manifest version parses
// as semver before the orchestrator persists it, the same release-channel
// well-formedness check fileio.LoadPackFile applies to a pack-format
// constraint.
func ValidateManifestVersion(m PackageManifest) error {
	if m.Version == "" {
		return nil
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		return fmt.Errorf("manifest version %q is not valid semver: %w", m.Version, err)
	}
	return nil
}

// FileEntry is one piece of overlay content; opaque to the core planner,
// consumed only by the external installPackage collaborator (§3).
type FileEntry struct {
	Path string `json:"path"`
	Hash string `json:"hash,omitempty"`
}

// VersionManifest is the game-engine descriptor for a specific game
// version (§3 VersionManifest).
type VersionManifest struct {
	ID          string              `json:"id"`
	AssetID     string              `json:"assets,omitempty"`
	AssetIndex  *AssetIndexPointer  `json:"assetIndex,omitempty"`
	Downloads   map[string]Artifact `json:"downloads"`
	Libraries   []Library           `json:"libraries"`
}

// AssetIndexPointer locates the asset index document for a version.
type AssetIndexPointer struct {
	URL  string `json:"url"`
	Hash string `json:"sha1"`
	Size int64  `json:"size"`
}

// Artifact is a single downloadable, hash-addressed file (§3 Artifact).
type Artifact struct {
	URL  string `json:"url"`
	Hash string `json:"sha1"`
	Size int64  `json:"size"`
	Path string `json:"path,omitempty"`
}

// Library is one dependency jar, optionally split into classifiers
// (natives) and gated by platform rules (§3 Library).
type Library struct {
	Name      string                 `json:"name"`
	Downloads LibraryDownloads       `json:"downloads"`
	Rules     []PlatformRule         `json:"rules,omitempty"`
}

// LibraryDownloads holds the main artifact plus any classifier-keyed
// variants (native libraries for a given OS).
type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// PlatformRule is evaluated against the running OS the way the original
// launcher's Library.isApplicable() does -- left opaque by the distilled
// spec but load-bearing in practice (SPEC_FULL §4 supplemented features).
type PlatformRule struct {
	Action string       `json:"action"` // "allow" or "disallow"
	OS     *OSRuleMatch `json:"os,omitempty"`
}

// OSRuleMatch narrows a PlatformRule to a specific OS name ("osx", "linux",
// "windows" in the vanilla naming, mapped onto runtime.GOOS below).
type OSRuleMatch struct {
	Name string `json:"name,omitempty"`
}

var goosNames = map[string]string{
	"darwin":  "osx",
	"linux":   "linux",
	"windows": "windows",
}

// isApplicable reports whether the library's rules (if any) permit
// installation on the current platform. No rules means always applicable.
func isApplicable(rules []PlatformRule) bool {
	if len(rules) == 0 {
		return true
	}
	allowed := false
	currentOS := goosNames[runtime.GOOS]
	for _, rule := range rules {
		if rule.OS != nil && rule.OS.Name != "" && rule.OS.Name != currentOS {
			continue
		}
		allowed = rule.Action == "allow"
	}
	return allowed
}

// GetAllArtifacts returns the platform-applicable artifacts for this
// library: the main artifact plus any classifier whose name matches the
// current OS's "natives-<os>" convention, skipped entirely if rules
// disallow the current platform (§3 Library.getAllArtifacts()).
func (l Library) GetAllArtifacts() []Artifact {
	if !isApplicable(l.Rules) {
		return nil
	}
	var artifacts []Artifact
	if l.Downloads.Artifact != nil && l.Downloads.Artifact.URL != "" && l.Downloads.Artifact.Path != "" {
		artifacts = append(artifacts, *l.Downloads.Artifact)
	}
	nativesKey := "natives-" + goosNames[runtime.GOOS]
	if a, ok := l.Downloads.Classifiers[nativesKey]; ok && a.URL != "" && a.Path != "" {
		artifacts = append(artifacts, a)
	}
	return artifacts
}

// HasNatives reports whether this library carries a natives classifier for
// the current platform, i.e. whether it needs a deferred extraction action
// during install (§4.7 step 6, SPEC_FULL §4).
func (l Library) HasNatives() (Artifact, bool) {
	if !isApplicable(l.Rules) {
		return Artifact{}, false
	}
	a, ok := l.Downloads.Classifiers["natives-"+goosNames[runtime.GOOS]]
	return a, ok
}

// AssetsIndex maps logical asset names to content-addressed objects (§3
// AssetsIndex).
type AssetsIndex struct {
	Objects map[string]Asset `json:"objects"`
}

// Asset is one entry of an AssetsIndex.
type Asset struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// ObjectPath returns the on-wire path for an asset object: "<hash[0:2]>/<hash>".
func (a Asset) ObjectPath() string {
	if len(a.Hash) < 2 {
		return a.Hash
	}
	return a.Hash[:2] + "/" + a.Hash
}
