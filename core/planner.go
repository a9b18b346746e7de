package core

import (
	"path/filepath"
	"sort"
)

// TaskRole identifies what kind of artifact a DownloadTask materializes
// (§3 DownloadTask).
type TaskRole int

const (
	RoleJAR TaskRole = iota
	RoleLibrary
	RoleAsset
	RoleIndex
	RoleMeta
)

func (r TaskRole) String() string {
	switch r {
	case RoleJAR:
		return "jar"
	case RoleLibrary:
		return "library"
	case RoleAsset:
		return "asset"
	case RoleIndex:
		return "index"
	case RoleMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// DownloadTask is the smallest unit the downloader schedules: one artifact
// to one target path, with an ordered fallback list of sources (§3
// DownloadTask). A task with a non-empty ExpectedHash satisfies, at
// completion, sha1(TargetPath) == ExpectedHash.
type DownloadTask struct {
	Sources      []string
	TargetPath   string
	ExpectedHash string
	ExpectedSize int64
	Role         TaskRole
}

// Plan is the deterministic, ordered set of tasks produced for a resolved
// update, minus the asset-object tasks (which need the asset index body
// and are planned separately once it's on disk -- §4.5, §5 ordering).
type Plan struct {
	Client      DownloadTask
	Libraries   []DownloadTask
	AssetIndex  *DownloadTask
}

// PlanCore builds the client, library and asset-index tasks for a resolved
// version manifest. launcherRoot is the shared pool directory that holds
// libraries/, assets/ and versions/ (§6 on-disk layout).
func PlanCore(cfg ConfigView, manifest PackageManifest, vm *VersionManifest, launcherRoot string) (Plan, error) {
	client, err := planClientTask(cfg, vm, launcherRoot)
	if err != nil {
		return Plan{}, err
	}

	libraries, err := planLibraryTasks(cfg, manifest, vm, launcherRoot)
	if err != nil {
		return Plan{}, err
	}

	assetIndex, err := planAssetIndexTask(cfg, vm, launcherRoot)
	if err != nil {
		return Plan{}, err
	}

	return Plan{Client: client, Libraries: libraries, AssetIndex: assetIndex}, nil
}

func planClientTask(cfg ConfigView, vm *VersionManifest, launcherRoot string) (DownloadTask, error) {
	artifact, ok := vm.Downloads["client"]
	if !ok {
		return DownloadTask{}, &ManifestNotFoundError{GameVersion: vm.ID}
	}

	sources, err := BuildSourceList(artifact.URL, cfg, "customVersionsSource", SuffixTransform(vm.ID+"-client.jar"))
	if err != nil {
		return DownloadTask{}, err
	}

	return DownloadTask{
		Sources:      sources,
		TargetPath:   filepath.Join(launcherRoot, "versions", vm.ID+"-client.jar"),
		ExpectedHash: artifact.Hash,
		ExpectedSize: artifact.Size,
		Role:         RoleJAR,
	}, nil
}

func planLibraryTasks(cfg ConfigView, manifest PackageManifest, vm *VersionManifest, launcherRoot string) ([]DownloadTask, error) {
	rootSources, err := BuildSourceListFromKey(cfg, "librariesSource", "customLibrariesSource")
	if err != nil {
		return nil, err
	}
	// manifest.librariesUrl is a per-manifest primary source that takes
	// precedence over every other entry (§4.3 rule 5).
	if manifest.LibrariesURL != "" {
		rootSources = append([]string{manifest.LibrariesURL}, rootSources...)
	}

	var tasks []DownloadTask
	for _, lib := range vm.Libraries {
		for _, artifact := range lib.GetAllArtifacts() {
			tasks = append(tasks, DownloadTask{
				Sources:      RebaseAll(rootSources, artifact.Path),
				TargetPath:   filepath.Join(launcherRoot, "libraries", filepath.FromSlash(artifact.Path)),
				ExpectedHash: artifact.Hash,
				ExpectedSize: artifact.Size,
				Role:         RoleLibrary,
			})
		}
	}
	return tasks, nil
}

func planAssetIndexTask(cfg ConfigView, vm *VersionManifest, launcherRoot string) (*DownloadTask, error) {
	if vm.AssetIndex == nil {
		return nil, nil
	}

	assetID := vm.AssetID
	if assetID == "" {
		assetID = vm.ID
	}

	sources, err := BuildSourceList(vm.AssetIndex.URL, cfg, "customAssetIndexesSource", SuffixTransform(assetID+".json"))
	if err != nil {
		return nil, err
	}

	return &DownloadTask{
		Sources:      sources,
		TargetPath:   AssetIndexPath(launcherRoot, assetID),
		ExpectedHash: vm.AssetIndex.Hash,
		ExpectedSize: vm.AssetIndex.Size,
		Role:         RoleMeta,
	}, nil
}

// AssetIndexPath is the on-disk location of an instance's asset index.
func AssetIndexPath(launcherRoot, assetID string) string {
	return filepath.Join(launcherRoot, "assets", "indexes", assetID+".json")
}

// AssetObjectPath is the on-disk location of an asset object (§6).
func AssetObjectPath(launcherRoot string, hash string) string {
	if len(hash) < 2 {
		return filepath.Join(launcherRoot, "assets", "objects", hash)
	}
	return filepath.Join(launcherRoot, "assets", "objects", hash[:2], hash)
}

// AssetObjectPathFlat is the mirror builder's on-disk location of an asset
// object: "<root>/assets/<hash[0:2]>/<hash>", without the "objects/"
// nesting a real instance uses (§4.9 vs §6).
func AssetObjectPathFlat(outputDir, hash string) string {
	if len(hash) < 2 {
		return filepath.Join(outputDir, "assets", hash)
	}
	return filepath.Join(outputDir, "assets", hash[:2], hash)
}

// PlanAssetObjectTasks builds one task per object in a fetched AssetsIndex
// (§4.5, planned only once the index body is available on disk).
func PlanAssetObjectTasks(cfg ConfigView, index AssetsIndex, launcherRoot string) ([]DownloadTask, error) {
	rootSources, err := BuildSourceListFromKey(cfg, "assetsSource", "customAssetsSource")
	if err != nil {
		return nil, err
	}

	// Deterministic order: sort object names so planning output is stable
	// across runs regardless of Go's randomized map iteration.
	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	tasks := make([]DownloadTask, 0, len(names))
	for _, name := range names {
		obj := index.Objects[name]
		tasks = append(tasks, DownloadTask{
			Sources:      RebaseAll(rootSources, obj.ObjectPath()),
			TargetPath:   AssetObjectPath(launcherRoot, obj.Hash),
			ExpectedHash: obj.Hash,
			ExpectedSize: obj.Size,
			Role:         RoleAsset,
		})
	}
	return tasks, nil
}
