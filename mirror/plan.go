package mirror

import (
	"path/filepath"
	"sort"

	"github.com/leocov-dev/instanceupdater/core"
)

// The mirror builder's on-disk layout is flatter than a real instance's
// (§6 vs §4.9): no "assets/objects"/"assets/indexes" nesting, just
// "indexes/" and "assets/" directly under the output root. These mirror
// core/planner.go's source-list construction but target the mirror's own
// path shape, so they're planned separately rather than through
// core.PlanCore.

func planMirrorClient(cfg core.ConfigView, vm *core.VersionManifest, outputDir string) (core.DownloadTask, error) {
	artifact, ok := vm.Downloads["client"]
	if !ok {
		return core.DownloadTask{}, &core.ManifestNotFoundError{GameVersion: vm.ID}
	}
	sources, err := core.BuildSourceList(artifact.URL, cfg, "customVersionsSource", core.SuffixTransform(vm.ID+"-client.jar"))
	if err != nil {
		return core.DownloadTask{}, err
	}
	return core.DownloadTask{
		Sources:      sources,
		TargetPath:   filepath.Join(outputDir, "versions", vm.ID+"-client.jar"),
		ExpectedHash: artifact.Hash,
		ExpectedSize: artifact.Size,
		Role:         core.RoleJAR,
	}, nil
}

func planMirrorLibraries(cfg core.ConfigView, vm *core.VersionManifest, outputDir string) ([]core.DownloadTask, error) {
	rootSources, err := core.BuildSourceListFromKey(cfg, "librariesSource", "customLibrariesSource")
	if err != nil {
		return nil, err
	}
	var tasks []core.DownloadTask
	for _, lib := range vm.Libraries {
		for _, artifact := range lib.GetAllArtifacts() {
			tasks = append(tasks, core.DownloadTask{
				Sources:      core.RebaseAll(rootSources, artifact.Path),
				TargetPath:   filepath.Join(outputDir, "libraries", filepath.FromSlash(artifact.Path)),
				ExpectedHash: artifact.Hash,
				ExpectedSize: artifact.Size,
				Role:         core.RoleLibrary,
			})
		}
	}
	return tasks, nil
}

func planMirrorAssetIndex(cfg core.ConfigView, vm *core.VersionManifest, outputDir string) (*core.DownloadTask, error) {
	if vm.AssetIndex == nil {
		return nil, nil
	}
	assetID := vm.AssetID
	if assetID == "" {
		assetID = vm.ID
	}
	sources, err := core.BuildSourceList(vm.AssetIndex.URL, cfg, "customAssetIndexesSource", core.SuffixTransform(assetID+".json"))
	if err != nil {
		return nil, err
	}
	return &core.DownloadTask{
		Sources:      sources,
		TargetPath:   filepath.Join(outputDir, "indexes", assetID+".json"),
		ExpectedHash: vm.AssetIndex.Hash,
		ExpectedSize: vm.AssetIndex.Size,
		Role:         core.RoleMeta,
	}, nil
}

func planMirrorAssetObjects(cfg core.ConfigView, index core.AssetsIndex, outputDir string) ([]core.DownloadTask, error) {
	rootSources, err := core.BuildSourceListFromKey(cfg, "assetsSource", "customAssetsSource")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	tasks := make([]core.DownloadTask, 0, len(names))
	for _, name := range names {
		obj := index.Objects[name]
		tasks = append(tasks, core.DownloadTask{
			Sources:      core.RebaseAll(rootSources, obj.ObjectPath()),
			TargetPath:   core.AssetObjectPathFlat(outputDir, obj.Hash),
			ExpectedHash: obj.Hash,
			ExpectedSize: obj.Size,
			Role:         core.RoleAsset,
		})
	}
	return tasks, nil
}
