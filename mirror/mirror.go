// Package mirror implements C9, the standalone mirror builder: it drives
// the same planner and downloader as the interactive updater, but against
// a flat output directory and a user-supplied list of game versions rather
// than a single instance. Grounded on
// original_source/launcher-builder/.../AssetMirror.java, generalized from
// its hand-rolled ExecutorService + downloadedFiles set onto the shared
// core/downloader engine.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/leocov-dev/instanceupdater/core"
	"github.com/leocov-dev/instanceupdater/downloader"
	"github.com/leocov-dev/instanceupdater/internal/progress"
)

// Builder drives C5/C6 against OutputDir for a fixed set of game versions.
type Builder struct {
	Client     *http.Client
	Config     core.ConfigView
	OutputDir  string
	Downloader *downloader.Downloader
	// Log receives one line per failed artifact, failed version, or failed
	// versions/<id>.json write; defaults to discarding if nil. Failure of an individual artifact never aborts
	// the mirror (§4.9); only release-index failure is fatal.
	Log func(format string, args ...any)
}

// NewBuilder returns a Builder configured with the fixed 8-way,
// 50ms-throttled mirror downloader (§4.6, §4.9).
func NewBuilder(client *http.Client, cfg core.ConfigView, outputDir string) *Builder {
	b := &Builder{
		Client:     client,
		Config:     cfg,
		OutputDir:  outputDir,
		Downloader: downloader.NewForMirror(client),
	}
	b.Downloader.OnTaskError = func(task core.DownloadTask, err error) {
		b.logf("artifact %s: %v", task.TargetPath, err)
	}
	return b
}

func (b *Builder) logf(format string, args ...any) {
	if b.Log != nil {
		b.Log(format, args...)
	}
}

// BuildVersions mirrors the release index plus every listed game version.
// versions is sorted and deduped (FlexVer ordering) before processing so
// runs are deterministic regardless of the order --versions was given in.
//
// Sort direction is ascending because the teacher's FlexVer.VersionSlice.Sort
// is ascending; SortAndDedupeVersions does not reverse it.
func (b *Builder) BuildVersions(ctx context.Context, versions []string, report progress.Sink) error {
	sink := report
	if sink == nil {
		sink = func(float64, string) {}
	}

	versions = core.SortAndDedupeVersions(append([]string(nil), versions...))

	releaseSources, err := core.BuildSourceListFromKey(b.Config, "versionManifestUrl", "customVersionManifestUrl")
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(b.OutputDir, "version_manifest.json")
	if err := downloader.NewStrict(b.Client).Run(ctx, []core.DownloadTask{{
		Sources:    releaseSources,
		TargetPath: manifestPath,
		Role:       core.RoleMeta,
	}}, nil); err != nil {
		return fmt.Errorf("mirroring release index: %w", err)
	}

	total := len(versions)
	for i, gameVersion := range versions {
		sink(float64(i)/float64(total), "mirroring "+gameVersion)
		if err := b.buildVersion(ctx, gameVersion); err != nil {
			b.logf("version %s: %v", gameVersion, err)
		}
	}
	sink(1, "mirror complete")
	return nil
}

func (b *Builder) buildVersion(ctx context.Context, gameVersion string) error {
	vm, err := core.ResolveVersionManifest(ctx, b.Client, b.Config, core.PackageManifest{GameVersion: gameVersion}, "")
	if err != nil {
		return fmt.Errorf("resolving version manifest: %w", err)
	}

	versionJSONPath := filepath.Join(b.OutputDir, "versions", gameVersion+".json")
	if err := core.AtomicWriteJSON(versionJSONPath, vm); err != nil {
		b.logf("writing versions/%s.json: %v", gameVersion, err)
	}

	client, err := planMirrorClient(b.Config, vm, b.OutputDir)
	if err != nil {
		return fmt.Errorf("planning client jar: %w", err)
	}
	libraries, err := planMirrorLibraries(b.Config, vm, b.OutputDir)
	if err != nil {
		return fmt.Errorf("planning libraries: %w", err)
	}
	assetIndex, err := planMirrorAssetIndex(b.Config, vm, b.OutputDir)
	if err != nil {
		return fmt.Errorf("planning asset index: %w", err)
	}

	tasks := append([]core.DownloadTask{client}, libraries...)
	if assetIndex != nil {
		tasks = append(tasks, *assetIndex)
	}

	if err := b.runAndLog(ctx, tasks); err != nil {
		return err
	}

	if assetIndex == nil {
		return nil
	}

	indexData, err := os.ReadFile(assetIndex.TargetPath)
	if err != nil {
		return fmt.Errorf("reading downloaded asset index: %w", err)
	}
	var index core.AssetsIndex
	if err := json.Unmarshal(indexData, &index); err != nil {
		return fmt.Errorf("decoding asset index: %w", err)
	}

	assetTasks, err := planMirrorAssetObjects(b.Config, index, b.OutputDir)
	if err != nil {
		return fmt.Errorf("planning asset objects: %w", err)
	}
	return b.runAndLog(ctx, assetTasks)
}

// runAndLog runs the full task batch through the mirror's ContinueOnError
// downloader in one call, so the semaphore-bounded concurrency (§4.6 fixed
// 8, §5) is real across the batch; a single artifact's failure is logged via
// OnTaskError and the rest of the batch keeps going (§4.9 "failures on
// individual artifacts are logged and the mirror continues").
func (b *Builder) runAndLog(ctx context.Context, tasks []core.DownloadTask) error {
	return b.Downloader.Run(ctx, tasks, nil)
}
