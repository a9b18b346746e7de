// Package installer implements C7, the orchestrator that drives manifest
// resolution, planning and downloading to bring an instance up to date.
// Grounded on the original updater's call()/update() pair
// (launcher/src/main/java/.../update/Updater.java): the decision table
// first, then a fixed phase sequence with a single progress observable
// swapped between phases.
package installer

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/leocov-dev/instanceupdater/core"
	"github.com/leocov-dev/instanceupdater/downloader"
	"github.com/leocov-dev/instanceupdater/internal/progress"
)

// PackageInstaller is the external overlay-content collaborator: given the
// package manifest, it materializes (or schedules materialization of) the
// modpack's own files and may hand back deferred actions to run once the
// download phase completes (§3, §4.7 step 2 "installPackage").
type PackageInstaller interface {
	InstallPackage(ctx context.Context, manifest core.PackageManifest, contentDir string) ([]DeferredAction, error)
}

// DeferredAction is work registered during planning or package install that
// must run only after every download task has completed (§4.7 step 6,
// §5 ordering guarantees) -- e.g. extracting a library's native binaries.
type DeferredAction interface {
	Apply(ctx context.Context) error
}

// NopPackageInstaller materializes nothing; useful for manifests with no
// overlay content and for tests that only exercise the engine pipeline.
type NopPackageInstaller struct{}

func (NopPackageInstaller) InstallPackage(context.Context, core.PackageManifest, string) ([]DeferredAction, error) {
	return nil, nil
}

// Orchestrator wires C4 (resolve) + C5 (plan) + C6 (download) together
// behind the §4.7 phase sequence.
type Orchestrator struct {
	Client     *http.Client
	Config     core.ConfigView
	Downloader *downloader.Downloader
}

// NewOrchestrator builds an Orchestrator using the interactive-update
// downloader configuration (small pool, no throttling).
func NewOrchestrator(client *http.Client, cfg core.ConfigView) *Orchestrator {
	return &Orchestrator{
		Client:     client,
		Config:     cfg,
		Downloader: downloader.NewForUpdate(client),
	}
}

// decision is the outcome of the §4.7 update-decision table.
type decision int

const (
	decisionNoop decision = iota
	decisionUpdate
)

// decide implements the update-decision table, in the same order as the
// original Updater.call(): the offline/required check comes first, then
// capability, then desire.
func decide(instance core.Instance, online bool) (decision, error) {
	updateRequired := !instance.Installed
	updateDesired := instance.UpdatePending || updateRequired
	updateCapable := instance.ManifestURL != ""

	if !online && updateRequired {
		return decisionNoop, core.ErrUpdateRequiredOffline
	}
	if updateDesired && !updateCapable {
		if updateRequired {
			return decisionNoop, core.ErrUpdateRequiredNoURL
		}
		return decisionNoop, nil
	}
	if updateDesired {
		return decisionUpdate, nil
	}
	return decisionNoop, nil
}

// Params bundles one Update call's inputs -- the instance, its package
// manifest, where the shared launcher pool lives on disk, and the
// collaborators the core pipeline doesn't own.
type Params struct {
	Instance     core.Instance
	Manifest     core.PackageManifest
	LauncherRoot string
	VersionPath  string
	Persistence  core.Persistence
	PackageInstaller PackageInstaller
	Online       bool
	Report       progress.Sink
}

// Update runs the full §4.7 phase sequence, or returns the instance
// unchanged for the table's no-op rows. Report, if non-nil, receives
// progress composed across the download phase ([0, 0.98]) and the install
// phases ([0.98, 1]), mirroring ProgressFilter.between(...) in the
// original.
func (o *Orchestrator) Update(ctx context.Context, p Params) (core.Instance, error) {
	instance := p.Instance

	action, err := decide(instance, p.Online)
	if err != nil {
		return instance, err
	}
	if action == decisionNoop {
		return instance, nil
	}

	persistence := p.Persistence
	if persistence == nil {
		persistence = core.NopPersistence{}
	}
	pkgInstaller := p.PackageInstaller
	if pkgInstaller == nil {
		pkgInstaller = NopPackageInstaller{}
	}
	report := p.Report
	if report == nil {
		report = func(float64, string) {}
	}

	// Step 1: mark local and commit before touching the network.
	instance.Local = true
	if err := persistence.Commit(instance); err != nil {
		return instance, err
	}

	report(-1, "reading package manifest")

	// Step 2: overlay installer, invoked synchronously before the instance
	// record is updated from the manifest.
	deferred, err := pkgInstaller.InstallPackage(ctx, p.Manifest, instance.ContentDir)
	if err != nil {
		return instance, err
	}

	// Step 3: apply manifest's high-level fields.
	if err := core.ValidateManifestVersion(p.Manifest); err != nil {
		return instance, err
	}
	instance.ApplyManifest(p.Manifest)

	report(-1, "reading version manifest")

	// Step 4: resolve the version manifest.
	vm, err := core.ResolveVersionManifest(ctx, o.Client, o.Config, p.Manifest, p.VersionPath)
	if err != nil {
		return instance, err
	}

	report(-1, "building download list")

	// Step 5a: plan client/libraries/asset-index.
	plan, err := core.PlanCore(o.Config, p.Manifest, vm, p.LauncherRoot)
	if err != nil {
		return instance, err
	}

	tasks := append([]core.DownloadTask{plan.Client}, plan.Libraries...)
	if plan.AssetIndex != nil {
		tasks = append(tasks, *plan.AssetIndex)
	}

	// The asset index must land on disk before its objects can be planned
	// (§5 ordering guarantees), so it's downloaded in its own sub-phase
	// ahead of everything else that doesn't depend on it. Running it first
	// keeps the dependency explicit without a second full download pass.
	indexTasks, coreTasks := splitIndexFirst(tasks, plan.AssetIndex)

	downloadSink := progress.Filter(0, 0.98, report)
	if len(indexTasks) > 0 {
		if err := o.Downloader.Run(ctx, indexTasks, progress.Filter(0, 0.05, downloadSink)); err != nil {
			return instance, err
		}
	}

	var assetTasks []core.DownloadTask
	if plan.AssetIndex != nil {
		index, err := readAssetsIndex(plan.AssetIndex.TargetPath)
		if err != nil {
			return instance, err
		}
		assetTasks, err = core.PlanAssetObjectTasks(o.Config, index, p.LauncherRoot)
		if err != nil {
			return instance, err
		}
	}

	allRemaining := append(coreTasks, assetTasks...)
	if err := o.Downloader.Run(ctx, allRemaining, progress.Filter(0.05, 1, downloadSink)); err != nil {
		return instance, err
	}

	// Step 6: install phase, then late install phase. Natives registered
	// during planning run alongside whatever the overlay installer deferred.
	nativesDir := filepath.Join(instance.ContentDir, "natives")
	deferred = append(deferred, PlanNativesExtraction(vm, p.LauncherRoot, nativesDir)...)

	installSink := progress.Filter(0.98, 1, report)
	installSink(0, "installing")
	for _, da := range deferred {
		if err := da.Apply(ctx); err != nil {
			return instance, err
		}
	}
	installSink(1, "installing")

	// Step 7: finalize (flush bookkeeping). The core pipeline has no cache
	// of its own to flush; this is the seam late-install collaborators use.

	// Step 8: final instance record.
	instance.Version = p.Manifest.Version
	instance.Installed = true
	instance.UpdatePending = false
	instance.Local = true
	if err := persistence.Commit(instance); err != nil {
		return instance, err
	}

	report(1, "up to date")
	return instance, nil
}

// splitIndexFirst pulls the asset-index task (if present) out of tasks so
// it can be downloaded ahead of everything else.
func splitIndexFirst(tasks []core.DownloadTask, assetIndex *core.DownloadTask) (indexTasks, rest []core.DownloadTask) {
	if assetIndex == nil {
		return nil, tasks
	}
	for _, t := range tasks {
		if t.TargetPath == assetIndex.TargetPath {
			indexTasks = append(indexTasks, t)
		} else {
			rest = append(rest, t)
		}
	}
	return indexTasks, rest
}
