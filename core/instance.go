package core

// Instance is the subset of the (externally owned) instance record the
// core update pipeline reads and mutates. The real persistence store is an
// out-of-scope collaborator (§1); Persistence is the seam the orchestrator
// commits through.
type Instance struct {
	Name          string
	Title         string
	ContentDir    string
	Version       string
	Features      []string
	Installed     bool
	UpdatePending bool
	Local         bool
	ManifestURL   string
}

// ApplyManifest copies a manifest's high-level, instance-facing fields onto
// the record (§4.7 step 3, "manifest.update(instance)" in the original
// updater).
func (i *Instance) ApplyManifest(manifest PackageManifest) {
	i.Version = manifest.Version
	i.Features = manifest.Features
}

// Persistence is the external collaborator that durably stores Instance
// records. The update pipeline never touches disk/db state for an
// instance directly -- it always goes through Commit.
type Persistence interface {
	Commit(Instance) error
}

// NopPersistence discards commits; useful for dry runs and tests that only
// care about the filesystem side effects.
type NopPersistence struct{}

func (NopPersistence) Commit(Instance) error { return nil }
