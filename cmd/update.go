package cmd

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/instanceupdater/core"
	"github.com/leocov-dev/instanceupdater/installer"
	"github.com/leocov-dev/instanceupdater/internal/cliutil"
	"github.com/leocov-dev/instanceupdater/internal/instancestore"
	"github.com/leocov-dev/instanceupdater/internal/progress"
)

var (
	updateInstanceDir  string
	updateLauncherRoot string
	updateOnline       bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Bring a local instance up to date with its package manifest",
	Run:   runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateInstanceDir, "instance", ".", "instance directory (holds instance.toml and overlay content)")
	updateCmd.Flags().StringVar(&updateLauncherRoot, "launcher-root", "launcher", "shared launcher pool directory (client jars, libraries, assets)")
	updateCmd.Flags().BoolVar(&updateOnline, "online", true, "whether network access is available for this run")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(_ *cobra.Command, _ []string) {
	ctx := context.Background()

	v := viper.New()
	bindConfig(v)
	cfg := core.NewConfigView(v)

	store := instancestore.New(filepath.Join(updateInstanceDir, "instance.toml"))
	instance, err := store.Load()
	if err != nil {
		cliutil.Exitf("loading instance: %v\n", err)
	}

	client := http.DefaultClient

	var manifest core.PackageManifest
	if instance.ManifestURL != "" {
		manifest, err = core.FetchPackageManifest(ctx, client, instance.ManifestURL)
		if err != nil {
			cliutil.Exitf("fetching package manifest: %v\n", err)
		}
	}

	contentDir := instance.ContentDir
	if contentDir == "" {
		contentDir = updateInstanceDir
	}

	renderer := progress.NewRenderer()
	bar := progress.NewBar(renderer, instance.Name)

	orch := installer.NewOrchestrator(client, cfg)
	updated, err := orch.Update(ctx, installer.Params{
		Instance:     instance,
		Manifest:     manifest,
		LauncherRoot: updateLauncherRoot,
		VersionPath:  filepath.Join(contentDir, "version.json"),
		Persistence:  store,
		Online:       updateOnline,
		Report:       bar.Sink(),
	})
	bar.Complete()
	renderer.Wait()
	if err != nil {
		cliutil.Exitf("update failed: %v\n", err)
	}

	cliutil.Printlnf("%s is up to date (version %s)", updated.Name, updated.Version)
}
