package cmd

import (
	"context"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/instanceupdater/core"
	"github.com/leocov-dev/instanceupdater/internal/cliutil"
	"github.com/leocov-dev/instanceupdater/internal/progress"
	"github.com/leocov-dev/instanceupdater/mirror"
)

var (
	mirrorVersions string
	mirrorOutput   string
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Build a standalone mirror of the client jar, libraries and assets for a set of game versions",
	Run:   runMirror,
}

func init() {
	mirrorCmd.Flags().StringVar(&mirrorVersions, "versions", "", "comma-separated list of game versions to mirror")
	mirrorCmd.Flags().StringVar(&mirrorOutput, "output", "mirror", "output directory for the mirrored layout")
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(_ *cobra.Command, _ []string) {
	ctx := context.Background()

	versions := splitCSV(mirrorVersions)
	if len(versions) == 0 {
		cliutil.Exitln("mirror: --versions must list at least one game version")
	}

	v := viper.New()
	bindConfig(v)
	cfg := core.NewConfigView(v)

	client := http.DefaultClient
	builder := mirror.NewBuilder(client, cfg, mirrorOutput)
	builder.Log = cliutil.Printlnf

	renderer := progress.NewRenderer()
	bar := progress.NewBar(renderer, "mirror")

	err := builder.BuildVersions(ctx, versions, bar.Sink())
	bar.Complete()
	renderer.Wait()
	if err != nil {
		cliutil.Exitf("mirror failed: %v\n", err)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
