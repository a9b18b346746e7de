// Package cmd wires the cobra CLI: a root command plus the update and
// mirror subcommands, following the teacher's rootCmd/persistent-flags
// shape (cmd/init.go, cmd/update.go) even though the underlying domain is
// now instance updates rather than modpack files.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/instanceupdater/internal/cliutil"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "instanceupdater",
	Short:         "Resolve, plan and download updates for a game instance",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to updater.toml (defaults to no file, env/defaults only)")
}

// Execute runs the root command, exiting with status 1 on a returned
// error -- the teacher's Exitln pattern rather than letting cobra print
// its own usage-wrapped error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cliutil.Exitln(err)
	}
}

func bindConfig(v *viper.Viper) {
	v.SetConfigType("toml")
	v.SetEnvPrefix("instanceupdater")
	v.AutomaticEnv()
	v.SetDefault("librariesSource", "https://libraries.minecraft.net/")
	v.SetDefault("assetsSource", "https://resources.download.minecraft.net/")
	v.SetDefault("versionManifestUrl", "https://launchermeta.mojang.com/mc/game/version_manifest.json")
	v.SetDefault("customSourcesFirst", "false")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			cliutil.Exitf("reading config %s: %v\n", configPath, err)
		}
	}
}
