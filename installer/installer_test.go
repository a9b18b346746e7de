package installer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leocov-dev/instanceupdater/core"
)

func TestDecideTable(t *testing.T) {
	cases := []struct {
		name      string
		instance  core.Instance
		online    bool
		wantAct   decision
		wantErr   error
	}{
		{"fresh install online", core.Instance{Installed: false, ManifestURL: "x"}, true, decisionUpdate, nil},
		{"pending update", core.Instance{Installed: true, UpdatePending: true, ManifestURL: "x"}, true, decisionUpdate, nil},
		{"up to date", core.Instance{Installed: true, UpdatePending: false}, true, decisionNoop, nil},
		{"required, no manifest", core.Instance{Installed: false, ManifestURL: ""}, true, decisionNoop, core.ErrUpdateRequiredNoURL},
		{"required, offline", core.Instance{Installed: false, ManifestURL: "x"}, false, decisionNoop, core.ErrUpdateRequiredOffline},
		{"pending, no manifest, not required", core.Instance{Installed: true, UpdatePending: true, ManifestURL: ""}, true, decisionNoop, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			act, err := decide(c.instance, c.online)
			assert.Equal(t, c.wantAct, act)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type recordingPersistence struct {
	commits []core.Instance
}

func (r *recordingPersistence) Commit(i core.Instance) error {
	r.commits = append(r.commits, i)
	return nil
}

func TestOrchestratorUpdateEndToEnd(t *testing.T) {
	const gameVersion = "1.20.1"

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/version_manifest.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"versions": []map[string]string{
				{"id": gameVersion, "url": srv.URL + "/versions/1.20.1.json"},
			},
		})
	})
	mux.HandleFunc("/versions/1.20.1.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":     gameVersion,
			"assets": "legacy",
			"downloads": map[string]any{
				"client": map[string]any{"url": srv.URL + "/client.jar", "sha1": "", "size": 7},
			},
			"libraries": []any{},
		})
	})
	mux.HandleFunc("/client.jar", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jarbody"))
	})

	v := viper.New()
	v.SetDefault("versionManifestUrl", srv.URL+"/version_manifest.json")
	v.SetDefault("librariesSource", srv.URL+"/libraries/")
	v.SetDefault("assetsSource", srv.URL+"/assets/")
	v.SetDefault("customSourcesFirst", "false")
	cfgWithURLs := core.NewConfigView(v)

	dir := t.TempDir()
	persistence := &recordingPersistence{}

	orch := NewOrchestrator(srv.Client(), cfgWithURLs)

	instance := core.Instance{
		Name:        "demo",
		ContentDir:  filepath.Join(dir, "content"),
		ManifestURL: srv.URL + "/manifest.json",
		Installed:   false,
	}
	manifest := core.PackageManifest{
		Version:     "1.0.0",
		GameVersion: gameVersion,
	}

	result, err := orch.Update(context.Background(), Params{
		Instance:     instance,
		Manifest:     manifest,
		LauncherRoot: dir,
		VersionPath:  filepath.Join(dir, "version.json"),
		Persistence:  persistence,
		Online:       true,
	})
	require.NoError(t, err)
	assert.True(t, result.Installed)
	assert.False(t, result.UpdatePending)
	assert.Equal(t, "1.0.0", result.Version)

	data, err := os.ReadFile(filepath.Join(dir, "versions", gameVersion+"-client.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jarbody", string(data))

	require.Len(t, persistence.commits, 2)
	assert.True(t, persistence.commits[len(persistence.commits)-1].Installed)
}
