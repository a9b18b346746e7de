package installer

import (
	"encoding/json"
	"os"

	"github.com/leocov-dev/instanceupdater/core"
)

// readAssetsIndex loads the asset index document the download phase just
// wrote to disk, so its objects can be planned as a second wave of tasks
// (§4.5 "after the asset index body is available").
func readAssetsIndex(path string) (core.AssetsIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.AssetsIndex{}, err
	}
	var index core.AssetsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return core.AssetsIndex{}, err
	}
	return index, nil
}
