package install

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/appfetch/appfetch/pkg/update"
)

const recordName = "installed.json"

// Record is the installed-version metadata kept per app.
type Record struct {
	Version     string    `json:"version"`
	AssetName   string    `json:"assetName,omitempty"`
	InstalledAt time.Time `json:"installedAt"`
}

// InstalledVersion probes the local metadata for an app. A missing or
// unreadable record yields the update.NotInstalled sentinel rather than an
// error: "not installed" is a normal state, not a failure.
func (i *Installer) InstalledVersion(id string) string {
	rec, err := readRecord(i.appDir(id))
	if err != nil || rec.Version == "" {
		return update.NotInstalled
	}
	return rec.Version
}

func readRecord(appDir string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(appDir, recordName)) // #nosec G304 -- appDir under install prefix
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func writeRecord(appDir string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(appDir, recordName), append(data, '\n'), 0o644)
}
