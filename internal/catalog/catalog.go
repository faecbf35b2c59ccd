// Package catalog holds the built-in catalog of applications appfetch can
// install, update, and launch.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.json
var embeddedCatalogJSON []byte

//go:embed catalog.schema.json
var embeddedSchemaJSON []byte

// SourceConfig defines where release metadata for an app comes from.
type SourceConfig struct {
	Type          string   `json:"type"`                    // "github" or "endpoint"
	Repo          string   `json:"repo,omitempty"`          // owner/repo, github only
	URL           string   `json:"url,omitempty"`           // metadata URL, endpoint only
	AssetPatterns []string `json:"assetPatterns,omitempty"` // regexes selecting the release asset, github only
	MinisignKey   string   `json:"minisignKey,omitempty"`   // public key for signature verification, if published
}

// App describes one installable application.
type App struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Binary   string       `json:"binary"` // executable path relative to the extracted release root
	Source   SourceConfig `json:"source"`
	FlagFile string       `json:"flagFile"` // flag-configuration file basename
	FlagsEnv string       `json:"flagsEnv"` // environment variable carrying extra launch arguments
}

type catalogFile struct {
	Schema  string `json:"schema"`
	Version int    `json:"version"`
	Apps    []App  `json:"apps"`
}

var (
	loadOnce sync.Once
	loaded   *catalogFile
	loadErr  error
)

func load() (*catalogFile, error) {
	loadOnce.Do(func() {
		if err := validateAgainstSchema(embeddedCatalogJSON); err != nil {
			loadErr = err
			return
		}
		var cf catalogFile
		if err := json.Unmarshal(embeddedCatalogJSON, &cf); err != nil {
			loadErr = fmt.Errorf("parse embedded catalog: %w", err)
			return
		}
		loaded = &cf
	})
	return loaded, loadErr
}

func validateAgainstSchema(doc []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(embeddedSchemaJSON))
	if err != nil {
		return fmt.Errorf("parse embedded catalog schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("register catalog schema: %w", err)
	}
	schema, err := compiler.Compile("catalog.schema.json")
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("parse embedded catalog: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("invalid embedded catalog: %w", err)
	}
	return nil
}

// Apps returns every catalog entry, ordered by id.
func Apps() ([]App, error) {
	cf, err := load()
	if err != nil {
		return nil, err
	}
	apps := append([]App(nil), cf.Apps...)
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

// Lookup returns the catalog entry for id. Unknown ids produce an error
// naming the known apps.
func Lookup(id string) (*App, error) {
	cf, err := load()
	if err != nil {
		return nil, err
	}
	for i := range cf.Apps {
		if cf.Apps[i].ID == id {
			return &cf.Apps[i], nil
		}
	}
	known := make([]string, 0, len(cf.Apps))
	for _, app := range cf.Apps {
		known = append(known, app.ID)
	}
	sort.Strings(known)
	return nil, fmt.Errorf("unknown app %q (known apps: %s)", id, strings.Join(known, ", "))
}
