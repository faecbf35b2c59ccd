package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogValidates(t *testing.T) {
	apps, err := Apps()
	require.NoError(t, err)
	require.NotEmpty(t, apps)

	for _, app := range apps {
		assert.NotEmpty(t, app.ID)
		assert.NotEmpty(t, app.Binary)
		assert.NotEmpty(t, app.FlagFile)
		assert.NotEmpty(t, app.FlagsEnv)
		switch app.Source.Type {
		case "github":
			assert.NotEmpty(t, app.Source.Repo, "github source for %s needs a repo", app.ID)
		case "endpoint":
			assert.NotEmpty(t, app.Source.URL, "endpoint source for %s needs a url", app.ID)
		default:
			t.Errorf("app %s has unsupported source type %q", app.ID, app.Source.Type)
		}
	}
}

func TestLookup(t *testing.T) {
	app, err := Lookup("code")
	require.NoError(t, err)
	assert.Equal(t, "Visual Studio Code", app.Name)

	_, err = Lookup("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known apps")
	assert.Contains(t, err.Error(), "brave")
}

func TestValidateAgainstSchemaRejectsBadDoc(t *testing.T) {
	err := validateAgainstSchema([]byte(`{"schema":"appfetch/catalog","version":0,"apps":[]}`))
	require.Error(t, err)
}
