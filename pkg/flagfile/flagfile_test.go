package flagfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFlagFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLoader() *Loader {
	return NewLoader(zerolog.Nop())
}

func TestLoadQuotedTokens(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "code-flags.conf", `--foo "bar baz" --flag`+"\n")

	got := newTestLoader().Load([]string{path}, "", nil)
	assert.Equal(t, []string{"--foo", "bar baz", "--flag"}, got)
}

func TestLoadCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "flags.conf", strings.Join([]string{
		"# a comment",
		"   # indented comment",
		"",
		"   ",
		"--enable-features=UseOzonePlatform",
		"",
	}, "\n"))

	got := newTestLoader().Load([]string{path}, "", nil)
	assert.Equal(t, []string{"--enable-features=UseOzonePlatform"}, got)
}

func TestLoadDropsCommandSubstitution(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "flags.conf", strings.Join([]string{
		"--before",
		"--evil=$(rm -rf /)",
		"`rm -rf /`",
		"--after",
	}, "\n"))

	got := newTestLoader().Load([]string{path}, "", nil)
	assert.Equal(t, []string{"--before", "--after"}, got)
	for _, tok := range got {
		assert.NotContains(t, tok, "rm -rf /")
	}
}

func TestLoadDropsUnterminatedQuote(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "flags.conf", "--ok\n--bad \"unterminated\n--also-ok\n")

	got := newTestLoader().Load([]string{path}, "", nil)
	assert.Equal(t, []string{"--ok", "--also-ok"}, got)
}

func TestLoadConcatenationOrder(t *testing.T) {
	dir := t.TempDir()
	system := writeFlagFile(t, dir, "system.conf", "--system\n")
	user := writeFlagFile(t, dir, "user.conf", "--user\n")

	got := newTestLoader().Load([]string{system, user}, "--env-flag", []string{"--cli", "positional arg"})
	assert.Equal(t, []string{"--system", "--user", "--env-flag", "--cli", "positional arg"}, got)
}

func TestLoadMissingFileSkipped(t *testing.T) {
	dir := t.TempDir()
	present := writeFlagFile(t, dir, "present.conf", "--present\n")
	missing := filepath.Join(dir, "does-not-exist.conf")

	got := newTestLoader().Load([]string{missing, present}, "", nil)
	assert.Equal(t, []string{"--present"}, got)
}

func TestLoadEnvValueQuoteAware(t *testing.T) {
	got := newTestLoader().Load(nil, `--profile "work stuff"`, nil)
	assert.Equal(t, []string{"--profile", "work stuff"}, got)
}

func TestLoadEnvValueWithSubstitutionDropped(t *testing.T) {
	got := newTestLoader().Load(nil, "--x $(whoami)", []string{"--cli"})
	assert.Equal(t, []string{"--cli"}, got)
}

func TestLoadCliArgsVerbatim(t *testing.T) {
	// CLI args are never filtered or re-split, even when they look unsafe.
	cli := []string{"--note=$(literal)", "has space"}
	got := newTestLoader().Load(nil, "", cli)
	assert.Equal(t, cli, got)
}

func TestLoadEmptyInputs(t *testing.T) {
	got := newTestLoader().Load(nil, "", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadEscapedWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "flags.conf", `--path=/tmp/my\ dir 'single quoted'`+"\n")

	got := newTestLoader().Load([]string{path}, "", nil)
	assert.Equal(t, []string{"--path=/tmp/my dir", "single quoted"}, got)
}
