// Package launch starts installed applications with arguments assembled from
// flag-configuration files, an environment variable, and the caller's own
// arguments.
package launch

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/appfetch/appfetch/internal/catalog"
	"github.com/appfetch/appfetch/internal/install"
	"github.com/appfetch/appfetch/pkg/flagfile"
)

// DefaultSystemFlagDir holds administrator-managed flag files.
const DefaultSystemFlagDir = "/etc/appfetch"

type Launcher struct {
	installer *install.Installer
	loader    *flagfile.Loader
	systemDir string
	log       zerolog.Logger
}

func New(installer *install.Installer, log zerolog.Logger) *Launcher {
	return &Launcher{
		installer: installer,
		loader:    flagfile.NewLoader(log),
		systemDir: DefaultSystemFlagDir,
		log:       log,
	}
}

// FlagFilePaths returns the flag files consulted for an app, system file
// first so user settings win when the wrapped binary treats later flags as
// overriding earlier ones.
func (l *Launcher) FlagFilePaths(app *catalog.App) []string {
	return []string{
		filepath.Join(l.systemDir, app.FlagFile),
		filepath.Join(xdg.ConfigHome, "appfetch", app.FlagFile),
	}
}

// BuildArgs assembles the full launch argument list. Flag files are re-read
// on every call so edits apply to the next launch without reinstalling.
func (l *Launcher) BuildArgs(app *catalog.App, cliArgs []string) []string {
	return l.loader.Load(l.FlagFilePaths(app), os.Getenv(app.FlagsEnv), cliArgs)
}

// Launch resolves the installed binary and execs into it with the assembled
// arguments. On success (on Linux) it does not return.
func (l *Launcher) Launch(app *catalog.App, cliArgs []string) error {
	binary, err := l.installer.BinaryPath(app)
	if err != nil {
		return err
	}
	args := l.BuildArgs(app, cliArgs)
	l.log.Debug().Str("app", app.ID).Str("binary", binary).Strs("args", args).Msg("Launching")
	return execBinary(binary, args)
}
