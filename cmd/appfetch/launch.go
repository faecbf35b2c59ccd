package main

import (
	"github.com/spf13/cobra"

	"github.com/appfetch/appfetch/internal/catalog"
	"github.com/appfetch/appfetch/internal/launch"
	"github.com/appfetch/appfetch/pkg/logging"
)

var launchCmd = &cobra.Command{
	Use:   "launch <app> [-- <args>...]",
	Short: "Launch an installed application with its configured flags",
	Long: `Launch starts an installed application. Its argument list is assembled
fresh on every launch: system flag file, then the user flag file, then the
app's flags environment variable, then any arguments after "--", in that
order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}
		launcher := launch.New(newInstaller(), logging.GetLogger("launch"))
		return launcher.Launch(app, args[1:])
	},
}
