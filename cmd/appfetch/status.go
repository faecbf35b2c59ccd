package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/appfetch/appfetch/internal/source"
	"github.com/appfetch/appfetch/pkg/update"
)

var statusCmd = &cobra.Command{
	Use:   "status [<app>...]",
	Short: "Show installed and latest versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		apps, err := resolveApps(args)
		if err != nil {
			return err
		}

		inst := newInstaller()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "APP\tINSTALLED\tLATEST\tSTATUS")

		for _, app := range apps {
			installed := inst.InstalledVersion(app.ID)

			src, err := source.ForApp(app)
			if err != nil {
				return err
			}
			rel, err := src.Resolve(cmd.Context())
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\t?\t%v\n", app.ID, installed, err)
				continue
			}

			decision, _ := update.Decide(rel.Version, installed)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				app.ID, installed, rel.Version, update.DescribeDecision(decision))
		}
		return w.Flush()
	},
}
