package main

import (
	"github.com/spf13/cobra"

	"github.com/appfetch/appfetch/internal/catalog"
)

var installCmd = &cobra.Command{
	Use:   "install <app>",
	Short: "Install an application from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}
		return runWorkflow(cmd.Context(), newInstaller(), app, false)
	},
}
