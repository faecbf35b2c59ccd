package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var updateDryRun bool

var updateCmd = &cobra.Command{
	Use:   "update [<app>...]",
	Short: "Update installed applications (all catalog apps when none given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		apps, err := resolveApps(args)
		if err != nil {
			return err
		}

		inst := newInstaller()
		var errs []error
		for _, app := range apps {
			if err := runWorkflow(cmd.Context(), inst, app, updateDryRun); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Show what would happen without installing")
}
