package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/appfetch/appfetch/internal/install"
	"github.com/appfetch/appfetch/pkg/logging"
)

var (
	verbosity int
	rootDir   string

	rootCmd = &cobra.Command{
		Use:   "appfetch",
		Short: "Install, update, and launch desktop applications",
		Long: `appfetch downloads, installs, and updates third-party desktop
applications into a per-user prefix, and launches them with arguments
assembled from flag-configuration files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Install prefix (default: XDG data directory)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(statusCmd)
}

func newInstaller() *install.Installer {
	root := rootDir
	if root == "" {
		root = install.DefaultRoot()
	}
	return install.New(root, logging.GetLogger("install"))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("appfetch version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}
