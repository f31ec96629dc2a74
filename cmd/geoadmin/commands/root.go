package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

var configPath string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "geoadmin",
		Short:        "Admin UI for countries, nations and cities",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.AddCommand(serveCmd(), versionCmd())
	return root
}

func Execute() error {
	return rootCmd().Execute()
}
