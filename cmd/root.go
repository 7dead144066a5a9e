package cmd

import (
	"fmt"
	"os"

	"hubspot-bridge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "hubspot-bridge",
	Short: "CMS to HubSpot sync service",
	Long: `hubspot-bridge keeps CRM contacts and companies aligned with the CMS.
It accepts HubSpot webhook pushes and runs full paginated sweeps,
reconciling identity links and pushing normalized CMS attributes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level so CLI errors come out readable
		// with ISO8601 timestamps rather than epoch.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
