package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"hubspot-bridge/core/config"
	"hubspot-bridge/core/database"
	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/core/logger"
	"hubspot-bridge/core/version"
	"hubspot-bridge/feature/sync"
	"hubspot-bridge/feature/sync/models"
	"hubspot-bridge/feature/sync/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncOnly string

// syncCmd runs one full sweep and exits, for cron-style scheduling
// instead of the long-lived server.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot sync sweep and exit",
	Long:  `Pages through CRM companies and contacts once, syncing every record, then exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		logg = logg.With(zap.String("version", version.Version))

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to CMS database: %w", err)
		}

		if !cfg.HubSpot.IsConfigured() {
			return fmt.Errorf("hubspot access token not configured")
		}
		hub := hubspot.NewClient(cfg.HubSpot, logg)

		svc := sync.NewService(store.New(db), hub, logg)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		switch syncOnly {
		case "":
			return svc.SyncAll(ctx)
		case "companies":
			return svc.SyncEntityType(ctx, models.EntityCompany)
		case "contacts":
			return svc.SyncEntityType(ctx, models.EntityContact)
		default:
			return fmt.Errorf("unknown entity type %q, expected companies or contacts", syncOnly)
		}
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncOnly, "only", "", "sweep a single collection (companies or contacts)")
	RootCmd.AddCommand(syncCmd)
}
