package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hubspot-bridge/core/config"
	"hubspot-bridge/core/database"
	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/core/loader"
	"hubspot-bridge/core/logger"
	"hubspot-bridge/core/middleware/auth"
	"hubspot-bridge/core/middleware/rayid"
	"hubspot-bridge/core/storage"
	"hubspot-bridge/core/version"
	"hubspot-bridge/feature/status"
	"hubspot-bridge/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "hubspot-bridge/docs/swagger"
)

// @title HubSpot Bridge API
// @version 1.0
// @description CMS to HubSpot synchronization service.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server serving the webhook and batch sync endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		logg = logg.With(zap.String("version", version.Version))
		zap.ReplaceGlobals(logg)

		// 3. Connect to the CMS Database (Required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to CMS database", zap.Error(err))
		}
		logg.Info("Connected to CMS database")

		// 4. Initialize CRM Client
		if !cfg.HubSpot.IsConfigured() {
			logg.Warn("HubSpot access token not configured, pushes will be rejected")
		}
		hub := hubspot.NewClient(cfg.HubSpot, logg)

		// 5. Initialize Payload Archive (Optional)
		var archiveClient storage.Client
		if cfg.Archive.Enabled {
			archiveClient, err = storage.NewClient(cfg.Archive)
			if err != nil {
				logg.Fatal("Failed to create archive storage client", zap.Error(err))
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Register Features
		mgr := loader.NewManager()
		syncFeature := sync.NewFeature(db, hub, archiveClient, cfg.Archive.Bucket, logg)
		mgr.Register(syncFeature)
		mgr.Register(status.NewFeature(db, cfg.HubSpot, archiveClient, cfg.Archive.Bucket, logg))

		if cfg.Archive.Enabled {
			if err := syncFeature.EnsureArchive(context.Background()); err != nil {
				logg.Fatal("Failed to prepare archive bucket", zap.Error(err))
			}
		}

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
