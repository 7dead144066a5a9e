package status

import (
	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new status feature.
func NewFeature(db *gorm.DB, hubCfg hubspot.Config, archiveClient storage.Client, archiveBucket string, logger *zap.Logger) *Feature {
	svc := NewService(db, hubCfg, archiveClient, archiveBucket, logger)
	return &Feature{handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "status"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
