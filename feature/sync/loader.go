package sync

import (
	"context"

	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/core/storage"
	"hubspot-bridge/feature/sync/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new sync feature. archiveClient may be nil when
// payload archiving is disabled.
func NewFeature(db *gorm.DB, hub hubspot.Client, archiveClient storage.Client, archiveBucket string, logger *zap.Logger) *Feature {
	svc := NewService(store.New(db), hub, logger)

	var archive *PayloadArchive
	if archiveClient != nil {
		archive = NewPayloadArchive(archiveClient, archiveBucket, logger)
	}

	h := NewHandler(svc, archive)
	return &Feature{service: svc, handler: h}
}

// Service exposes the engine for non-HTTP callers such as the one-shot
// sweep command.
func (f *Feature) Service() *Service {
	return f.service
}

// EnsureArchive creates the archive bucket when archiving is enabled.
func (f *Feature) EnsureArchive(ctx context.Context) error {
	if f.handler.archive == nil {
		return nil
	}
	return f.handler.archive.EnsureBucket(ctx)
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
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
