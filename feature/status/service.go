package status

import (
	"context"

	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/core/storage"
	"hubspot-bridge/core/version"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service probes the dependencies the sync engine needs to do useful
// work.
type Service struct {
	db            *gorm.DB
	hubCfg        hubspot.Config
	archiveClient storage.Client
	archiveBucket string
	logger        *zap.Logger
}

// NewService creates a new status service. archiveClient may be nil
// when payload archiving is disabled.
func NewService(db *gorm.DB, hubCfg hubspot.Config, archiveClient storage.Client, archiveBucket string, logger *zap.Logger) *Service {
	return &Service{
		db:            db,
		hubCfg:        hubCfg,
		archiveClient: archiveClient,
		archiveBucket: archiveBucket,
		logger:        logger,
	}
}

// Report describes the reachability of each dependency.
type Report struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	HubSpot  string `json:"hubspot"`
	Archive  string `json:"archive"`
}

// Check probes every dependency and aggregates the result. A single
// degraded dependency degrades the overall status.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:  "ok",
		Version: version.Version,
	}

	report.Database = s.checkDatabase(ctx)
	if report.Database != "ok" {
		report.Status = "degraded"
	}

	if s.hubCfg.IsConfigured() {
		report.HubSpot = "configured"
	} else {
		report.HubSpot = "unconfigured"
		report.Status = "degraded"
	}

	report.Archive = s.checkArchive(ctx)
	if report.Archive == "unreachable" {
		report.Status = "degraded"
	}

	return report
}

func (s *Service) checkDatabase(ctx context.Context) string {
	sqlDB, err := s.db.DB()
	if err != nil {
		s.logger.Error("Failed to obtain database handle", zap.Error(err))
		return "unreachable"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		s.logger.Error("Database ping failed", zap.Error(err))
		return "unreachable"
	}
	return "ok"
}

func (s *Service) checkArchive(ctx context.Context) string {
	if s.archiveClient == nil {
		return "disabled"
	}
	exists, err := s.archiveClient.BucketExists(ctx, s.archiveBucket)
	if err != nil {
		s.logger.Error("Archive bucket probe failed", zap.Error(err))
		return "unreachable"
	}
	if !exists {
		return "unreachable"
	}
	return "ok"
}
