package sync

import (
	"context"
	"time"

	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/feature/sync/models"
	"hubspot-bridge/feature/sync/store"

	"go.uber.org/zap"
)

// Service reconciles CMS rows with their CRM counterparts. Per entity it
// runs an identity check, a conditional identity write, an attribute
// fetch and a conditional attribute push. Push rejections are isolated
// per entity; only storage and transport failures abort a batch.
type Service struct {
	store  *store.Store
	hub    hubspot.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new sync service.
func NewService(st *store.Store, hub hubspot.Client, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// ProcessPayloads runs every payload through the engine sequentially.
// It returns the number of payloads that completed without a rejected
// push; the first storage or transport error aborts the remainder.
func (s *Service) ProcessPayloads(ctx context.Context, payloads []map[string]any) (int, error) {
	processed := 0
	for _, payload := range payloads {
		ok, err := s.ProcessEntity(ctx, payload)
		if err != nil {
			return processed, err
		}
		if ok {
			processed++
		}
	}
	return processed, nil
}

// ProcessEntity syncs a single raw payload. Records with unresolvable
// keys are skipped, never failed. The returned bool is false when the
// CRM rejected the property push for this entity.
func (s *Service) ProcessEntity(ctx context.Context, payload map[string]any) (bool, error) {
	return s.process(ctx, DetectEntityType(payload), payload)
}

// process runs the engine with an already resolved entity type. Sweep
// callers know the type from the collection they searched; webhook
// callers go through detection first.
func (s *Service) process(ctx context.Context, entityType models.EntityType, payload map[string]any) (bool, error) {
	ref, externalID := ExtractKeys(payload)

	if ref == "" || externalID == "" {
		s.logger.Info("Skipping record with incomplete identifying fields",
			zap.String("entity_type", entityType.String()),
			zap.String("reference", ref),
			zap.String("external_id", externalID),
		)
		return true, nil
	}

	if entityType != models.EntityUnknown {
		if err := s.syncIdentity(ctx, ref, entityType, externalID); err != nil {
			return false, err
		}
	} else {
		s.logger.Info("Entity type unresolved, syncing timestamp only",
			zap.String("reference", ref),
			zap.String("external_id", externalID),
		)
	}

	return s.syncAttributes(ctx, entityType, externalID)
}

// syncIdentity stores the CRM record id against the CMS reference number
// unless the stored id already matches. A reference with no matching CMS
// row is logged, not failed.
func (s *Service) syncIdentity(ctx context.Context, ref string, entityType models.EntityType, externalID string) error {
	current, err := s.store.LinkedExternalID(ctx, ref, entityType)
	if err != nil {
		return err
	}
	if current == externalID {
		s.logger.Debug("Identity link already in sync",
			zap.String("entity_type", entityType.String()),
			zap.String("reference", ref),
		)
		return nil
	}

	rows, err := s.store.SetLinkedExternalID(ctx, ref, entityType, externalID)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Warn("Reference number not present in CMS",
			zap.String("entity_type", entityType.String()),
			zap.String("reference", ref),
		)
		return nil
	}

	s.logger.Info("Identity link updated",
		zap.String("entity_type", entityType.String()),
		zap.String("reference", ref),
		zap.String("external_id", externalID),
	)
	return nil
}

// syncAttributes pushes the normalized CMS snapshot to the CRM. When the
// entity type is unresolved only the sync timestamp is pushed. A missing
// CMS row skips the push silently.
func (s *Service) syncAttributes(ctx context.Context, entityType models.EntityType, externalID string) (bool, error) {
	var properties map[string]any

	switch entityType {
	case models.EntityCompany:
		record, err := s.store.FetchCompany(ctx, externalID)
		if err != nil {
			return false, err
		}
		if record == nil {
			s.logger.Info("No company row for CRM record, skipping attribute push",
				zap.String("external_id", externalID))
			return true, nil
		}
		properties = record.Properties()
	case models.EntityContact:
		record, err := s.store.FetchContact(ctx, externalID)
		if err != nil {
			return false, err
		}
		if record == nil {
			s.logger.Info("No contact row for CRM record, skipping attribute push",
				zap.String("external_id", externalID))
			return true, nil
		}
		properties = record.Properties()
	default:
		properties = map[string]any{}
	}

	properties["cms_last_synced"] = models.DayStartEpochMillis(s.now())

	result, err := s.hub.UpdateProperties(ctx, entityType.ObjectType(), externalID, properties)
	if err != nil {
		return false, err
	}
	if !result.OK {
		s.logger.Error("CRM rejected property push",
			zap.String("entity_type", entityType.String()),
			zap.String("external_id", externalID),
			zap.Int("status", result.StatusCode),
			zap.String("body", result.Body),
		)
		return false, nil
	}

	s.logger.Info("Attributes pushed",
		zap.String("entity_type", entityType.String()),
		zap.String("external_id", externalID),
		zap.Int("property_count", len(properties)),
	)
	return true, nil
}
