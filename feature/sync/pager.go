package sync

import (
	"context"

	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/feature/sync/models"

	"go.uber.org/zap"
)

// SyncAll sweeps both CRM collections, companies first, feeding every
// discovered record through the engine. The first uncaught error aborts
// the sweep; entities already processed stay committed.
func (s *Service) SyncAll(ctx context.Context) error {
	for _, entityType := range []models.EntityType{models.EntityCompany, models.EntityContact} {
		if err := s.SyncEntityType(ctx, entityType); err != nil {
			return err
		}
	}
	return nil
}

// SyncEntityType pages through the CRM search endpoint for one entity
// type. Every page, including a final short one, goes through the
// engine; the sweep stops after a page with fewer than 100 results.
func (s *Service) SyncEntityType(ctx context.Context, entityType models.EntityType) error {
	pages := 0
	total := 0

	for offset := 0; ; offset += hubspot.PageSize {
		results, err := s.hub.Search(ctx, entityType.ObjectType(), entityType.SearchProperty(), offset)
		if err != nil {
			return err
		}
		pages++
		total += len(results)

		for _, result := range results {
			if _, err := s.process(ctx, entityType, result.Payload()); err != nil {
				return err
			}
		}

		if len(results) < hubspot.PageSize {
			break
		}
	}

	s.logger.Info("Sweep completed",
		zap.String("entity_type", entityType.String()),
		zap.Int("pages", pages),
		zap.Int("records", total),
	)
	return nil
}
