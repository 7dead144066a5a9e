package store

import (
	"context"
	"errors"
	"fmt"

	"hubspot-bridge/feature/sync/models"

	"gorm.io/gorm"
)

// Store provides access to the CMS tables the sync engine reads and
// writes. Every method issues a single context-scoped statement.
type Store struct {
	db *gorm.DB
}

// New creates a store over an established database connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FetchCompany reads the client snapshot for a CRM record id.
// A missing row returns (nil, nil); the caller treats it as a skip.
func (s *Store) FetchCompany(ctx context.Context, externalID string) (*models.CompanyRecord, error) {
	var row models.ClientRow
	err := s.db.WithContext(ctx).Where("hs_object_id = ?", externalID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch company %s: %w", externalID, err)
	}

	rec := row.ToRecord()
	return &rec, nil
}

// FetchContact reads the customer snapshot for a CRM record id.
// A missing row returns (nil, nil); the caller treats it as a skip.
func (s *Store) FetchContact(ctx context.Context, externalID string) (*models.ContactRecord, error) {
	var row models.CustomerRow
	err := s.db.WithContext(ctx).Where("hs_object_id = ?", externalID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch contact %s: %w", externalID, err)
	}

	rec := row.ToRecord()
	return &rec, nil
}

// LinkedExternalID reads the CRM record id currently linked to a CMS
// reference number. Absent rows and NULL links both return "".
func (s *Store) LinkedExternalID(ctx context.Context, referenceNumber string, entityType models.EntityType) (string, error) {
	switch entityType {
	case models.EntityContact:
		var link models.CustomerLink
		err := s.db.WithContext(ctx).Select("cst_hub_id").Where("cst_ref_no = ?", referenceNumber).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("read contact link %s: %w", referenceNumber, err)
		}
		if link.HubID == nil {
			return "", nil
		}
		return *link.HubID, nil
	case models.EntityCompany:
		var link models.CompanyLink
		err := s.db.WithContext(ctx).Select("com_hub_id").Where("com_map_id = ?", referenceNumber).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("read company link %s: %w", referenceNumber, err)
		}
		if link.HubID == nil {
			return "", nil
		}
		return *link.HubID, nil
	default:
		return "", fmt.Errorf("cannot read identity link for entity type %s", entityType)
	}
}

// SetLinkedExternalID writes the CRM record id for a CMS reference
// number and reports how many rows the update touched. Zero rows means
// the reference number does not exist in the CMS.
func (s *Store) SetLinkedExternalID(ctx context.Context, referenceNumber string, entityType models.EntityType, externalID string) (int64, error) {
	var res *gorm.DB
	switch entityType {
	case models.EntityContact:
		res = s.db.WithContext(ctx).Model(&models.CustomerLink{}).
			Where("cst_ref_no = ?", referenceNumber).
			Update("cst_hub_id", externalID)
	case models.EntityCompany:
		res = s.db.WithContext(ctx).Model(&models.CompanyLink{}).
			Where("com_map_id = ?", referenceNumber).
			Update("com_hub_id", externalID)
	default:
		return 0, fmt.Errorf("cannot write identity link for entity type %s", entityType)
	}

	if res.Error != nil {
		return 0, fmt.Errorf("update identity link %s: %w", referenceNumber, res.Error)
	}
	return res.RowsAffected, nil
}
