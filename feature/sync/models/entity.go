package models

import "hubspot-bridge/core/hubspot"

// EntityType identifies which kind of CRM record a payload refers to.
// Dispatch on it is exhaustive; unknown payloads are skipped rather
// than guessed at.
type EntityType int

const (
	// EntityUnknown marks a payload carrying neither identifying key.
	EntityUnknown EntityType = iota
	// EntityContact is a CRM contact backed by the CUSTOMER tables.
	EntityContact
	// EntityCompany is a CRM company backed by the CLIENT tables.
	EntityCompany
)

// String returns the CRM collection name for logging.
func (e EntityType) String() string {
	switch e {
	case EntityContact:
		return "contacts"
	case EntityCompany:
		return "companies"
	default:
		return "unknown"
	}
}

// ObjectType returns the CRM API collection this entity maps to.
// Unknown entities resolve to the companies endpoint; the bare "touch"
// sync path patches cms_last_synced there.
func (e EntityType) ObjectType() string {
	if e == EntityContact {
		return hubspot.ObjectTypeContacts
	}
	return hubspot.ObjectTypeCompanies
}

// SearchProperty returns the CMS identifying property used to filter
// CRM search results for this entity type.
func (e EntityType) SearchProperty() string {
	if e == EntityContact {
		return "cst_ref_no"
	}
	return "cms_client_number"
}
