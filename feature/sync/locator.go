package sync

import (
	"strings"

	"hubspot-bridge/core/utils"
	"hubspot-bridge/feature/sync/models"
)

// Payload field names used to classify and key inbound records. Webhook
// pushes carry them at the top level, search results nest them under
// "properties"; both surfaces are checked.
const (
	fieldContactRef = "cst_ref_no"
	fieldCompanyRef = "cms_client_number"
	fieldID         = "id"
	fieldLegacyID   = "objectId"
)

// DetectEntityType classifies a raw payload by which identifying key it
// carries at the top level. A non-blank contact reference wins over a
// company reference. Payloads that only carry a reference inside the
// properties sub-map stay Unknown; the engine then syncs the timestamp
// alone.
func DetectEntityType(payload map[string]any) models.EntityType {
	if topField(payload, fieldContactRef) != "" {
		return models.EntityContact
	}
	if topField(payload, fieldCompanyRef) != "" {
		return models.EntityCompany
	}
	return models.EntityUnknown
}

// ExtractKeys pulls the reference number and external record id out of a
// payload, trying each known location in order. Either value may come
// back empty; callers skip such records rather than failing.
func ExtractKeys(payload map[string]any) (ref string, externalID string) {
	props := subMap(payload, "properties")

	for _, candidate := range []string{
		topField(payload, fieldContactRef),
		topField(props, fieldContactRef),
		topField(props, fieldCompanyRef),
		topField(payload, fieldCompanyRef),
	} {
		if candidate != "" {
			ref = candidate
			break
		}
	}

	externalID = topField(payload, fieldID)
	if externalID == "" {
		externalID = topField(payload, fieldLegacyID)
	}
	return ref, externalID
}

func topField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(utils.ToString(v))
}

func subMap(payload map[string]any, key string) map[string]any {
	if payload == nil {
		return nil
	}
	if nested, ok := payload[key].(map[string]any); ok {
		return nested
	}
	return nil
}
