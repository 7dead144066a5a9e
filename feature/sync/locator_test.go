package sync

import (
	"encoding/json"
	"testing"

	"hubspot-bridge/feature/sync/models"

	"github.com/stretchr/testify/assert"
)

func TestDetectEntityType(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    models.EntityType
	}{
		{
			name:    "Contact reference at top level",
			payload: map[string]any{"cst_ref_no": "CST-1"},
			want:    models.EntityContact,
		},
		{
			name:    "Company reference at top level",
			payload: map[string]any{"cms_client_number": "CMP-1"},
			want:    models.EntityCompany,
		},
		{
			name: "Nested reference alone does not classify",
			payload: map[string]any{
				"properties": map[string]any{"cst_ref_no": "CST-1"},
			},
			want: models.EntityUnknown,
		},
		{
			name:    "Contact wins when both are present",
			payload: map[string]any{"cst_ref_no": "CST-1", "cms_client_number": "CMP-1"},
			want:    models.EntityContact,
		},
		{
			name:    "Blank reference does not classify",
			payload: map[string]any{"cst_ref_no": "   "},
			want:    models.EntityUnknown,
		},
		{
			name:    "Neither key present",
			payload: map[string]any{"email": "jane@example.test"},
			want:    models.EntityUnknown,
		},
		{
			name:    "Empty payload",
			payload: map[string]any{},
			want:    models.EntityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEntityType(tt.payload))
		})
	}
}

func TestExtractKeys(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantRef string
		wantID  string
	}{
		{
			name:    "Top level contact reference and id",
			payload: map[string]any{"cst_ref_no": "CST-1", "id": "999"},
			wantRef: "CST-1",
			wantID:  "999",
		},
		{
			name: "Falls back to properties for the reference",
			payload: map[string]any{
				"id":         "999",
				"properties": map[string]any{"cst_ref_no": "CST-1"},
			},
			wantRef: "CST-1",
			wantID:  "999",
		},
		{
			name: "Company reference in properties before top level",
			payload: map[string]any{
				"cms_client_number": "CMP-TOP",
				"properties":        map[string]any{"cms_client_number": "CMP-NESTED"},
			},
			wantRef: "CMP-NESTED",
			wantID:  "",
		},
		{
			name:    "Legacy objectId honored when id is absent",
			payload: map[string]any{"cst_ref_no": "CST-1", "objectId": "777"},
			wantRef: "CST-1",
			wantID:  "777",
		},
		{
			name:    "Id takes precedence over objectId",
			payload: map[string]any{"cst_ref_no": "CST-1", "id": "999", "objectId": "777"},
			wantRef: "CST-1",
			wantID:  "999",
		},
		{
			name:    "Numeric id is rendered without exponent",
			payload: map[string]any{"cst_ref_no": "CST-1", "id": json.Number("12345678901")},
			wantRef: "CST-1",
			wantID:  "12345678901",
		},
		{
			name:    "Missing keys come back empty",
			payload: map[string]any{"email": "jane@example.test"},
			wantRef: "",
			wantID:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, id := ExtractKeys(tt.payload)
			assert.Equal(t, tt.wantRef, ref)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
