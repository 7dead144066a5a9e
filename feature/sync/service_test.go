package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/feature/sync/models"
	"hubspot-bridge/feature/sync/store"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeCRM records calls and serves scripted responses in place of the
// real HubSpot API.
type fakeCRM struct {
	searchPages map[string][][]hubspot.SearchResult
	searchCalls []int
	searchErr   error

	pushes   []recordedPush
	pushByID map[string]hubspot.PushResult
}

type recordedPush struct {
	objectType string
	id         string
	properties map[string]any
}

func (f *fakeCRM) Search(_ context.Context, objectType, _ string, offset int) ([]hubspot.SearchResult, error) {
	f.searchCalls = append(f.searchCalls, offset)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	pages := f.searchPages[objectType]
	page := offset / hubspot.PageSize
	if page >= len(pages) {
		return nil, nil
	}
	return pages[page], nil
}

func (f *fakeCRM) UpdateProperties(_ context.Context, objectType, id string, properties map[string]any) (hubspot.PushResult, error) {
	f.pushes = append(f.pushes, recordedPush{objectType: objectType, id: id, properties: properties})
	if res, ok := f.pushByID[id]; ok {
		return res, nil
	}
	return hubspot.PushResult{OK: true, StatusCode: 200}, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.ClientRow{}, &models.CustomerRow{}, &models.CustomerLink{}, &models.CompanyLink{}); err != nil {
		t.Fatalf("Failed to migrate test db: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, crm *fakeCRM) *Service {
	svc := NewService(store.New(db), crm, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	}
	return svc
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProcessEntityCompanyEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{}
	svc := newTestService(t, db, crm)

	db.Create(&models.CompanyLink{MapID: "CMP-1", HubID: nil})
	db.Create(&models.ClientRow{
		HubSpotObjectID: "999",
		VFTStatus:       strPtr("Active"),
		Active:          strPtr("Yes"),
		ActiveBusiness:  strPtr("Y"),
		IsClient:        strPtr("Y"),
		EmployeeCount:   intPtr(25),
		MaxTrnDate:      strPtr("2024-01-15 00:00:00"),
	})

	ok, err := svc.ProcessEntity(context.Background(), map[string]any{
		"cms_client_number": "CMP-1",
		"id":                "999",
	})
	assert.NoError(t, err)
	assert.True(t, ok)

	// Identity link now points at the CRM record.
	var link models.CompanyLink
	assert.NoError(t, db.Where("com_map_id = ?", "CMP-1").First(&link).Error)
	assert.NotNil(t, link.HubID)
	assert.Equal(t, "999", *link.HubID)

	// One push carrying the full company snapshot plus the sync stamp.
	assert.Len(t, crm.pushes, 1)
	push := crm.pushes[0]
	assert.Equal(t, hubspot.ObjectTypeCompanies, push.objectType)
	assert.Equal(t, "999", push.id)
	assert.Equal(t, "Active", push.properties["vft_status"])
	assert.Equal(t, "Y", push.properties["company_activestatus"])
	assert.Equal(t, 25, push.properties["cms_employee_count"])
	assert.Equal(t, "1705276800000", push.properties["cms_max_trndate"])
	assert.Nil(t, push.properties["cms_last_vft_invoice_date"])
	assert.Equal(t, int64(1705276800000), push.properties["cms_last_synced"])
}

func TestSyncIdentityIdempotent(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{}
	svc := newTestService(t, db, crm)

	db.Create(&models.CustomerLink{RefNo: "CST-1", HubID: nil})

	assert.NoError(t, svc.syncIdentity(context.Background(), "CST-1", models.EntityContact, "42"))

	// Second call with the same pair must not issue another UPDATE.
	updates := 0
	err := db.Callback().Update().After("gorm:update").Register("test_count_updates", func(*gorm.DB) {
		updates++
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.syncIdentity(context.Background(), "CST-1", models.EntityContact, "42"))
	assert.Equal(t, 0, updates)

	var link models.CustomerLink
	assert.NoError(t, db.Where("cst_ref_no = ?", "CST-1").First(&link).Error)
	assert.Equal(t, "42", *link.HubID)
}

func TestSyncIdentityUnknownReference(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeCRM{})

	// No such reference in the CMS: logged, not an error.
	assert.NoError(t, svc.syncIdentity(context.Background(), "CST-404", models.EntityContact, "42"))
}

func TestProcessEntityTouchPath(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{}
	svc := newTestService(t, db, crm)

	// Reference only resolvable through the properties fallback; the
	// type stays unknown so only the sync stamp goes out, on the
	// companies endpoint.
	ok, err := svc.ProcessEntity(context.Background(), map[string]any{
		"id":         "555",
		"properties": map[string]any{"cms_client_number": "CMP-9"},
	})
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Len(t, crm.pushes, 1)
	push := crm.pushes[0]
	assert.Equal(t, hubspot.ObjectTypeCompanies, push.objectType)
	assert.Equal(t, "555", push.id)
	assert.Len(t, push.properties, 1)
	assert.Equal(t, int64(1705276800000), push.properties["cms_last_synced"])
}

func TestProcessEntityMissingRowSkipsPush(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{}
	svc := newTestService(t, db, crm)

	db.Create(&models.CustomerLink{RefNo: "CST-1", HubID: nil})

	ok, err := svc.ProcessEntity(context.Background(), map[string]any{
		"cst_ref_no": "CST-1",
		"id":         "42",
	})
	assert.NoError(t, err)
	assert.True(t, ok)

	// Identity was linked but no hubCUSTOMER row exists, so nothing
	// went out.
	assert.Empty(t, crm.pushes)
	var link models.CustomerLink
	assert.NoError(t, db.Where("cst_ref_no = ?", "CST-1").First(&link).Error)
	assert.Equal(t, "42", *link.HubID)
}

func TestProcessPayloadsIsolatesPushFailures(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{
		pushByID: map[string]hubspot.PushResult{
			"2": {OK: false, StatusCode: 500, Body: `{"status":"error"}`},
		},
	}
	svc := newTestService(t, db, crm)

	for i := 1; i <= 3; i++ {
		ref := fmt.Sprintf("CST-%d", i)
		id := fmt.Sprintf("%d", i)
		db.Create(&models.CustomerLink{RefNo: ref, HubID: nil})
		db.Create(&models.CustomerRow{
			HubSpotObjectID: id,
			Email:           strPtr(fmt.Sprintf("user%d@example.test", i)),
		})
	}

	payloads := []map[string]any{
		{"cst_ref_no": "CST-1", "id": "1"},
		{"cst_ref_no": "CST-2", "id": "2"},
		{"cst_ref_no": "CST-3", "id": "3"},
	}

	processed, err := svc.ProcessPayloads(context.Background(), payloads)
	assert.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Len(t, crm.pushes, 3)
}

func TestProcessEntitySkipsIncompletePayload(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{}
	svc := newTestService(t, db, crm)

	ok, err := svc.ProcessEntity(context.Background(), map[string]any{
		"cst_ref_no": "CST-1",
	})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, crm.pushes)
}

func TestSyncEntityTypeTerminatesAfterShortPage(t *testing.T) {
	db := setupTestDB(t)

	fullPage := make([]hubspot.SearchResult, hubspot.PageSize)
	for i := range fullPage {
		fullPage[i] = hubspot.SearchResult{
			ID:         fmt.Sprintf("%d", i+1),
			Properties: map[string]any{"cms_client_number": fmt.Sprintf("CMP-%d", i+1)},
		}
	}

	crm := &fakeCRM{
		searchPages: map[string][][]hubspot.SearchResult{
			hubspot.ObjectTypeCompanies: {fullPage, nil},
		},
	}
	svc := newTestService(t, db, crm)

	assert.NoError(t, svc.SyncEntityType(context.Background(), models.EntityCompany))
	assert.Equal(t, []int{0, 100}, crm.searchCalls)
}

func TestSyncEntityTypeProcessesShortPage(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.CompanyLink{MapID: "CMP-1", HubID: nil})

	crm := &fakeCRM{
		searchPages: map[string][][]hubspot.SearchResult{
			hubspot.ObjectTypeCompanies: {
				{{ID: "999", Properties: map[string]any{"cms_client_number": "CMP-1"}}},
			},
		},
	}
	svc := newTestService(t, db, crm)

	assert.NoError(t, svc.SyncEntityType(context.Background(), models.EntityCompany))
	assert.Equal(t, []int{0}, crm.searchCalls)

	var link models.CompanyLink
	assert.NoError(t, db.Where("com_map_id = ?", "CMP-1").First(&link).Error)
	assert.Equal(t, "999", *link.HubID)
}

func TestSyncAllSweepsCompaniesThenContacts(t *testing.T) {
	db := setupTestDB(t)

	var order []string
	crm := &fakeCRM{searchPages: map[string][][]hubspot.SearchResult{}}
	recording := &orderRecordingCRM{inner: crm, order: &order}
	svc := NewService(store.New(db), recording, zap.NewNop())

	assert.NoError(t, svc.SyncAll(context.Background()))
	assert.Equal(t, []string{hubspot.ObjectTypeCompanies, hubspot.ObjectTypeContacts}, order)
}

func TestSyncAllAbortsOnSearchError(t *testing.T) {
	db := setupTestDB(t)
	crm := &fakeCRM{searchErr: fmt.Errorf("search unavailable")}
	svc := newTestService(t, db, crm)

	err := svc.SyncAll(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []int{0}, crm.searchCalls)
}

type orderRecordingCRM struct {
	inner *fakeCRM
	order *[]string
}

func (o *orderRecordingCRM) Search(ctx context.Context, objectType, property string, offset int) ([]hubspot.SearchResult, error) {
	*o.order = append(*o.order, objectType)
	return o.inner.Search(ctx, objectType, property, offset)
}

func (o *orderRecordingCRM) UpdateProperties(ctx context.Context, objectType, id string, properties map[string]any) (hubspot.PushResult, error) {
	return o.inner.UpdateProperties(ctx, objectType, id, properties)
}
