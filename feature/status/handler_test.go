package status_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"hubspot-bridge/core/database"
	"hubspot-bridge/core/hubspot"
	"hubspot-bridge/core/storage/mocks"
	"hubspot-bridge/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupApp(t *testing.T, feature *status.Feature) *fiber.App {
	app := fiber.New()
	assert.NoError(t, feature.Load(app))
	return app
}

func testDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	return db
}

func TestHandleGetStatusAllHealthy(t *testing.T) {
	db := testDB(t)

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "hubspot-payloads").Return(true, nil)

	f := status.NewFeature(db, hubspot.Config{AccessToken: "token"}, mockClient, "hubspot-payloads", zap.NewNop())
	app := setupApp(t, f)

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil), 2000)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report status.Report
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "ok", report.Database)
	assert.Equal(t, "configured", report.HubSpot)
	assert.Equal(t, "ok", report.Archive)
	assert.NotEmpty(t, report.Version)
}

func TestHandleGetStatusMissingToken(t *testing.T) {
	db := testDB(t)

	f := status.NewFeature(db, hubspot.Config{}, nil, "", zap.NewNop())
	app := setupApp(t, f)

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil), 2000)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report status.Report
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "unconfigured", report.HubSpot)
	assert.Equal(t, "disabled", report.Archive)
}

func TestHandleGetStatusArchiveUnreachable(t *testing.T) {
	db := testDB(t)

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "hubspot-payloads").Return(false, assert.AnError)

	f := status.NewFeature(db, hubspot.Config{AccessToken: "token"}, mockClient, "hubspot-payloads", zap.NewNop())
	app := setupApp(t, f)

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil), 2000)
	assert.NoError(t, err)

	var report status.Report
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "unreachable", report.Archive)
}
