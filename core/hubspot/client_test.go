package hubspot_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hubspot-bridge/core/hubspot"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(server *httptest.Server) hubspot.Client {
	return hubspot.NewClient(hubspot.Config{
		BaseURL:     server.URL,
		AccessToken: "test-token",
	}, zap.NewNop())
}

func TestSearch(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v3/objects/companies/search", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":"101","properties":{"cms_client_number":"CMP-1"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.Search(context.Background(), hubspot.ObjectTypeCompanies, "cms_client_number", 200)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "101", results[0].ID)
	assert.Equal(t, "CMP-1", results[0].Properties["cms_client_number"])

	// The request carries the GT-0 filter, the page size and the offset.
	assert.EqualValues(t, 100, captured["limit"])
	assert.EqualValues(t, 200, captured["after"])
	groups := captured["filterGroups"].([]any)
	filters := groups[0].(map[string]any)["filters"].([]any)
	filter := filters[0].(map[string]any)
	assert.Equal(t, "cms_client_number", filter["propertyName"])
	assert.Equal(t, "GT", filter["operator"])
	assert.Equal(t, "0", filter["value"])
}

func TestSearchNonSuccessIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.Search(context.Background(), hubspot.ObjectTypeContacts, "cst_ref_no", 0)
	assert.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "502")
}

func TestUpdateProperties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/crm/v3/objects/contacts/999", r.URL.Path)

		var body map[string]map[string]any
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "a@b.test", body["properties"]["email"])

		_, _ = w.Write([]byte(`{"id":"999"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	res, err := client.UpdateProperties(context.Background(), hubspot.ObjectTypeContacts, "999", map[string]any{"email": "a@b.test"})
	assert.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestUpdatePropertiesNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Property values were not valid"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	res, err := client.UpdateProperties(context.Background(), hubspot.ObjectTypeCompanies, "101", map[string]any{"vft_status": "X"})
	assert.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, res.Body, "not valid")
}
