package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/db"
)

// mockStore implements Store for testing
type mockStore struct {
	unassigned  []db.Occurrence
	assignments map[string][]db.Occurrence
	profiles    map[string]*db.Profile
}

func (m *mockStore) GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error) {
	return m.unassigned, nil
}

func (m *mockStore) GetDriverAssignments(ctx context.Context, driverID string) ([]db.Occurrence, error) {
	return m.assignments[driverID], nil
}

func (m *mockStore) GetProfile(ctx context.Context, driverID string) (*db.Profile, error) {
	return m.profiles[driverID], nil
}

func (m *mockStore) GetProfiles(ctx context.Context) ([]db.Profile, error) {
	profiles := make([]db.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

func strPtr(s string) *string { return &s }

func testStore() *mockStore {
	return &mockStore{
		unassigned: []db.Occurrence{
			{
				ID: "occ-1630", ServiceDate: "2024-01-03", StartTime: "16:30",
				BlockID: "B7", ContractType: strPtr("solo2"), Status: "unassigned",
			},
			{
				ID: "occ-2000", ServiceDate: "2024-01-10", StartTime: "20:00",
				BlockID: "B9", ContractType: strPtr("solo2"), Status: "unassigned",
			},
		},
		profiles: map[string]*db.Profile{
			"driver-1": {
				DriverID:              "driver-1",
				PreferredDays:         "wednesday",
				PreferredStartTimes:   "16:30",
				PreferredContractType: strPtr("solo2"),
			},
		},
	}
}

func doRequest(t *testing.T, store *mockStore, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewServer(store, zap.NewNop())

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestHealthz(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMatchDriver_Endpoint(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodPost,
		"/api/v1/drivers/driver-1/match", `{"strategy":"premium"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		DriverID   string `json:"driverId"`
		Strictness string `json:"strictness"`
		Threshold  int    `json:"threshold"`
		Blocks     []struct {
			OccurrenceID string  `json:"occurrenceId"`
			MatchScore   float64 `json:"matchScore"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "driver-1", response.DriverID)
	assert.Equal(t, "strict", response.Strictness)
	assert.Equal(t, 90, response.Threshold)
	require.Len(t, response.Blocks, 1)
	assert.Equal(t, "occ-1630", response.Blocks[0].OccurrenceID)
	assert.Equal(t, 1.0, response.Blocks[0].MatchScore)
}

func TestMatchDriver_UnknownDriverIs404(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodPost, "/api/v1/drivers/ghost/match", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMatchDriver_BadStrategyIs400(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodPost,
		"/api/v1/drivers/driver-1/match", `{"strategy":"yolo"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCoverage_Endpoint(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodGet, "/api/v1/coverage?threshold=50", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Strictness string `json:"strictness"`
		Total      int    `json:"total"`
		Coverage   []struct {
			MinMatches int `json:"minMatches"`
			Count      int `json:"count"`
		} `json:"coverage"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "moderate", response.Strictness)
	assert.Equal(t, 2, response.Total)
	require.Len(t, response.Coverage, 4)
	// Both Wednesday blocks match the lone profile at moderate strictness
	assert.Equal(t, 2, response.Coverage[0].Count)
}

func TestCoverage_BadThresholdIs400(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodGet, "/api/v1/coverage?threshold=high", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestStrategies_Endpoint(t *testing.T) {
	recorder := doRequest(t, testStore(), http.MethodGet, "/api/v1/strategies", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Strategies []struct {
			Name       string `json:"name"`
			Threshold  int    `json:"threshold"`
			Strictness string `json:"strictness"`
		} `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Strategies, 4)
	assert.Equal(t, "cover", response.Strategies[0].Name)
	assert.Equal(t, "flexible", response.Strategies[0].Strictness)
}
