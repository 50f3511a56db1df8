package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y345-git/Campus-Navigation/config"
	"github.com/y345-git/Campus-Navigation/models"
	"github.com/y345-git/Campus-Navigation/routing"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := config.Open(t.TempDir(), log)
	require.NoError(t, err)

	cache := routing.NewCache(store, log)
	store.OnChange(cache.Invalidate)
	planner := routing.NewPlanner(cache)

	r := gin.New()
	NewRouteHandler(planner, cache, store, log).RegisterRoutes(r)
	NewAdminHandler(store, log).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, models.ApiResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestGetBuildings(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/buildings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	assert.NotEmpty(t, resp.RequestID)

	buildings, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, buildings, 5)
}

func TestFindRoute(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/route",
		`{"start":"Main_Library","end":"Science_Building"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	path, ok := data["path"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "Main_Library", path[0])
	assert.Equal(t, "Science_Building", path[len(path)-1])
	assert.Greater(t, data["total_distance_m"].(float64), 0.0)
}

func TestFindRouteUnknownBuilding(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/route",
		`{"start":"Main_Library","end":"Atlantis"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, resp.Success)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestFindRouteBadRequest(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/route", `{"start":"Main_Library"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", resp.Error.Code)
}

func TestGetDestinations(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/destinations/Main_Library", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	destinations := data["destinations"].([]interface{})
	assert.Len(t, destinations, 4)

	// nearest first
	previous := -1.0
	for _, d := range destinations {
		distance := d.(map[string]interface{})["distance_m"].(float64)
		assert.GreaterOrEqual(t, distance, previous)
		previous = distance
	}
}

func TestGetGraphInfo(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/graph/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["connected"])
	assert.Greater(t, data["nodes"].(float64), 0.0)
}

func TestAdminBuildingMutationInvalidatesRoutes(t *testing.T) {
	r := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/buildings",
		`{"id":"Chemistry_Hall","name":"Chemistry Hall","lat":40.7836,"lon":-73.9702,"type":"academic"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/paths",
		`{"from":"Chemistry_Hall","to":"intersection_1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// the new building is immediately routable
	w, resp := doJSON(t, r, http.MethodPost, "/api/route",
		`{"start":"Main_Library","end":"Chemistry_Hall"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestAdminBuildingOutsideMapBoundsRejected(t *testing.T) {
	r := newTestServer(t)

	// the default campus map covers 2 km around Central Park
	w, resp := doJSON(t, r, http.MethodPost, "/api/admin/buildings",
		`{"id":"Tokyo_Tower","name":"Tokyo Tower","lat":35.6586,"lon":139.7454}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "config_error", resp.Error.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/api/admin/intersections",
		`{"id":"far_away","lat":51.5074,"lon":-0.1278}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "config_error", resp.Error.Code)

	_, resp = doJSON(t, r, http.MethodGet, "/api/buildings", "")
	buildings := resp.Data.([]interface{})
	assert.Len(t, buildings, 5)
}

func TestAdminMapBounds(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/admin/map-bounds", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 2.0, data["bounds_km"].(float64))
	sw := data["southwest"].([]interface{})
	ne := data["northeast"].([]interface{})
	assert.Less(t, sw[0].(float64), ne[0].(float64))
	assert.Less(t, sw[1].(float64), ne[1].(float64))
}

func TestAdminPathToUnknownNodeRejected(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/admin/paths",
		`{"from":"Main_Library","to":"Atlantis"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "config_error", resp.Error.Code)
}

const libraryInteriorJSON = `{
  "building_name": "Main Library",
  "floors": {
    "ground": {
      "level": 0,
      "rooms": {
        "main_entrance": {"coordinates": [0, 0], "type": "entrance"},
        "reading_room": {"coordinates": [30, 40], "type": "common"}
      },
      "connections": [["main_entrance", "reading_room"]],
      "entrances": ["main_entrance"],
      "floor_plan": {"width": 100, "height": 100, "scale_meters_per_unit": 1.0}
    }
  }
}`

func TestInteriorUploadAndRouteToRoom(t *testing.T) {
	r := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPut, "/api/admin/buildings/Main_Library/interior", libraryInteriorJSON)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/api/buildings/Main_Library/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	rooms := resp.Data.(map[string]interface{})["rooms"].([]interface{})
	assert.Len(t, rooms, 2)

	w, resp = doJSON(t, r, http.MethodPost, "/api/route/to-room",
		`{"start":"Gym","building":"Main_Library","floor":"ground","room":"reading_room"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "ground/main_entrance", data["entrance"])
	path := data["path"].([]interface{})
	assert.Equal(t, "Gym", path[0])
	assert.Equal(t, "ground/reading_room", path[len(path)-1])
}

func TestRouteToRoomWithoutInterior(t *testing.T) {
	r := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/route/to-room",
		`{"start":"Gym","building":"Main_Library","floor":"ground","room":"reading_room"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestInteriorRouteEndpoint(t *testing.T) {
	r := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPut, "/api/admin/buildings/Main_Library/interior", libraryInteriorJSON)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/buildings/Main_Library/route",
		`{"start_floor":"ground","start_room":"main_entrance","end_floor":"ground","end_room":"reading_room"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.InDelta(t, 50.0, data["total_distance_m"].(float64), 1e-6)
}
