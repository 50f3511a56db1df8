// Package handlers wires the routing engine and configuration store to the
// HTTP API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/y345-git/Campus-Navigation/config"
	"github.com/y345-git/Campus-Navigation/metrics"
	"github.com/y345-git/Campus-Navigation/models"
	"github.com/y345-git/Campus-Navigation/routing"
)

// RouteHandler serves the read-only navigation endpoints.
type RouteHandler struct {
	planner *routing.Planner
	cache   *routing.Cache
	store   *config.Store
	log     *slog.Logger
}

func NewRouteHandler(planner *routing.Planner, cache *routing.Cache, store *config.Store, log *slog.Logger) *RouteHandler {
	return &RouteHandler{planner: planner, cache: cache, store: store, log: log}
}

func (h *RouteHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/buildings", h.GetBuildings)
	api.GET("/buildings/:building_id/rooms", h.GetRooms)
	api.POST("/buildings/:building_id/route", h.InteriorRoute)
	api.POST("/route", h.FindRoute)
	api.POST("/route/to-room", h.FindRouteToRoom)
	api.GET("/destinations/:building_id", h.GetDestinations)
	api.GET("/graph/info", h.GetGraphInfo)
}

func (h *RouteHandler) GetBuildings(c *gin.Context) {
	campus, err := h.store.Campus()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	buildings := make([]models.BuildingInfo, 0, len(campus.Buildings))
	for id, b := range campus.Buildings {
		buildings = append(buildings, models.BuildingInfo{
			ID:          id,
			Name:        b.Name,
			Coordinates: b.Coordinates,
			Description: b.Description,
			Type:        b.Type,
		})
	}
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].ID < buildings[j].ID })
	respond(c, buildings)
}

func (h *RouteHandler) GetRooms(c *gin.Context) {
	buildingID := c.Param("building_id")
	building, err := h.cache.Building(buildingID)
	if err != nil {
		respondRoutingError(c, err)
		return
	}
	rooms := make([]models.RoomInfo, 0, len(building.Rooms))
	for ref, nodeID := range building.Rooms {
		node := building.Nodes[nodeID]
		rooms = append(rooms, models.RoomInfo{
			ID:          ref.Room,
			Floor:       ref.Floor,
			Name:        node.Name,
			Type:        node.Type,
			Coordinates: [2]float64{node.Coord.Lon, node.Coord.Lat},
		})
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Floor != rooms[j].Floor {
			return rooms[i].Floor < rooms[j].Floor
		}
		return rooms[i].ID < rooms[j].ID
	})
	respond(c, gin.H{"building_id": buildingID, "rooms": rooms})
}

func (h *RouteHandler) FindRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	route, err := h.timed("route", func() (*routing.Route, error) {
		return h.planner.Route(req.Start, req.End)
	})
	if err != nil {
		respondRoutingError(c, err)
		return
	}
	respond(c, routeResponse(route))
}

func (h *RouteHandler) FindRouteToRoom(c *gin.Context) {
	var req models.RouteToRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	route, err := h.timed("route_to_room", func() (*routing.Route, error) {
		return h.planner.RouteToRoom(req.Start, routing.RoomRef{
			Building: req.Building,
			Floor:    req.Floor,
			Room:     req.Room,
		})
	})
	if err != nil {
		respondRoutingError(c, err)
		return
	}
	respond(c, routeResponse(route))
}

func (h *RouteHandler) InteriorRoute(c *gin.Context) {
	var req models.InteriorRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	route, err := h.timed("interior", func() (*routing.Route, error) {
		return h.planner.InteriorRoute(c.Param("building_id"),
			routing.FloorRoom{Floor: req.StartFloor, Room: req.StartRoom},
			routing.FloorRoom{Floor: req.EndFloor, Room: req.EndRoom})
	})
	if err != nil {
		respondRoutingError(c, err)
		return
	}
	respond(c, routeResponse(route))
}

func (h *RouteHandler) GetDestinations(c *gin.Context) {
	start := c.Param("building_id")
	started := time.Now()
	destinations, err := h.planner.Destinations(start)
	metrics.RouteDuration.WithLabelValues("destinations").Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.RouteRequests.WithLabelValues("destinations", statusLabel(err)).Inc()
		respondRoutingError(c, err)
		return
	}
	metrics.RouteRequests.WithLabelValues("destinations", "ok").Inc()

	out := make([]models.DestinationInfo, 0, len(destinations))
	for _, d := range destinations {
		out = append(out, models.DestinationInfo{
			ID:              d.ID,
			Name:            d.Name,
			Description:     d.Description,
			DistanceM:       d.Distance,
			WalkTimeMinutes: d.WalkTimeMinutes,
			Coordinates:     [2]float64{d.Coord.Lat, d.Coord.Lon},
		})
	}
	respond(c, gin.H{"start": start, "destinations": out})
}

func (h *RouteHandler) GetGraphInfo(c *gin.Context) {
	campus, err := h.cache.Campus()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	buildings := 0
	for _, n := range campus.Nodes {
		if n.Kind == routing.KindBuilding {
			buildings++
		}
	}
	respond(c, models.GraphInfo{
		Nodes:     len(campus.Nodes),
		Edges:     campus.EdgeCount(),
		Buildings: buildings,
		Connected: isConnected(campus),
	})
}

// timed wraps a route computation with request metrics.
func (h *RouteHandler) timed(kind string, fn func() (*routing.Route, error)) (*routing.Route, error) {
	started := time.Now()
	route, err := fn()
	metrics.RouteDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.RouteRequests.WithLabelValues(kind, statusLabel(err)).Inc()
		return nil, err
	}
	metrics.RouteRequests.WithLabelValues(kind, "ok").Inc()
	return route, nil
}

func statusLabel(err error) string {
	if errors.Is(err, routing.ErrNotFound) {
		return "not_found"
	}
	return "error"
}

func isConnected(g *routing.Graph) bool {
	if len(g.Nodes) == 0 {
		return true
	}
	var start string
	for id := range g.Nodes {
		start = id
		break
	}
	dist, err := routing.DistancesFrom(g, start)
	return err == nil && len(dist) == len(g.Nodes)
}

func routeResponse(r *routing.Route) models.RouteResponse {
	resp := models.RouteResponse{
		Path:            r.Path,
		Coordinates:     make([][2]float64, 0, len(r.Coordinates)),
		Segments:        make([]models.SegmentInfo, 0, len(r.Segments)),
		TotalDistanceM:  r.TotalDistance,
		WalkTimeMinutes: r.WalkTimeMinutes,
		Entrance:        r.Entrance,
	}
	for _, coord := range r.Coordinates {
		resp.Coordinates = append(resp.Coordinates, [2]float64{coord.Lat, coord.Lon})
	}
	for _, seg := range r.Segments {
		resp.Segments = append(resp.Segments, models.SegmentInfo{
			From:        seg.From,
			To:          seg.To,
			DistanceM:   seg.Distance,
			CumulativeM: seg.Cumulative,
		})
	}
	return resp
}

func respond(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.ApiResponse{
		Success:   true,
		Data:      data,
		RequestID: uuid.NewString(),
	})
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ApiResponse{
		Success:   false,
		Error:     &models.ApiError{Code: code, Message: err.Error()},
		RequestID: uuid.NewString(),
	})
}

func respondRoutingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routing.ErrNoPath):
		respondError(c, http.StatusNotFound, "no_path", err)
	case errors.Is(err, routing.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	default:
		var cfgErr *routing.ConfigError
		if errors.As(err, &cfgErr) {
			respondError(c, http.StatusInternalServerError, "config_error", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}
