package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/y345-git/Campus-Navigation/config"
	"github.com/y345-git/Campus-Navigation/models"
)

// AdminHandler serves configuration mutations. Every successful mutation
// persists to disk and invalidates the affected graphs through the store's
// change notifications.
type AdminHandler struct {
	store *config.Store
	log   *slog.Logger
}

func NewAdminHandler(store *config.Store, log *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, log: log}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	admin.POST("/buildings", h.PutBuilding)
	admin.DELETE("/buildings/:building_id", h.DeleteBuilding)
	admin.PUT("/buildings/:building_id/interior", h.PutInterior)
	admin.POST("/intersections", h.PutIntersection)
	admin.DELETE("/intersections/:intersection_id", h.DeleteIntersection)
	admin.POST("/paths", h.AddPath)
	admin.DELETE("/paths", h.DeletePath)
	admin.GET("/map-bounds", h.MapBounds)
}

// MapBounds reports the coordinate area admin-supplied nodes must fall
// inside.
func (h *AdminHandler) MapBounds(c *gin.Context) {
	settings := h.store.MapBounds()
	sw, ne := settings.Bounds()
	respond(c, gin.H{
		"center":    settings.CenterCoordinates,
		"bounds_km": settings.MapBoundsKM,
		"southwest": sw,
		"northeast": ne,
	})
}

func (h *AdminHandler) PutBuilding(c *gin.Context) {
	var req models.BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	err := h.store.PutBuilding(req.ID, config.BuildingConfig{
		Name:        req.Name,
		Coordinates: [2]float64{req.Lat, req.Lon},
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "config_error", err)
		return
	}
	h.log.Info("building saved", "id", req.ID)
	respond(c, gin.H{"id": req.ID})
}

func (h *AdminHandler) DeleteBuilding(c *gin.Context) {
	id := c.Param("building_id")
	if err := h.store.DeleteBuilding(id); err != nil {
		respondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	h.log.Info("building deleted", "id", id)
	respond(c, gin.H{"id": id})
}

func (h *AdminHandler) PutInterior(c *gin.Context) {
	buildingID := c.Param("building_id")
	var req config.BuildingInterior
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.store.PutInterior(buildingID, req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "config_error", err)
		return
	}
	h.log.Info("interior saved", "building", buildingID)
	respond(c, gin.H{"building_id": buildingID})
}

func (h *AdminHandler) PutIntersection(c *gin.Context) {
	var req models.IntersectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.store.PutIntersection(req.ID, [2]float64{req.Lat, req.Lon}); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "config_error", err)
		return
	}
	h.log.Info("intersection saved", "id", req.ID)
	respond(c, gin.H{"id": req.ID})
}

func (h *AdminHandler) DeleteIntersection(c *gin.Context) {
	id := c.Param("intersection_id")
	if err := h.store.DeleteIntersection(id); err != nil {
		respondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	h.log.Info("intersection deleted", "id", id)
	respond(c, gin.H{"id": id})
}

func (h *AdminHandler) AddPath(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	err := h.store.AddPath(config.CampusPath{From: req.From, To: req.To, Distance: req.Distance})
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "config_error", err)
		return
	}
	h.log.Info("path added", "from", req.From, "to", req.To)
	respond(c, gin.H{"from": req.From, "to": req.To})
}

func (h *AdminHandler) DeletePath(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.store.DeletePath(req.From, req.To); err != nil {
		respondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	h.log.Info("path deleted", "from", req.From, "to", req.To)
	respond(c, gin.H{"from": req.From, "to": req.To})
}
