// Package config loads, validates, and persists the campus and building
// interior configuration consumed by the routing engine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrNoInterior reports that a building has no interior configuration.
var ErrNoInterior = errors.New("building interior not configured")

// MapSettings positions the rendered campus map.
type MapSettings struct {
	CenterCoordinates [2]float64 `json:"center_coordinates" validate:"required"`
	MapBoundsKM       float64    `json:"map_bounds_km" validate:"gt=0"`
	ZoomLevel         int        `json:"zoom_level"`
}

// Bounds returns the (south, west) and (north, east) corners of the map
// area centered on CenterCoordinates.
func (m MapSettings) Bounds() (southWest, northEast [2]float64) {
	centerLat, centerLon := m.CenterCoordinates[0], m.CenterCoordinates[1]
	latOffset := m.MapBoundsKM / 2 / 111.0
	lonOffset := m.MapBoundsKM / 2 / (111.0 * math.Cos(centerLat*math.Pi/180))
	return [2]float64{centerLat - latOffset, centerLon - lonOffset},
		[2]float64{centerLat + latOffset, centerLon + lonOffset}
}

// Contains reports whether a coordinate falls inside the map bounds.
func (m MapSettings) Contains(lat, lon float64) bool {
	sw, ne := m.Bounds()
	return sw[0] <= lat && lat <= ne[0] && sw[1] <= lon && lon <= ne[1]
}

// BuildingConfig describes one campus building. Coordinates is [lat, lon].
type BuildingConfig struct {
	Name        string     `json:"name" validate:"required"`
	Coordinates [2]float64 `json:"coordinates"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
}

// CampusPath connects two campus nodes. Distance is in meters; when nil the
// engine derives it from the endpoints' coordinates. The JSON form is a
// two- or three-element array: ["a", "b"] or ["a", "b", 42.5].
type CampusPath struct {
	From     string
	To       string
	Distance *float64
}

func (p *CampusPath) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 && len(raw) != 3 {
		return fmt.Errorf("campus path must have 2 or 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.From); err != nil {
		return fmt.Errorf("campus path endpoint: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.To); err != nil {
		return fmt.Errorf("campus path endpoint: %w", err)
	}
	p.Distance = nil
	if len(raw) == 3 {
		var d float64
		if err := json.Unmarshal(raw[2], &d); err != nil {
			return fmt.Errorf("campus path distance: %w", err)
		}
		p.Distance = &d
	}
	return nil
}

func (p CampusPath) MarshalJSON() ([]byte, error) {
	if p.Distance != nil {
		return json.Marshal([]interface{}{p.From, p.To, *p.Distance})
	}
	return json.Marshal([]interface{}{p.From, p.To})
}

// CampusConfig is the top-level campus schema, one per deployment.
type CampusConfig struct {
	MapSettings   MapSettings               `json:"map_settings"`
	Buildings     map[string]BuildingConfig `json:"buildings" validate:"dive"`
	Intersections map[string][2]float64     `json:"intersections"`
	CampusPaths   []CampusPath              `json:"campus_paths"`
}

// HasNode reports whether an id names a building or intersection.
func (c *CampusConfig) HasNode(id string) bool {
	if _, ok := c.Buildings[id]; ok {
		return true
	}
	_, ok := c.Intersections[id]
	return ok
}

// RoomConfig describes one room on a floor. Coordinates is local [x, y].
type RoomConfig struct {
	Name        string     `json:"name"`
	Coordinates [2]float64 `json:"coordinates"`
	Type        string     `json:"type"`
}

// FloorConnection joins two nodes on the same floor. Weight is in meters;
// when nil the engine derives it from the endpoints' local coordinates. The
// JSON form mirrors CampusPath: ["a", "b"] or ["a", "b", 12].
type FloorConnection struct {
	From   string
	To     string
	Weight *float64
}

func (c *FloorConnection) UnmarshalJSON(data []byte) error {
	var p CampusPath
	if err := p.UnmarshalJSON(data); err != nil {
		return err
	}
	c.From, c.To, c.Weight = p.From, p.To, p.Distance
	return nil
}

func (c FloorConnection) MarshalJSON() ([]byte, error) {
	return CampusPath{From: c.From, To: c.To, Distance: c.Weight}.MarshalJSON()
}

// FloorPlan carries the dimensions and local-unit scale of one floor.
type FloorPlan struct {
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	ScaleMetersPerUnit float64 `json:"scale_meters_per_unit"`
}

// FloorConfig describes one floor of a building interior.
type FloorConfig struct {
	Name        string                `json:"name"`
	Level       int                   `json:"level"`
	Rooms       map[string]RoomConfig `json:"rooms"`
	Connections []FloorConnection     `json:"connections"`
	Entrances   []string              `json:"entrances"`
	FloorPlan   FloorPlan             `json:"floor_plan"`
}

// VerticalConnection is a stair or elevator shaft linking floors at a fixed
// location. Its per-floor nodes are connected between consecutive declared
// floors.
type VerticalConnection struct {
	ID       string     `json:"id" validate:"required"`
	Name     string     `json:"name"`
	Floors   []string   `json:"floors" validate:"min=2"`
	Location [2]float64 `json:"location"`
}

// VerticalConnections groups a building's stairs and elevators.
type VerticalConnections struct {
	Stairs    []VerticalConnection `json:"stairs" validate:"dive"`
	Elevators []VerticalConnection `json:"elevators" validate:"dive"`
}

// BuildingInterior is the per-building interior schema.
//
// EntranceCampusNodes optionally maps an entrance room id to the campus
// node it opens onto; entrances without a mapping proxy to the building's
// own campus node.
type BuildingInterior struct {
	BuildingID          string                 `json:"building_id" validate:"required"`
	BuildingName        string                 `json:"building_name"`
	Floors              map[string]FloorConfig `json:"floors" validate:"required,dive"`
	VerticalConnections VerticalConnections    `json:"vertical_connections"`
	EntranceCampusNodes map[string]string      `json:"entrance_campus_nodes,omitempty"`
}

var validate = validator.New()

// ValidateCampus checks the campus schema beyond what JSON decoding
// enforces: struct constraints, finite coordinates, and path endpoints that
// name declared nodes.
func ValidateCampus(cfg *CampusConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("campus config: %w", err)
	}
	for id, b := range cfg.Buildings {
		if err := finiteCoord(b.Coordinates); err != nil {
			return fmt.Errorf("building %q: %w", id, err)
		}
	}
	for id, coord := range cfg.Intersections {
		if err := finiteCoord(coord); err != nil {
			return fmt.Errorf("intersection %q: %w", id, err)
		}
	}
	for _, p := range cfg.CampusPaths {
		if !cfg.HasNode(p.From) {
			return fmt.Errorf("campus path %q-%q references unknown node %q", p.From, p.To, p.From)
		}
		if !cfg.HasNode(p.To) {
			return fmt.Errorf("campus path %q-%q references unknown node %q", p.From, p.To, p.To)
		}
		if p.Distance != nil && *p.Distance < 0 {
			return fmt.Errorf("campus path %q-%q has negative distance", p.From, p.To)
		}
	}
	return nil
}

// ValidateInterior checks the interior schema: struct constraints, finite
// coordinates, entrances that name rooms on their floor, and vertical
// connections that name declared floors.
func ValidateInterior(cfg *BuildingInterior) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("interior config %q: %w", cfg.BuildingID, err)
	}
	for floorID, floor := range cfg.Floors {
		for roomID, room := range floor.Rooms {
			if err := finiteCoord(room.Coordinates); err != nil {
				return fmt.Errorf("room %q on floor %q: %w", roomID, floorID, err)
			}
		}
		for _, entrance := range floor.Entrances {
			if _, ok := floor.Rooms[entrance]; !ok {
				return fmt.Errorf("entrance %q is not a room on floor %q", entrance, floorID)
			}
		}
		for _, conn := range floor.Connections {
			if conn.Weight != nil && *conn.Weight < 0 {
				return fmt.Errorf("connection %q-%q on floor %q has negative weight", conn.From, conn.To, floorID)
			}
		}
	}
	for _, vc := range append(cfg.VerticalConnections.Stairs, cfg.VerticalConnections.Elevators...) {
		for _, floorID := range vc.Floors {
			if _, ok := cfg.Floors[floorID]; !ok {
				return fmt.Errorf("vertical connection %q references unknown floor %q", vc.ID, floorID)
			}
		}
	}
	return nil
}

func finiteCoord(c [2]float64) error {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("coordinate %v is not finite", v)
		}
	}
	return nil
}
