package models

// RouteRequest asks for the shortest campus route between two campus nodes.
type RouteRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// RouteToRoomRequest asks for a composed route from a campus node to a room
// inside a building.
type RouteToRoomRequest struct {
	Start    string `json:"start" binding:"required"`
	Building string `json:"building" binding:"required"`
	Floor    string `json:"floor" binding:"required"`
	Room     string `json:"room" binding:"required"`
}

// InteriorRouteRequest asks for a route between two rooms inside one
// building.
type InteriorRouteRequest struct {
	StartFloor string `json:"start_floor" binding:"required"`
	StartRoom  string `json:"start_room" binding:"required"`
	EndFloor   string `json:"end_floor" binding:"required"`
	EndRoom    string `json:"end_room" binding:"required"`
}

// BuildingRequest creates or replaces a campus building.
type BuildingRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

// IntersectionRequest creates or replaces a path intersection.
type IntersectionRequest struct {
	ID  string  `json:"id" binding:"required"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PathRequest creates or deletes a campus path. Distance in meters is
// optional; when absent the engine derives it from the endpoint
// coordinates.
type PathRequest struct {
	From     string   `json:"from" binding:"required"`
	To       string   `json:"to" binding:"required"`
	Distance *float64 `json:"distance,omitempty"`
}
