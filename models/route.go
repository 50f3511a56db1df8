package models

// RouteResponse carries a computed route for the client.
type RouteResponse struct {
	Path            []string      `json:"path"`
	Coordinates     [][2]float64  `json:"coordinates"`
	Segments        []SegmentInfo `json:"segments"`
	TotalDistanceM  float64       `json:"total_distance_m"`
	WalkTimeMinutes int           `json:"walk_time_minutes"`
	Entrance        string        `json:"entrance,omitempty"`
}

// SegmentInfo annotates one step of a route.
type SegmentInfo struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	DistanceM   float64 `json:"distance_m"`
	CumulativeM float64 `json:"cumulative_m"`
}

// DestinationInfo is one reachable building from a starting point.
type DestinationInfo struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DistanceM       float64    `json:"distance_m"`
	WalkTimeMinutes int        `json:"walk_time_minutes"`
	Coordinates     [2]float64 `json:"coordinates"`
}
