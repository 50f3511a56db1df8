package models

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ApiError   `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BuildingInfo is one campus building in listings.
type BuildingInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Coordinates [2]float64 `json:"coordinates"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type,omitempty"`
}

// RoomInfo is one room in a building's room listing.
type RoomInfo struct {
	ID          string     `json:"id"`
	Floor       string     `json:"floor"`
	Name        string     `json:"name,omitempty"`
	Type        string     `json:"type,omitempty"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GraphInfo summarizes the compiled campus graph.
type GraphInfo struct {
	Nodes     int  `json:"nodes"`
	Edges     int  `json:"edges"`
	Buildings int  `json:"buildings"`
	Connected bool `json:"connected"`
}
