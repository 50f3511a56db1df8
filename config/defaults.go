package config

func floatPtr(v float64) *float64 { return &v }

// DefaultCampus is the built-in campus used when no campus_config.json is
// present, mirroring the sample Manhattan campus shipped with the project.
func DefaultCampus() *CampusConfig {
	return &CampusConfig{
		MapSettings: MapSettings{
			CenterCoordinates: [2]float64{40.7831, -73.9712},
			MapBoundsKM:       2.0,
			ZoomLevel:         16,
		},
		Buildings: map[string]BuildingConfig{
			"Main_Library": {
				Name:        "Main Library",
				Coordinates: [2]float64{40.7831, -73.9712},
				Description: "Central library with study spaces and resources",
				Type:        "academic",
			},
			"Engineering_Building": {
				Name:        "Engineering Building",
				Coordinates: [2]float64{40.7851, -73.9732},
				Description: "Home to all engineering departments",
				Type:        "academic",
			},
			"Student_Center": {
				Name:        "Student Center",
				Coordinates: [2]float64{40.7811, -73.9692},
				Description: "Dining, events, and student activities",
				Type:        "student_services",
			},
			"Science_Building": {
				Name:        "Science Building",
				Coordinates: [2]float64{40.7871, -73.9752},
				Description: "Physics, Chemistry, and Biology labs",
				Type:        "academic",
			},
			"Gym": {
				Name:        "Recreation Center",
				Coordinates: [2]float64{40.7861, -73.9682},
				Description: "Fitness center and sports facilities",
				Type:        "recreation",
			},
		},
		Intersections: map[string][2]float64{
			"intersection_1": {40.7831, -73.9692},
			"intersection_2": {40.7841, -73.9712},
			"intersection_3": {40.7821, -73.9732},
			"intersection_4": {40.7851, -73.9712},
		},
		CampusPaths: []CampusPath{
			{From: "Main_Library", To: "intersection_1"},
			{From: "Main_Library", To: "intersection_2"},
			{From: "intersection_1", To: "Student_Center"},
			{From: "intersection_1", To: "Gym"},
			{From: "intersection_2", To: "intersection_4"},
			{From: "intersection_2", To: "intersection_3"},
			{From: "intersection_4", To: "Engineering_Building"},
			{From: "intersection_4", To: "Science_Building", Distance: floatPtr(320)},
			{From: "intersection_3", To: "Engineering_Building"},
		},
	}
}
