package routing

import (
	"sort"

	"github.com/y345-git/Campus-Navigation/config"
)

// Fixed edge weights for vertical connections, in meters-equivalent.
// Stairs cost more than elevators regardless of physical distance.
const (
	StairsWeight   = 15.0
	ElevatorWeight = 5.0
)

// FloorRoom addresses a node inside one building as a comparable value,
// avoiding string-parsed composite ids.
type FloorRoom struct {
	Floor string
	Room  string
}

// Entrance is an interior node reachable from the campus graph. CampusNode
// is the campus-side proxy the outdoor leg routes to; empty means the
// building's own campus node.
type Entrance struct {
	NodeID     string
	CampusNode string
}

// BuildingGraph is a compiled interior graph together with the lookup and
// entrance data the route composer needs.
type BuildingGraph struct {
	*Graph
	BuildingID string
	Rooms      map[FloorRoom]string
	Entrances  []Entrance
}

// CompileCampus builds the outdoor graph from the campus configuration.
// Buildings and intersections become nodes uniformly; paths without an
// explicit distance get the haversine distance between their endpoints.
func CompileCampus(cfg *config.CampusConfig) (*Graph, error) {
	b := NewBuilder(OutdoorMode())

	for id, building := range cfg.Buildings {
		b.AddNode(Node{
			ID:          id,
			Coord:       Coordinate{Lat: building.Coordinates[0], Lon: building.Coordinates[1]},
			Kind:        KindBuilding,
			Name:        building.Name,
			Description: building.Description,
			Type:        building.Type,
		})
	}
	for id, coord := range cfg.Intersections {
		b.AddNode(Node{
			ID:    id,
			Coord: Coordinate{Lat: coord[0], Lon: coord[1]},
			Kind:  KindIntersection,
			Name:  id,
		})
	}
	for _, p := range cfg.CampusPaths {
		if p.Distance != nil {
			b.AddEdge(p.From, p.To, *p.Distance)
		} else {
			b.Connect(p.From, p.To)
		}
	}

	return b.Build()
}

// CompileInterior builds one building's indoor graph. Node ids are
// floor-qualified ("ground/office_101") but all resolution goes through the
// Rooms index, never through id parsing. Entrances are collected in floor
// order (level, then floor id) and declaration order within a floor.
func CompileInterior(cfg *config.BuildingInterior) (*BuildingGraph, error) {
	floors := sortedFloors(cfg)
	b := NewBuilder(IndoorMode(interiorScale(cfg, floors)))
	rooms := make(map[FloorRoom]string)

	for _, floorID := range floors {
		floor := cfg.Floors[floorID]
		for roomID, room := range floor.Rooms {
			nodeID := floorID + "/" + roomID
			kind := KindRoom
			if room.Type == "hallway" || room.Type == "junction" {
				kind = KindJunction
			}
			b.AddNode(Node{
				ID:    nodeID,
				Coord: Coordinate{Lat: room.Coordinates[1], Lon: room.Coordinates[0]},
				Kind:  kind,
				Name:  room.Name,
				Type:  room.Type,
				Floor: floorID,
			})
			rooms[FloorRoom{Floor: floorID, Room: roomID}] = nodeID
		}
	}

	addVertical(b, rooms, cfg.VerticalConnections.Stairs, KindStairs, "stairs_", StairsWeight)
	addVertical(b, rooms, cfg.VerticalConnections.Elevators, KindElevator, "elevator_", ElevatorWeight)

	for _, floorID := range floors {
		for _, conn := range cfg.Floors[floorID].Connections {
			from, okFrom := rooms[FloorRoom{Floor: floorID, Room: conn.From}]
			to, okTo := rooms[FloorRoom{Floor: floorID, Room: conn.To}]
			if !okFrom {
				return nil, configErrorf("connection %q-%q on floor %q references unknown node %q",
					conn.From, conn.To, floorID, conn.From)
			}
			if !okTo {
				return nil, configErrorf("connection %q-%q on floor %q references unknown node %q",
					conn.From, conn.To, floorID, conn.To)
			}
			if conn.Weight != nil {
				b.AddEdge(from, to, *conn.Weight)
			} else {
				b.Connect(from, to)
			}
		}
	}

	graph, err := b.Build()
	if err != nil {
		return nil, err
	}

	var entrances []Entrance
	for _, floorID := range floors {
		for _, entrance := range cfg.Floors[floorID].Entrances {
			nodeID, ok := rooms[FloorRoom{Floor: floorID, Room: entrance}]
			if !ok {
				return nil, configErrorf("entrance %q is not a node on floor %q", entrance, floorID)
			}
			entrances = append(entrances, Entrance{
				NodeID:     nodeID,
				CampusNode: cfg.EntranceCampusNodes[entrance],
			})
		}
	}

	return &BuildingGraph{
		Graph:      graph,
		BuildingID: cfg.BuildingID,
		Rooms:      rooms,
		Entrances:  entrances,
	}, nil
}

// addVertical materializes a shaft's per-floor nodes and links consecutive
// declared floors at the fixed weight. The per-floor local id
// ("stairs_<id>") is addressable from that floor's connections list.
func addVertical(b *Builder, rooms map[FloorRoom]string, shafts []config.VerticalConnection, kind NodeKind, prefix string, weight float64) {
	for _, shaft := range shafts {
		localID := prefix + shaft.ID
		var prior string
		for _, floorID := range shaft.Floors {
			nodeID := floorID + "/" + localID
			name := shaft.Name
			if name == "" {
				name = localID
			}
			b.AddNode(Node{
				ID:    nodeID,
				Coord: Coordinate{Lat: shaft.Location[1], Lon: shaft.Location[0]},
				Kind:  kind,
				Name:  name,
				Floor: floorID,
			})
			rooms[FloorRoom{Floor: floorID, Room: localID}] = nodeID
			if prior != "" {
				b.AddEdge(prior, nodeID, weight)
			}
			prior = nodeID
		}
	}
}

func sortedFloors(cfg *config.BuildingInterior) []string {
	floors := make([]string, 0, len(cfg.Floors))
	for id := range cfg.Floors {
		floors = append(floors, id)
	}
	sort.Slice(floors, func(i, j int) bool {
		a, z := cfg.Floors[floors[i]], cfg.Floors[floors[j]]
		if a.Level != z.Level {
			return a.Level < z.Level
		}
		return floors[i] < floors[j]
	})
	return floors
}

// interiorScale takes the lowest floor's declared scale for the whole
// building; floors within one building share a survey scale in practice.
func interiorScale(cfg *config.BuildingInterior, floors []string) float64 {
	for _, floorID := range floors {
		if s := cfg.Floors[floorID].FloorPlan.ScaleMetersPerUnit; s > 0 {
			return s
		}
	}
	return 1.0
}
