package routing

import (
	"fmt"
	"math"
	"sort"
)

// Average walking speed used for time estimates: 5 km/h.
const walkingSpeedMS = 1.39

// RoomRef addresses a room across the campus.
type RoomRef struct {
	Building string
	Floor    string
	Room     string
}

func (r RoomRef) String() string {
	return fmt.Sprintf("%s %s/%s", r.Building, r.Floor, r.Room)
}

// Segment annotates one step of a route with its distance and the running
// total up to its end.
type Segment struct {
	From       string
	To         string
	Distance   float64
	Cumulative float64
}

// Route is a computed walking route: the node sequence, parallel
// coordinates for rendering, per-segment annotations, and display totals.
// Entrance is set on composed outdoor-to-indoor routes and names the seam
// node joining the two legs.
type Route struct {
	Path            []string
	Coordinates     []Coordinate
	Segments        []Segment
	TotalDistance   float64
	WalkTimeMinutes int
	Entrance        string
}

// Destination is one reachable node from a starting building.
type Destination struct {
	ID              string
	Name            string
	Description     string
	Distance        float64
	WalkTimeMinutes int
	Coord           Coordinate
}

// Planner composes routes over the cached graphs. It performs read-only
// graph lookups and never mutates cached state, so a single Planner is safe
// for concurrent requests.
type Planner struct {
	cache *Cache
}

func NewPlanner(cache *Cache) *Planner {
	return &Planner{cache: cache}
}

// Route computes the shortest campus route between two campus nodes.
func (p *Planner) Route(start, end string) (*Route, error) {
	campus, err := p.cache.Campus()
	if err != nil {
		return nil, err
	}
	path, err := ShortestPath(campus, start, end)
	if err != nil {
		return nil, err
	}
	return assembleRoute(path, campus), nil
}

// RouteToRoom computes a composed route from a campus node to a room inside
// a building. Every declared entrance of the destination building is
// evaluated independently: the outdoor leg to the entrance's campus proxy
// plus the indoor leg from the entrance to the room. The entrance with the
// minimum combined distance wins; ties keep the earliest declared entrance.
// Entrances whose outdoor or indoor leg is unreachable are skipped; if none
// survive, the request fails as not found.
func (p *Planner) RouteToRoom(start string, room RoomRef) (*Route, error) {
	campus, err := p.cache.Campus()
	if err != nil {
		return nil, err
	}
	building, err := p.cache.Building(room.Building)
	if err != nil {
		return nil, err
	}
	roomNode, ok := building.Rooms[FloorRoom{Floor: room.Floor, Room: room.Room}]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", room, ErrNotFound)
	}
	if len(building.Entrances) == 0 {
		return nil, fmt.Errorf("building %q has no entrances: %w", room.Building, ErrNotFound)
	}

	var (
		best        float64 = math.Inf(1)
		bestOutdoor Path
		bestIndoor  Path
		bestSeam    string
	)
	for _, entrance := range building.Entrances {
		proxy := entrance.CampusNode
		if proxy == "" {
			proxy = building.BuildingID
		}
		outdoor, err := ShortestPath(campus, start, proxy)
		if err != nil {
			continue
		}
		indoor, err := ShortestPath(building.Graph, entrance.NodeID, roomNode)
		if err != nil {
			continue
		}
		if total := outdoor.Weight + indoor.Weight; total < best {
			best = total
			bestOutdoor = outdoor
			bestIndoor = indoor
			bestSeam = entrance.NodeID
		}
	}
	if math.IsInf(best, 1) {
		return nil, fmt.Errorf("no entrance of %q reachable from %q: %w", room.Building, start, ErrNoPath)
	}

	outdoorRoute := assembleRoute(bestOutdoor, campus)
	indoorRoute := assembleRoute(bestIndoor, building.Graph)

	composed := &Route{
		Path:          append(append([]string{}, bestOutdoor.Nodes...), bestIndoor.Nodes...),
		Coordinates:   append(append([]Coordinate{}, outdoorRoute.Coordinates...), indoorRoute.Coordinates...),
		TotalDistance: best,
		Entrance:      bestSeam,
	}
	composed.Segments = append(composed.Segments, outdoorRoute.Segments...)
	// The seam itself covers no distance: the entrance proxy and the
	// entrance interior node are the same physical doorway.
	cumulative := bestOutdoor.Weight
	if len(bestOutdoor.Nodes) > 0 && len(bestIndoor.Nodes) > 0 {
		composed.Segments = append(composed.Segments, Segment{
			From:       bestOutdoor.Nodes[len(bestOutdoor.Nodes)-1],
			To:         bestIndoor.Nodes[0],
			Distance:   0,
			Cumulative: cumulative,
		})
	}
	for _, seg := range indoorRoute.Segments {
		seg.Cumulative += cumulative
		composed.Segments = append(composed.Segments, seg)
	}
	composed.WalkTimeMinutes = WalkTimeMinutes(best)
	return composed, nil
}

// InteriorRoute computes the shortest route between two nodes inside one
// building.
func (p *Planner) InteriorRoute(buildingID string, from, to FloorRoom) (*Route, error) {
	building, err := p.cache.Building(buildingID)
	if err != nil {
		return nil, err
	}
	fromNode, ok := building.Rooms[from]
	if !ok {
		return nil, fmt.Errorf("room %s/%s in %q: %w", from.Floor, from.Room, buildingID, ErrNotFound)
	}
	toNode, ok := building.Rooms[to]
	if !ok {
		return nil, fmt.Errorf("room %s/%s in %q: %w", to.Floor, to.Room, buildingID, ErrNotFound)
	}
	path, err := ShortestPath(building.Graph, fromNode, toNode)
	if err != nil {
		return nil, err
	}
	return assembleRoute(path, building.Graph), nil
}

// Destinations lists every building reachable from a starting campus node,
// nearest first.
func (p *Planner) Destinations(start string) ([]Destination, error) {
	campus, err := p.cache.Campus()
	if err != nil {
		return nil, err
	}
	dist, err := DistancesFrom(campus, start)
	if err != nil {
		return nil, err
	}

	destinations := make([]Destination, 0, len(dist))
	for id, d := range dist {
		node := campus.Nodes[id]
		if node.Kind != KindBuilding || id == start {
			continue
		}
		destinations = append(destinations, Destination{
			ID:              id,
			Name:            node.Name,
			Description:     node.Description,
			Distance:        d,
			WalkTimeMinutes: WalkTimeMinutes(d),
			Coord:           node.Coord,
		})
	}
	sort.Slice(destinations, func(i, j int) bool {
		if destinations[i].Distance != destinations[j].Distance {
			return destinations[i].Distance < destinations[j].Distance
		}
		return destinations[i].ID < destinations[j].ID
	})
	return destinations, nil
}

// WalkTimeMinutes estimates walking time for a distance in meters at the
// average campus walking pace, in whole minutes with a floor of one
// minute. Even a zero-distance route reports one minute so displayed
// estimates are never zero.
func WalkTimeMinutes(distanceM float64) int {
	minutes := int(distanceM / walkingSpeedMS / 60)
	if minutes < 1 {
		return 1
	}
	return minutes
}

// assembleRoute annotates a raw path with coordinates and per-segment
// distances taken from the graph it was computed on.
func assembleRoute(path Path, g *Graph) *Route {
	route := &Route{
		Path:          path.Nodes,
		Coordinates:   make([]Coordinate, 0, len(path.Nodes)),
		TotalDistance: path.Weight,
	}
	for _, id := range path.Nodes {
		route.Coordinates = append(route.Coordinates, g.Nodes[id].Coord)
	}
	cumulative := 0.0
	for i := 0; i+1 < len(path.Nodes); i++ {
		weight, _ := g.EdgeWeight(path.Nodes[i], path.Nodes[i+1])
		cumulative += weight
		route.Segments = append(route.Segments, Segment{
			From:       path.Nodes[i],
			To:         path.Nodes[i+1],
			Distance:   weight,
			Cumulative: cumulative,
		})
	}
	route.WalkTimeMinutes = WalkTimeMinutes(path.Weight)
	return route
}
