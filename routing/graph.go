package routing

// NodeKind tags what a graph node represents.
type NodeKind string

const (
	KindBuilding     NodeKind = "building"
	KindIntersection NodeKind = "intersection"
	KindRoom         NodeKind = "room"
	KindJunction     NodeKind = "junction"
	KindStairs       NodeKind = "stairs"
	KindElevator     NodeKind = "elevator"
)

// ModeKind selects which distance function a graph uses for derived edge
// weights.
type ModeKind int

const (
	ModeOutdoor ModeKind = iota
	ModeIndoor
)

// Mode tags a graph as outdoor (geographic) or indoor (planar with a
// local-units-to-meters scale). Carrying the mode on the graph value keeps
// distance selection data-driven rather than a call-site convention.
type Mode struct {
	Kind  ModeKind
	Scale float64
}

func OutdoorMode() Mode {
	return Mode{Kind: ModeOutdoor}
}

func IndoorMode(scale float64) Mode {
	if scale <= 0 {
		scale = 1.0
	}
	return Mode{Kind: ModeIndoor, Scale: scale}
}

// Distance applies the mode's distance function to two coordinates.
func (m Mode) Distance(a, b Coordinate) float64 {
	if m.Kind == ModeIndoor {
		return EuclideanDistance(a, b, m.Scale)
	}
	return HaversineDistance(a, b)
}

// Node is a point in a routing graph. Nodes are immutable once the graph is
// compiled.
type Node struct {
	ID          string
	Coord       Coordinate
	Kind        NodeKind
	Name        string
	Description string
	Type        string
	Floor       string
}

// Edge is one direction of an undirected weighted connection. Weight is in
// meters.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Graph is a compiled, read-only adjacency structure. Every edge appears in
// both endpoints' adjacency lists.
type Graph struct {
	Mode  Mode
	Nodes map[string]Node
	Edges map[string][]Edge
}

// EdgeWeight reports the weight of the direct edge between two nodes, if one
// exists.
func (g *Graph) EdgeWeight(from, to string) (float64, bool) {
	for _, e := range g.Edges[from] {
		if e.To == to {
			return e.Weight, true
		}
	}
	return 0, false
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, adj := range g.Edges {
		total += len(adj)
	}
	return total / 2
}

type edgeKey struct {
	a, b string
}

func newEdgeKey(from, to string) edgeKey {
	if from < to {
		return edgeKey{a: from, b: to}
	}
	return edgeKey{a: to, b: from}
}

// Builder assembles a Graph from node and edge declarations, deriving edge
// weights from the graph mode's distance function when no explicit weight is
// given.
type Builder struct {
	graph *Graph
	seen  map[edgeKey]bool
	err   error
}

func NewBuilder(mode Mode) *Builder {
	return &Builder{
		graph: &Graph{
			Mode:  mode,
			Nodes: make(map[string]Node),
			Edges: make(map[string][]Edge),
		},
		seen: make(map[edgeKey]bool),
	}
}

// AddNode registers a node. Duplicate ids are a configuration error.
func (b *Builder) AddNode(n Node) *Builder {
	if b.err != nil {
		return b
	}
	if n.ID == "" {
		b.err = configErrorf("node with empty id")
		return b
	}
	if _, ok := b.graph.Nodes[n.ID]; ok {
		b.err = configErrorf("duplicate node id %q", n.ID)
		return b
	}
	b.graph.Nodes[n.ID] = n
	return b
}

// AddEdge inserts an undirected edge with an explicit weight in meters.
func (b *Builder) AddEdge(from, to string, weight float64) *Builder {
	if b.err != nil {
		return b
	}
	if weight < 0 {
		b.err = configErrorf("negative weight %v on edge %q-%q", weight, from, to)
		return b
	}
	b.insert(from, to, weight)
	return b
}

// Connect inserts an undirected edge whose weight is derived from the two
// endpoints' coordinates via the graph mode's distance function.
func (b *Builder) Connect(from, to string) *Builder {
	if b.err != nil {
		return b
	}
	a, okA := b.graph.Nodes[from]
	z, okZ := b.graph.Nodes[to]
	if !okA || !okZ {
		b.missing(from, to)
		return b
	}
	b.insert(from, to, b.graph.Mode.Distance(a.Coord, z.Coord))
	return b
}

func (b *Builder) insert(from, to string, weight float64) {
	if _, ok := b.graph.Nodes[from]; !ok {
		b.missing(from, to)
		return
	}
	if _, ok := b.graph.Nodes[to]; !ok {
		b.missing(from, to)
		return
	}
	if from == to {
		b.err = configErrorf("self-loop on node %q", from)
		return
	}
	key := newEdgeKey(from, to)
	if b.seen[key] {
		b.err = configErrorf("duplicate edge %q-%q", from, to)
		return
	}
	b.seen[key] = true
	b.graph.Edges[from] = append(b.graph.Edges[from], Edge{From: from, To: to, Weight: weight})
	b.graph.Edges[to] = append(b.graph.Edges[to], Edge{From: to, To: from, Weight: weight})
}

func (b *Builder) missing(from, to string) {
	if _, ok := b.graph.Nodes[from]; !ok {
		b.err = configErrorf("edge %q-%q references unknown node %q", from, to, from)
		return
	}
	b.err = configErrorf("edge %q-%q references unknown node %q", from, to, to)
}

// Build returns the compiled graph, or the first configuration error
// encountered.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.graph, nil
}
