package routing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGraph builds a -- b -- c -- d with the given weights, plus an
// isolated node "island".
func lineGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewBuilder(OutdoorMode()).
		AddNode(Node{ID: "a"}).
		AddNode(Node{ID: "b"}).
		AddNode(Node{ID: "c"}).
		AddNode(Node{ID: "d"}).
		AddNode(Node{ID: "island"}).
		AddEdge("a", "b", 10).
		AddEdge("b", "c", 20).
		AddEdge("c", "d", 30).
		Build()
	require.NoError(t, err)
	return g
}

func TestShortestPathSameNode(t *testing.T) {
	g := lineGraph(t)

	path, err := ShortestPath(g, "b", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, path.Nodes)
	assert.Zero(t, path.Weight)
}

func TestShortestPathLine(t *testing.T) {
	g := lineGraph(t)

	path, err := ShortestPath(g, "a", "d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, path.Nodes)
	assert.Equal(t, 60.0, path.Weight)
}

func TestShortestPathLongChainOrdering(t *testing.T) {
	b := NewBuilder(OutdoorMode())
	want := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("n%02d", i)
		b.AddNode(Node{ID: id})
		want = append(want, id)
		if i > 0 {
			b.AddEdge(want[i-1], id, 1)
		}
	}
	g, err := b.Build()
	require.NoError(t, err)

	path, err := ShortestPath(g, "n00", "n49")
	require.NoError(t, err)
	assert.Equal(t, want, path.Nodes)
	assert.Equal(t, 49.0, path.Weight)
}

func TestShortestPathUndirectedSymmetry(t *testing.T) {
	g := lineGraph(t)

	forward, err := ShortestPath(g, "a", "d")
	require.NoError(t, err)
	backward, err := ShortestPath(g, "d", "a")
	require.NoError(t, err)
	assert.Equal(t, forward.Weight, backward.Weight)
}

func TestShortestPathPicksCheaperDetour(t *testing.T) {
	// diamond: a-b-d costs 30, a-c-d costs 12
	g, err := NewBuilder(OutdoorMode()).
		AddNode(Node{ID: "a"}).
		AddNode(Node{ID: "b"}).
		AddNode(Node{ID: "c"}).
		AddNode(Node{ID: "d"}).
		AddEdge("a", "b", 10).
		AddEdge("b", "d", 20).
		AddEdge("a", "c", 5).
		AddEdge("c", "d", 7).
		Build()
	require.NoError(t, err)

	path, err := ShortestPath(g, "a", "d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, path.Nodes)
	assert.Equal(t, 12.0, path.Weight)
}

func TestShortestPathTriangleEquality(t *testing.T) {
	g := lineGraph(t)

	full, err := ShortestPath(g, "a", "d")
	require.NoError(t, err)

	// every node on a shortest path splits it exactly
	for _, via := range full.Nodes {
		head, err := ShortestPath(g, "a", via)
		require.NoError(t, err)
		tail, err := ShortestPath(g, via, "d")
		require.NoError(t, err)
		assert.InDelta(t, full.Weight, head.Weight+tail.Weight, 1e-9)
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	g := lineGraph(t)

	_, err := ShortestPath(g, "a", "island")
	require.ErrorIs(t, err, ErrNoPath)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestShortestPathUnknownNodes(t *testing.T) {
	g := lineGraph(t)

	_, err := ShortestPath(g, "ghost", "a")
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrNoPath)

	_, err = ShortestPath(g, "a", "ghost")
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrNoPath)
}

func TestDistancesFrom(t *testing.T) {
	g := lineGraph(t)

	dist, err := DistancesFrom(g, "a")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"a": 0, "b": 10, "c": 30, "d": 60}, dist)
	_, reachable := dist["island"]
	assert.False(t, reachable)
}

func TestDistancesFromUnknownSource(t *testing.T) {
	g := lineGraph(t)

	_, err := DistancesFrom(g, "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}
