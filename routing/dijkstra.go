package routing

import (
	"container/heap"
	"fmt"
)

// Path is the result of a shortest-path query: the node sequence from source
// to target and its total weight in meters.
type Path struct {
	Nodes  []string
	Weight float64
}

// ShortestPath runs Dijkstra's algorithm over a compiled graph and returns
// the minimum-weight path between two nodes. It returns ErrNotFound when
// either endpoint is unknown, and ErrNoPath when both exist but are in
// different components.
func ShortestPath(g *Graph, source, target string) (Path, error) {
	if _, ok := g.Nodes[source]; !ok {
		return Path{}, fmt.Errorf("source node %q: %w", source, ErrNotFound)
	}
	if _, ok := g.Nodes[target]; !ok {
		return Path{}, fmt.Errorf("target node %q: %w", target, ErrNotFound)
	}
	if source == target {
		return Path{Nodes: []string{source}, Weight: 0}, nil
	}

	dist := map[string]float64{source: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: source, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.node
		if visited[current] {
			continue
		}
		visited[current] = true

		if current == target {
			break
		}

		for _, e := range g.Edges[current] {
			if visited[e.To] {
				continue
			}
			candidate := dist[current] + e.Weight
			if old, ok := dist[e.To]; !ok || candidate < old {
				dist[e.To] = candidate
				prev[e.To] = current
				heap.Push(pq, &pqItem{node: e.To, priority: candidate})
			}
		}
	}

	weight, ok := dist[target]
	if !ok || !visited[target] {
		return Path{}, fmt.Errorf("%q to %q: %w", source, target, ErrNoPath)
	}

	return Path{Nodes: reconstructPath(prev, source, target), Weight: weight}, nil
}

// DistancesFrom runs a full single-source Dijkstra and returns the distance
// in meters to every reachable node, including the source at distance 0.
func DistancesFrom(g *Graph, source string) (map[string]float64, error) {
	if _, ok := g.Nodes[source]; !ok {
		return nil, fmt.Errorf("source node %q: %w", source, ErrNotFound)
	}

	dist := map[string]float64{source: 0}
	visited := make(map[string]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: source, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.node
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, e := range g.Edges[current] {
			if visited[e.To] {
				continue
			}
			candidate := dist[current] + e.Weight
			if old, ok := dist[e.To]; !ok || candidate < old {
				dist[e.To] = candidate
				heap.Push(pq, &pqItem{node: e.To, priority: candidate})
			}
		}
	}

	return dist, nil
}

func reconstructPath(prev map[string]string, source, target string) []string {
	var path []string
	for current := target; ; current = prev[current] {
		path = append(path, current)
		if current == source {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	node     string
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
