package routing

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/y345-git/Campus-Navigation/config"
)

// Source supplies the configuration a cache compiles graphs from. The
// config.Store satisfies it.
type Source interface {
	Campus() (*config.CampusConfig, error)
	Interior(buildingID string) (*config.BuildingInterior, error)
}

// Cache holds the compiled campus graph and one compiled interior graph per
// building. Compiled graphs are immutable; a rebuild produces a new value
// that atomically replaces the old one, so concurrent readers either see
// the prior complete graph or the new one, never a partial build. A rebuild
// that fails keeps serving the prior good graph.
type Cache struct {
	src Source
	log *slog.Logger

	mu            sync.RWMutex
	campus        *Graph
	campusStale   bool
	buildings     map[string]*BuildingGraph
	buildingStale map[string]bool
}

func NewCache(src Source, log *slog.Logger) *Cache {
	return &Cache{
		src:           src,
		log:           log,
		campusStale:   true,
		buildings:     make(map[string]*BuildingGraph),
		buildingStale: make(map[string]bool),
	}
}

// Campus returns the compiled campus graph, rebuilding it first if it has
// been invalidated.
func (c *Cache) Campus() (*Graph, error) {
	c.mu.RLock()
	if c.campus != nil && !c.campusStale {
		g := c.campus
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()
	return c.rebuildCampus()
}

func (c *Cache) rebuildCampus() (*Graph, error) {
	cfg, err := c.src.Campus()
	if err == nil {
		var graph *Graph
		if graph, err = CompileCampus(cfg); err == nil {
			c.mu.Lock()
			c.campus = graph
			c.campusStale = false
			c.mu.Unlock()
			c.log.Debug("campus graph rebuilt", "nodes", len(graph.Nodes), "edges", graph.EdgeCount())
			return graph, nil
		}
	}

	c.mu.RLock()
	prior := c.campus
	c.mu.RUnlock()
	if prior != nil {
		c.log.Error("campus graph rebuild failed, serving prior graph", "error", err)
		return prior, nil
	}
	return nil, fmt.Errorf("compile campus graph: %w", err)
}

// Building returns a building's compiled interior graph, or ErrNotFound if
// the building has no interior configuration.
func (c *Cache) Building(buildingID string) (*BuildingGraph, error) {
	c.mu.RLock()
	if g, ok := c.buildings[buildingID]; ok && !c.buildingStale[buildingID] {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()
	return c.rebuildBuilding(buildingID)
}

func (c *Cache) rebuildBuilding(buildingID string) (*BuildingGraph, error) {
	cfg, err := c.src.Interior(buildingID)
	if errors.Is(err, config.ErrNoInterior) {
		c.mu.Lock()
		delete(c.buildings, buildingID)
		delete(c.buildingStale, buildingID)
		c.mu.Unlock()
		return nil, fmt.Errorf("interior of building %q: %w", buildingID, ErrNotFound)
	}
	if err == nil {
		var graph *BuildingGraph
		if graph, err = CompileInterior(cfg); err == nil {
			c.mu.Lock()
			c.buildings[buildingID] = graph
			delete(c.buildingStale, buildingID)
			c.mu.Unlock()
			c.log.Debug("interior graph rebuilt", "building", buildingID,
				"nodes", len(graph.Nodes), "edges", graph.EdgeCount())
			return graph, nil
		}
	}

	c.mu.RLock()
	prior, ok := c.buildings[buildingID]
	c.mu.RUnlock()
	if ok {
		c.log.Error("interior graph rebuild failed, serving prior graph",
			"building", buildingID, "error", err)
		return prior, nil
	}
	return nil, fmt.Errorf("compile interior graph for %q: %w", buildingID, err)
}

// InvalidateCampus marks the campus graph stale; the next read recompiles
// it from current configuration.
func (c *Cache) InvalidateCampus() {
	c.mu.Lock()
	c.campusStale = true
	c.mu.Unlock()
}

// InvalidateBuilding marks one building's interior graph stale.
func (c *Cache) InvalidateBuilding(buildingID string) {
	c.mu.Lock()
	c.buildingStale[buildingID] = true
	c.mu.Unlock()
}

// Invalidate dispatches a config change notification scope: the campus
// scope or a building id.
func (c *Cache) Invalidate(scope string) {
	if scope == config.ScopeCampus {
		c.InvalidateCampus()
		return
	}
	c.InvalidateBuilding(scope)
}
