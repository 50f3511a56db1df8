package routing

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y345-git/Campus-Navigation/config"
)

// fakeSource serves configuration from memory and counts reads, so tests
// can observe when the cache recompiles.
type fakeSource struct {
	mu          sync.Mutex
	campus      *config.CampusConfig
	interiors   map[string]*config.BuildingInterior
	campusReads int
	fail        bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		campus:    testCampusConfig(),
		interiors: map[string]*config.BuildingInterior{"library": testInteriorConfig()},
	}
}

func (f *fakeSource) Campus() (*config.CampusConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campusReads++
	if f.fail {
		return nil, fmt.Errorf("config unavailable")
	}
	return f.campus, nil
}

func (f *fakeSource) Interior(buildingID string) (*config.BuildingInterior, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.interiors[buildingID]
	if !ok {
		return nil, fmt.Errorf("building %q: %w", buildingID, config.ErrNoInterior)
	}
	if f.fail {
		return nil, fmt.Errorf("config unavailable")
	}
	return cfg, nil
}

func (f *fakeSource) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeSource) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.campusReads
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCacheCompilesOnceUntilInvalidated(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	first, err := cache.Campus()
	require.NoError(t, err)
	second, err := cache.Campus()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.reads())

	cache.InvalidateCampus()
	third, err := cache.Campus()
	require.NoError(t, err)
	assert.Equal(t, 2, src.reads())
	assert.NotSame(t, first, third)
}

func TestCacheRebuildIsIdempotent(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	before, err := cache.Campus()
	require.NoError(t, err)
	pathBefore, err := ShortestPath(before, "library", "gym")
	require.NoError(t, err)

	cache.InvalidateCampus()
	after, err := cache.Campus()
	require.NoError(t, err)
	pathAfter, err := ShortestPath(after, "library", "gym")
	require.NoError(t, err)

	assert.Equal(t, before.EdgeCount(), after.EdgeCount())
	assert.Equal(t, len(before.Nodes), len(after.Nodes))
	assert.Equal(t, pathBefore.Weight, pathAfter.Weight)
	assert.Equal(t, pathBefore.Nodes, pathAfter.Nodes)
}

func TestCacheServesPriorGraphWhenRebuildFails(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	good, err := cache.Campus()
	require.NoError(t, err)

	src.setFail(true)
	cache.InvalidateCampus()

	served, err := cache.Campus()
	require.NoError(t, err)
	assert.Same(t, good, served)

	// once the config recovers, the rebuild goes through
	src.setFail(false)
	recovered, err := cache.Campus()
	require.NoError(t, err)
	assert.NotSame(t, good, recovered)
}

func TestCacheFailsWhenNoPriorGraphExists(t *testing.T) {
	src := newFakeSource()
	src.setFail(true)
	cache := NewCache(src, testLogger())

	_, err := cache.Campus()
	require.Error(t, err)
}

func TestCacheBuildingGraphs(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	bg, err := cache.Building("library")
	require.NoError(t, err)
	assert.Equal(t, "library", bg.BuildingID)

	again, err := cache.Building("library")
	require.NoError(t, err)
	assert.Same(t, bg, again)

	cache.InvalidateBuilding("library")
	rebuilt, err := cache.Building("library")
	require.NoError(t, err)
	assert.NotSame(t, bg, rebuilt)
}

func TestCacheBuildingWithoutInterior(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	_, err := cache.Building("gym")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCacheInvalidateDispatch(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	_, err := cache.Campus()
	require.NoError(t, err)
	_, err = cache.Building("library")
	require.NoError(t, err)

	cache.Invalidate(config.ScopeCampus)
	cache.Invalidate("library")

	_, err = cache.Campus()
	require.NoError(t, err)
	assert.Equal(t, 2, src.reads())
}

func TestCacheConcurrentReadersDuringInvalidation(t *testing.T) {
	src := newFakeSource()
	cache := NewCache(src, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				g, err := cache.Campus()
				assert.NoError(t, err)
				assert.Len(t, g.Nodes, 3)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			cache.InvalidateCampus()
		}
	}()
	wg.Wait()
}
