package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	campusFile     = "campus_config.json"
	buildingsDir   = "buildings"
	interiorSuffix = "_interior.json"
)

// ScopeCampus is the change-notification scope for the campus graph; any
// other scope value is a building id.
const ScopeCampus = "campus"

// Store owns the persisted configuration. Mutations validate, persist to
// disk, swap the in-memory snapshot, and notify listeners so the graph cache
// can invalidate the affected entries. Readers receive immutable snapshots.
type Store struct {
	dir string
	log *slog.Logger

	mu        sync.RWMutex
	campus    *CampusConfig
	interiors map[string]*BuildingInterior

	listenerMu sync.RWMutex
	listeners  []func(scope string)
}

// Open loads the configuration under dir. A missing campus_config.json
// falls back to a small built-in campus so a fresh deployment starts
// usable.
func Open(dir string, log *slog.Logger) (*Store, error) {
	s := &Store{
		dir:       dir,
		log:       log,
		interiors: make(map[string]*BuildingInterior),
	}

	campus, err := loadCampus(filepath.Join(dir, campusFile))
	if os.IsNotExist(err) {
		log.Warn("campus config not found, using default campus", "path", filepath.Join(dir, campusFile))
		campus = DefaultCampus()
	} else if err != nil {
		return nil, err
	}
	s.campus = campus

	if err := s.loadInteriors(); err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		"buildings", len(s.campus.Buildings),
		"intersections", len(s.campus.Intersections),
		"paths", len(s.campus.CampusPaths),
		"interiors", len(s.interiors))
	return s, nil
}

func loadCampus(path string) (*CampusConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg CampusConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ValidateCampus(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadInterior(path string) (*BuildingInterior, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg BuildingInterior
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ValidateInterior(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Store) loadInteriors() error {
	dir := filepath.Join(s.dir, buildingsDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), interiorSuffix) {
			continue
		}
		cfg, err := loadInterior(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		s.interiors[cfg.BuildingID] = cfg
	}
	return nil
}

// OnChange registers a listener called with ScopeCampus or a building id
// after every successful configuration change.
func (s *Store) OnChange(fn func(scope string)) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(scope string) {
	s.listenerMu.RLock()
	defer s.listenerMu.RUnlock()
	for _, fn := range s.listeners {
		fn(scope)
	}
}

// Campus returns the current campus configuration snapshot. The snapshot is
// replaced wholesale on mutation and must not be modified by callers.
func (s *Store) Campus() (*CampusConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campus, nil
}

// Interior returns a building's interior configuration snapshot, or
// ErrNoInterior when the building has none.
func (s *Store) Interior(buildingID string) (*BuildingInterior, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.interiors[buildingID]
	if !ok {
		return nil, fmt.Errorf("building %q: %w", buildingID, ErrNoInterior)
	}
	return cfg, nil
}

// Interiors returns the ids of all buildings with interior configuration.
func (s *Store) Interiors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.interiors))
	for id := range s.interiors {
		ids = append(ids, id)
	}
	return ids
}

// MapBounds returns the current map settings snapshot.
func (s *Store) MapBounds() MapSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campus.MapSettings
}

// checkBounds rejects a coordinate outside the campus map area. Caller
// holds s.mu.
func (s *Store) checkBounds(id string, coord [2]float64) error {
	if s.campus.MapSettings.Contains(coord[0], coord[1]) {
		return nil
	}
	return fmt.Errorf("node %q at (%v, %v) is outside the campus map bounds", id, coord[0], coord[1])
}

// PutBuilding adds or replaces a campus building. Its coordinates must
// fall inside the campus map bounds.
func (s *Store) PutBuilding(id string, b BuildingConfig) error {
	if id == "" {
		return fmt.Errorf("building id must not be empty")
	}
	s.mu.Lock()
	if err := s.checkBounds(id, b.Coordinates); err != nil {
		s.mu.Unlock()
		return err
	}
	next := s.campus.clone()
	next.Buildings[id] = b
	if err := s.commitCampus(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify(ScopeCampus)
	return nil
}

// DeleteBuilding removes a building, any paths touching it, and its
// interior configuration.
func (s *Store) DeleteBuilding(id string) error {
	s.mu.Lock()
	if _, ok := s.campus.Buildings[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("building %q does not exist", id)
	}
	next := s.campus.clone()
	delete(next.Buildings, id)
	next.CampusPaths = pathsWithout(next.CampusPaths, id)
	if err := s.commitCampus(next); err != nil {
		s.mu.Unlock()
		return err
	}
	hadInterior := false
	if _, ok := s.interiors[id]; ok {
		hadInterior = true
		delete(s.interiors, id)
		if err := os.Remove(s.interiorPath(id)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("could not remove interior config", "building", id, "error", err)
		}
	}
	s.mu.Unlock()
	s.notify(ScopeCampus)
	if hadInterior {
		s.notify(id)
	}
	return nil
}

// PutIntersection adds or replaces a path intersection. Its coordinates
// must fall inside the campus map bounds.
func (s *Store) PutIntersection(id string, coord [2]float64) error {
	if id == "" {
		return fmt.Errorf("intersection id must not be empty")
	}
	s.mu.Lock()
	if err := s.checkBounds(id, coord); err != nil {
		s.mu.Unlock()
		return err
	}
	next := s.campus.clone()
	next.Intersections[id] = coord
	if err := s.commitCampus(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify(ScopeCampus)
	return nil
}

// DeleteIntersection removes an intersection and any paths touching it.
func (s *Store) DeleteIntersection(id string) error {
	s.mu.Lock()
	if _, ok := s.campus.Intersections[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("intersection %q does not exist", id)
	}
	next := s.campus.clone()
	delete(next.Intersections, id)
	next.CampusPaths = pathsWithout(next.CampusPaths, id)
	if err := s.commitCampus(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify(ScopeCampus)
	return nil
}

// AddPath adds a campus path between two existing nodes.
func (s *Store) AddPath(p CampusPath) error {
	s.mu.Lock()
	for _, existing := range s.campus.CampusPaths {
		if samePair(existing, p.From, p.To) {
			s.mu.Unlock()
			return fmt.Errorf("path %q-%q already exists", p.From, p.To)
		}
	}
	next := s.campus.clone()
	next.CampusPaths = append(next.CampusPaths, p)
	if err := s.commitCampus(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify(ScopeCampus)
	return nil
}

// DeletePath removes the path between two nodes, in either declared order.
func (s *Store) DeletePath(from, to string) error {
	s.mu.Lock()
	next := s.campus.clone()
	kept := next.CampusPaths[:0]
	removed := false
	for _, p := range next.CampusPaths {
		if samePair(p, from, to) {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("path %q-%q does not exist", from, to)
	}
	next.CampusPaths = kept
	if err := s.commitCampus(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify(ScopeCampus)
	return nil
}

// PutInterior replaces a building's interior configuration. The building
// must exist on the campus.
func (s *Store) PutInterior(buildingID string, cfg BuildingInterior) error {
	cfg.BuildingID = buildingID
	if err := ValidateInterior(&cfg); err != nil {
		return err
	}
	s.mu.Lock()
	if _, ok := s.campus.Buildings[buildingID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("building %q does not exist", buildingID)
	}
	if err := writeJSON(s.interiorPath(buildingID), &cfg); err != nil {
		s.mu.Unlock()
		return err
	}
	s.interiors[buildingID] = &cfg
	s.mu.Unlock()
	s.notify(buildingID)
	return nil
}

// reloadCampus re-reads campus_config.json from disk, used by the watcher
// when the file changes underneath the server.
func (s *Store) reloadCampus() error {
	campus, err := loadCampus(filepath.Join(s.dir, campusFile))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.campus = campus
	s.mu.Unlock()
	s.notify(ScopeCampus)
	return nil
}

// reloadInterior re-reads one interior file from disk. A missing file drops
// the interior.
func (s *Store) reloadInterior(buildingID string) error {
	cfg, err := loadInterior(s.interiorPath(buildingID))
	if os.IsNotExist(err) {
		s.mu.Lock()
		delete(s.interiors, buildingID)
		s.mu.Unlock()
		s.notify(buildingID)
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.interiors[buildingID] = cfg
	s.mu.Unlock()
	s.notify(buildingID)
	return nil
}

// commitCampus validates and persists a new campus snapshot, then swaps it
// in. Caller holds s.mu.
func (s *Store) commitCampus(next *CampusConfig) error {
	if err := ValidateCampus(next); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.dir, campusFile), next); err != nil {
		return err
	}
	s.campus = next
	return nil
}

func (s *Store) interiorPath(buildingID string) string {
	return filepath.Join(s.dir, buildingsDir, buildingID+interiorSuffix)
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (c *CampusConfig) clone() *CampusConfig {
	next := &CampusConfig{
		MapSettings:   c.MapSettings,
		Buildings:     make(map[string]BuildingConfig, len(c.Buildings)),
		Intersections: make(map[string][2]float64, len(c.Intersections)),
		CampusPaths:   append([]CampusPath(nil), c.CampusPaths...),
	}
	for id, b := range c.Buildings {
		next.Buildings[id] = b
	}
	for id, coord := range c.Intersections {
		next.Intersections[id] = coord
	}
	return next
}

func pathsWithout(paths []CampusPath, nodeID string) []CampusPath {
	kept := paths[:0]
	for _, p := range paths {
		if p.From == nodeID || p.To == nodeID {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func samePair(p CampusPath, from, to string) bool {
	return (p.From == from && p.To == to) || (p.From == to && p.To == from)
}
