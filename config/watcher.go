package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads configuration when the files change on disk outside the
// server (editors, deploy tooling), keeping the store and graph cache in
// sync without a restart.
type Watcher struct {
	store *Store
	log   *slog.Logger
	fs    *fsnotify.Watcher
}

// NewWatcher watches the store's config directory and its buildings
// subdirectory.
func NewWatcher(store *Store, log *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(store.dir); err != nil {
		fs.Close()
		return nil, err
	}
	// The buildings directory may not exist yet on a fresh deployment.
	if err := fs.Add(filepath.Join(store.dir, buildingsDir)); err != nil {
		log.Debug("buildings directory not watched", "error", err)
	}
	return &Watcher{store: store, log: log, fs: fs}, nil
}

// Run processes filesystem events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.handle(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(path string) {
	name := filepath.Base(path)
	switch {
	case name == campusFile:
		w.log.Info("campus config changed on disk, reloading")
		if err := w.store.reloadCampus(); err != nil {
			w.log.Error("campus config reload failed, keeping previous", "error", err)
		}
	case strings.HasSuffix(name, interiorSuffix):
		buildingID := strings.TrimSuffix(name, interiorSuffix)
		w.log.Info("interior config changed on disk, reloading", "building", buildingID)
		if err := w.store.reloadInterior(buildingID); err != nil {
			w.log.Error("interior config reload failed, keeping previous",
				"building", buildingID, "error", err)
		}
	}
}
