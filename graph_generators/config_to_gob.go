// Command config_to_gob precompiles the campus configuration into a gob
// snapshot of the compiled graphs, so deployments with large campuses can
// skip compilation at startup.
//
// Usage: go run ./graph_generators <config_dir> <output.gob>
package main

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"

	"github.com/y345-git/Campus-Navigation/config"
	"github.com/y345-git/Campus-Navigation/routing"
)

// Snapshot is the gob-encoded bundle of compiled graphs.
type Snapshot struct {
	Campus    *routing.Graph
	Buildings map[string]*routing.BuildingGraph
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <config_dir> <output.gob>\n", os.Args[0])
		os.Exit(2)
	}
	configDir, outPath := os.Args[1], os.Args[2]

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := config.Open(configDir, log)
	if err != nil {
		log.Error("could not load configuration", "error", err)
		os.Exit(1)
	}

	campusCfg, err := store.Campus()
	if err != nil {
		log.Error("could not read campus config", "error", err)
		os.Exit(1)
	}
	campus, err := routing.CompileCampus(campusCfg)
	if err != nil {
		log.Error("campus graph did not compile", "error", err)
		os.Exit(1)
	}

	snapshot := Snapshot{
		Campus:    campus,
		Buildings: make(map[string]*routing.BuildingGraph),
	}
	for _, buildingID := range store.Interiors() {
		interiorCfg, err := store.Interior(buildingID)
		if err != nil {
			log.Error("could not read interior config", "building", buildingID, "error", err)
			os.Exit(1)
		}
		graph, err := routing.CompileInterior(interiorCfg)
		if err != nil {
			log.Error("interior graph did not compile", "building", buildingID, "error", err)
			os.Exit(1)
		}
		snapshot.Buildings[buildingID] = graph
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Error("could not create output file", "path", outPath, "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := gob.NewEncoder(out).Encode(snapshot); err != nil {
		log.Error("could not encode snapshot", "error", err)
		os.Exit(1)
	}

	log.Info("snapshot written", "path", outPath,
		"campus_nodes", len(campus.Nodes),
		"campus_edges", campus.EdgeCount(),
		"buildings", len(snapshot.Buildings))
}
