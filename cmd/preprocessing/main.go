package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"lintang/busnavigator/pkg/config"
	"lintang/busnavigator/pkg/kv"
	"lintang/busnavigator/pkg/osmparser"
	"lintang/busnavigator/pkg/transitparser"

	"github.com/cockroachdb/pebble"
	"golang.org/x/exp/slog"
)

var (
	configFile = flag.String("config", "", "config file (.yaml / .toml), kosong = default")
	carMap     = flag.String("car", "", "map file road network mobil, override data.car_map_file")
	walkMap    = flag.String("walk", "", "map file road network jalan kaki, override data.walk_map_file")
)

func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if *carMap != "" {
		cfg.Data.CarMapFile = *carMap
	}
	if *walkMap != "" {
		cfg.Data.WalkMapFile = *walkMap
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("preprocessing failed", "error", err)
		os.Exit(1)
	}
	logger.Info("preprocessing done", "db", cfg.Data.DBPath)
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	db, err := pebble.Open(cfg.Data.DBPath, &pebble.Options{})
	if err != nil {
		return err
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	for _, m := range []struct{ name, path string }{
		{kv.RoadGraphCar, cfg.Data.CarMapFile},
		{kv.RoadGraphWalk, cfg.Data.WalkMapFile},
	} {
		g, err := osmparser.LoadRoadGraph(ctx, m.path)
		if err != nil {
			return err
		}
		logger.Info("road graph built", "graph", m.name, "nodes", g.GetNumNodes(), "edges", g.GetNumEdges())
		if err := kvDB.SaveRoadGraph(m.name, g); err != nil {
			return err
		}
	}

	network, err := transitparser.LoadTransitNetwork(cfg.Data.RoutesFile, cfg.Data.StopsFile, cfg.Data.TripsFile)
	if err != nil {
		return err
	}
	logger.Info("transit network built",
		"stops", network.Graph.GetNumStops(), "edges", network.Graph.GetNumEdges(), "routes", len(network.Routes))
	if err := kvDB.SaveTransitNetwork(network); err != nil {
		return err
	}

	return kvDB.CreateStopKV(network.StopList(), true)
}
