package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	_ "lintang/busnavigator/docs"
	"lintang/busnavigator/pkg/config"
	"lintang/busnavigator/pkg/datastructure"
	"lintang/busnavigator/pkg/engine/transit"
	"lintang/busnavigator/pkg/kv"
	"lintang/busnavigator/pkg/osmparser"
	"lintang/busnavigator/pkg/server/rest"
	"lintang/busnavigator/pkg/server/rest/service"
	"lintang/busnavigator/pkg/transitparser"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/exp/slog"
)

var (
	configFile = flag.String("config", "", "config file (.yaml / .toml), kosong = default")
	listenAddr = flag.String("listenaddr", "", "server listen address, override server.listen_addr")
)

//	@title			busnavigator API
//	@version		1.0
//	@description	city bus + street route planner. A* di road network mobil/jalan kaki dan weighted A* di jaringan bus.

//	@contact.name	lintang birda saputra

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := pebble.Open(cfg.Data.DBPath, &pebble.Options{})
	if err != nil {
		logger.Error("open pebble", "path", cfg.Data.DBPath, "error", err)
		os.Exit(1)
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	car, walk, network, stopKV, err := loadNetworks(ctx, cfg, kvDB, logger)
	if err != nil {
		logger.Error("load networks", "error", err)
		os.Exit(1)
	}
	runtime.GC()

	searcher := transit.NewSearcher(network, cfg.SearchParams())
	var nearby service.KVDB
	if stopKV {
		nearby = kvDB
	}
	navigatorSvc := service.NewNavigationService(
		service.NewRoadNetwork(car, cfg.Search.CruisingSpeed),
		service.NewRoadNetwork(walk, cfg.Search.WalkSpeed),
		network, searcher, nearby, cfg.Search.MaxWalkDistance, logger,
	)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(cfg.Server.SwaggerURL), //The url pointing to API definition
	))

	rest.NavigatorRouter(r, navigatorSvc, m)

	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server started", "addr", cfg.Server.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("listen", "error", err)
	}
}

// loadNetworks ambil graph dari pebble (hasil cmd/preprocessing). Kalau belum ada, bikin dari file input di config.
// stopKV true kalau h3 index stop ada di pebble.
func loadNetworks(ctx context.Context, cfg config.Config, kvDB *kv.KVDB, logger *slog.Logger) (car, walk *datastructure.Graph,
	network *datastructure.TransitNetwork, stopKV bool, err error) {
	car, errCar := kvDB.LoadRoadGraph(kv.RoadGraphCar)
	walk, errWalk := kvDB.LoadRoadGraph(kv.RoadGraphWalk)
	network, errTransit := kvDB.LoadTransitNetwork()
	if errCar == nil && errWalk == nil && errTransit == nil {
		logger.Info("networks loaded from pebble", "car_nodes", car.GetNumNodes(), "walk_nodes", walk.GetNumNodes(),
			"stops", network.Graph.GetNumStops())
		return car, walk, network, true, nil
	}
	for _, e := range []error{errCar, errWalk, errTransit} {
		if e != nil && !errors.Is(e, kv.ErrNotFound) {
			return nil, nil, nil, false, e
		}
	}

	logger.Info("preprocessed graphs not found, building from input files")
	if car, err = osmparser.LoadRoadGraph(ctx, cfg.Data.CarMapFile); err != nil {
		return nil, nil, nil, false, err
	}
	if walk, err = osmparser.LoadRoadGraph(ctx, cfg.Data.WalkMapFile); err != nil {
		return nil, nil, nil, false, err
	}
	if network, err = transitparser.LoadTransitNetwork(cfg.Data.RoutesFile, cfg.Data.StopsFile, cfg.Data.TripsFile); err != nil {
		return nil, nil, nil, false, err
	}
	logger.Info("networks built", "car_nodes", car.GetNumNodes(), "walk_nodes", walk.GetNumNodes(),
		"stops", network.Graph.GetNumStops(), "routes", len(network.Routes))
	return car, walk, network, false, nil
}
