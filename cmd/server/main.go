package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusnav/indoornav/pkg/config"
	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/engine/floorpath"
	"campusnav/indoornav/pkg/engine/graphloader"
	"campusnav/indoornav/pkg/engine/resolver"
	"campusnav/indoornav/pkg/engine/routingalgorithm"
	"campusnav/indoornav/pkg/floorindex"
	"campusnav/indoornav/pkg/kv"
	"campusnav/indoornav/pkg/server/rest"
	"campusnav/indoornav/pkg/server/rest/service"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type floorBackend interface {
	kv.FloorGraphStore
	resolver.BuildingIndex
}

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger(os.Stderr)

	var (
		backend floorBackend
		adj     datastructure.FloorAdjacency
	)
	switch cfg.Store {
	case config.StorePebble:
		db, err := pebble.Open(cfg.DBPath, &pebble.Options{ReadOnly: true})
		if err != nil {
			log.Fatal(err)
		}
		kvDB := kv.NewKVDB(db)
		defer kvDB.Close()

		manifest, err := kvDB.GetManifest()
		if err != nil {
			log.Fatalf("read manifest from %s, run preprocessing first: %v", cfg.DBPath, err)
		}
		logger.Info("floor data", "import", manifest.ID.String(), "floors", manifest.Floors,
			"buildings", manifest.Buildings, "created_at", manifest.CreatedAt)

		adj, err = kvDB.GetAdjacency()
		if err != nil {
			log.Fatal(err)
		}
		backend = kvDB
	case config.StoreJSON:
		fileStore, err := kv.NewFileStore(cfg.DataDir, cfg.BuildingsFile)
		if err != nil {
			log.Fatal(err)
		}
		graphs := make(map[string]datastructure.FloorGraph)
		for floorID, path := range fileStore.Files() {
			g, err := kv.ReadFloorGraphFile(path)
			if err != nil {
				log.Fatal(err)
			}
			graphs[floorID] = g
		}
		adj = floorindex.BuildAdjacency(graphs)
		backend = fileStore
	}

	if cfg.FloorPlanFile != "" {
		raw, err := os.ReadFile(cfg.FloorPlanFile)
		if err != nil {
			log.Fatal(err)
		}
		adj, err = floorindex.ParseHighLevelFloorPlan(raw)
		if err != nil {
			log.Fatal(err)
		}
	}

	var floorStore graphloader.FloorStore = backend
	if cfg.Cache {
		floorStore = kv.NewCachedFloorStore(backend)
	}

	floors := floorindex.NewIndex(adj)
	logger.Info("floor adjacency ready", "floors", floors.Len())

	navigatorSvc := service.NewNavigationService(
		floors,
		floorpath.NewSelector(floors, cfg.MaxFloorPaths),
		graphloader.NewLoader(floorStore, logger),
		resolver.NewResolver(backend, logger),
		routingalgorithm.NewRouteAlgorithm(cfg.Outdoor),
		cfg.OutsideFloor,
		logger,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(rest.PromeHttpMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rest.NavigatorRouter(r, navigatorSvc, m)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server started", "addr", cfg.ListenAddr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
