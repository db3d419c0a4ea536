package app

import (
	"context"

	"go.uber.org/zap"

	"chargehub/internal/config"
	"chargehub/internal/directory"
	httpserver "chargehub/internal/http"
	"chargehub/internal/http/handlers"
	"chargehub/internal/metrics"
	"chargehub/internal/seed"
	"chargehub/internal/service"
	"chargehub/internal/ws"
)

// App wires the sessions manager dependencies.
type App struct {
	server  *httpserver.Server
	manager *service.Manager
	hub     *ws.Hub
	logger  *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	seedData, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)
	manager := service.NewManager(service.Options{
		Directory:      directory.NewStatic(cfg.Chargers),
		Logger:         logger,
		TickInterval:   cfg.TickInterval(),
		MinPowerKw:     cfg.Telemetry.MinPowerKw,
		MaxPowerKw:     cfg.Telemetry.MaxPowerKw,
		PowerJitterKw:  cfg.Telemetry.PowerJitterKw,
		SeedPowerKw:    cfg.Session.SeedPowerKw,
		TariffPerKWh:   cfg.Telemetry.TariffPerKWh,
		Currency:       cfg.Session.Currency,
		TargetSoc:      cfg.Session.TargetSoc,
		InitialActive:  seedData.Active,
		InitialHistory: seedData.History,
		OnChange:       func(snap service.Snapshot) { hub.Broadcast(snap) },
	})

	metrics.Register()
	manager.Resume()

	sessionsHandler := handlers.NewSessionsHandler(manager, logger)
	routes := httpserver.Routes{
		StartSession: sessionsHandler.HandleStart,
		StopSession:  sessionsHandler.HandleStop,
		Sessions:     sessionsHandler.HandleQuery,
		Stream:       hub.HandleWS,
		Health:       handlers.NewHealthHandler(),
		Metrics:      metrics.Handler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:  server,
		manager: manager,
		hub:     hub,
		logger:  logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	a.manager.Close()
	a.hub.Close()
}
