package cli

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/content"
	"github.com/andrescamacho/bakerysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bakerysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/application/setup"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/internal/infrastructure/config"
	"github.com/andrescamacho/bakerysim-go/internal/infrastructure/database"
)

// app is the wired application used by every command
type app struct {
	cfg       *config.Config
	db        *gorm.DB
	clock     shared.Clock
	content   game.Content
	service   *game.Service
	mediator  mediator.Mediator
	logRepo   persistence.SessionLogRepository
	financial *metrics.FinancialMetricsCollector
}

type appOptions struct {
	// Register Prometheus collectors regardless of configuration
	forceMetrics bool
}

// newApp loads configuration, connects to the database and wires handlers
func newApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	clock := shared.NewRealClock()
	a := &app{cfg: cfg, db: db, clock: clock}

	// Content warnings go to stderr; there is no session yet
	loadCtx := logging.WithLogger(context.Background(),
		persistence.NewSessionLogger(context.Background(), "", nil, logging.LevelWarning, true))
	loader, err := content.NewLoader(content.Paths{
		Regions: cfg.Content.RegionsPath,
		Catalog: cfg.Content.CatalogPath,
		Events:  cfg.Content.EventsPath,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.content, err = loader.Load(loadCtx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	settings := settingsFromConfig(cfg.Game)
	store := persistence.NewGormStateStore(db, clock)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	repo := game.NewRepository(store, a.content, settings, clock)
	a.service = game.NewService(repo, transactionRepo, clock)

	if cfg.Logging.PersistEnabled() {
		a.logRepo = persistence.NewGormSessionLogRepository(db, clock)
	}

	metricsEnabled := cfg.Metrics.Enabled || opts.forceMetrics
	middlewares := []mediator.Middleware{}
	if metricsEnabled {
		collector, err := a.initMetrics()
		if err != nil {
			a.close()
			return nil, err
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(collector))
	}
	middlewares = append(middlewares, mediator.ValidationMiddleware())

	registry := setup.NewHandlerRegistry(a.service, transactionRepo, a.content, shared.NewRandom(cfg.Game.Seed), clock)
	a.mediator, err = registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	if metricsEnabled {
		if err := a.initFinancialMetrics(); err != nil {
			a.close()
			return nil, err
		}
	}

	return a, nil
}

// initMetrics creates the registry and every collector
func (a *app) initMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	gameCollector := metrics.NewGameMetricsCollector()
	if err := gameCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register game metrics: %w", err)
	}
	metrics.SetGlobalGameCollector(gameCollector)

	return commandCollector, nil
}

// initFinancialMetrics wires the ledger collector; it polls P&L through the mediator
func (a *app) initFinancialMetrics() error {
	a.financial = metrics.NewFinancialMetricsCollector(a.mediator, func() []string {
		ids, err := a.service.Repository().List(context.Background())
		if err != nil {
			log.Printf("failed to list sessions for metrics: %v", err)
			return nil
		}
		return ids
	})
	if err := a.financial.Register(); err != nil {
		return fmt.Errorf("failed to register financial metrics: %w", err)
	}
	metrics.SetGlobalFinancialCollector(a.financial)
	return nil
}

// sessionContext returns a context logging to the session's log table
func (a *app) sessionContext(id string) context.Context {
	ctx := context.Background()
	logger := persistence.NewSessionLogger(ctx, id, a.logRepo, a.cfg.Logging.GameLogLevel(), verbose)
	return logging.WithLogger(ctx, logger)
}

// send dispatches a request in the context of a session
func (a *app) send(id string, request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(a.sessionContext(id), request)
}

func (a *app) close() {
	if a.financial != nil {
		a.financial.Stop()
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}
}

func settingsFromConfig(g config.GameConfig) game.Settings {
	return game.Settings{
		StartingCurrency:     g.StartingCurrency,
		StartingSatisfaction: g.StartingSatisfaction,
		StartingReputation:   g.StartingReputation,
		EventsPerRound:       g.EventsPerRound,
		OpponentCount:        g.Opponents(),
		Seed:                 g.Seed,
	}
}

// withApp runs fn against a freshly wired app and closes it afterwards
func withApp(fn func(a *app) error) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
