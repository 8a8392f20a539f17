package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/JamesM813/NFL-Locked-In/external/espn"
	"github.com/JamesM813/NFL-Locked-In/internal/config"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
	"github.com/JamesM813/NFL-Locked-In/internal/infrastructure/repository/memory"
	"github.com/JamesM813/NFL-Locked-In/internal/infrastructure/repository/postgres"
	"github.com/JamesM813/NFL-Locked-In/internal/interfaces/httpapi"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/cache"
	idgen "github.com/JamesM813/NFL-Locked-In/internal/platform/id"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/resilience"
	"github.com/JamesM813/NFL-Locked-In/internal/usecase"
)

type repositories struct {
	teams     team.Repository
	schedule  schedule.Repository
	picks     pick.Repository
	directory group.Directory
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load eastern timezone: %w", err)
	}

	var lockPolicy usecase.LockPolicy
	switch cfg.LockPolicy {
	case config.LockPolicyKickoff:
		lockPolicy = usecase.KickoffOffsetPolicy{Offset: cfg.LockKickoffOffset}
	default:
		lockPolicy = usecase.NewWaveDeadlinePolicy(eastern)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	scheduleSvc := usecase.NewScheduleService(repos.schedule, store, cfg.SeasonYear)
	teamSvc := usecase.NewTeamService(repos.teams)
	pickSvc := usecase.NewPickService(repos.picks, repos.teams, scheduleSvc, repos.directory, logger)
	standingsSvc := usecase.NewStandingsService(repos.picks, repos.directory)
	reconcileSvc := usecase.NewReconcileService(
		repos.schedule,
		repos.picks,
		repos.directory,
		usecase.ReconcileConfig{Season: cfg.SeasonYear, Workers: cfg.ReconcileWorkers},
		logger,
	)

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})
	syncSvc := usecase.NewScheduleSyncService(
		espnClient,
		repos.teams,
		repos.schedule,
		lockPolicy,
		eastern,
		idgen.NewRandomGenerator(),
		usecase.ScheduleSyncConfig{Season: cfg.SeasonYear, FetchWorkers: cfg.SyncFetchWorkers},
		logger,
	)

	handler := httpapi.NewHandler(teamSvc, scheduleSvc, pickSvc, standingsSvc, syncSvc, reconcileSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if db != nil {
		server.RegisterOnShutdown(func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("close database", "error", closeErr)
			}
		})
	}

	return server, nil
}

// buildRepositories opens Postgres when DB_URL is set and falls back to the
// in-memory repositories otherwise, which keeps local development and tests
// free of infrastructure.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL is empty, using in-memory repositories")
		return repositories{
			teams:     memory.NewTeamRepository(memory.SeedTeams()),
			schedule:  memory.NewScheduleRepository(),
			picks:     memory.NewPickRepository(),
			directory: memory.NewGroupDirectory(),
		}, nil, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap team seed: %w", err)
	}

	logger.Info("postgres repositories ready", "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		teams:     postgres.NewTeamRepository(db),
		schedule:  postgres.NewScheduleRepository(db),
		picks:     postgres.NewPickRepository(db),
		directory: postgres.NewGroupDirectory(db),
	}, db, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
