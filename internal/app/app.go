package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/avenratt/league-portal/internal/config"
	"github.com/avenratt/league-portal/internal/infrastructure/account/forum"
	"github.com/avenratt/league-portal/internal/infrastructure/repository/postgres"
	"github.com/avenratt/league-portal/internal/interfaces/httpapi"
	idgen "github.com/avenratt/league-portal/internal/platform/id"
	"github.com/avenratt/league-portal/internal/platform/logging"
	"github.com/avenratt/league-portal/internal/platform/resilience"
	"github.com/avenratt/league-portal/internal/usecase"
)

// OpenDB connects to Postgres with OpenTelemetry instrumentation so
// every query shows up as a child span of the request that issued it.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func NewHTTPServer(cfg config.Config, db *sqlx.DB, logger *slog.Logger) (*http.Server, error) {
	playerRepo := postgres.NewPlayerRepository(db)
	attrRepo := postgres.NewAttributeRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	bankRepo := postgres.NewBankRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	store := postgres.NewProgressionStore(db)
	ids := idgen.NewRandomGenerator()

	progressionSvc := usecase.NewProgressionService(
		playerRepo,
		attrRepo,
		ledgerRepo,
		eventRepo,
		bankRepo,
		seasonRepo,
		store,
		ids,
		logger,
	)
	readSvc := usecase.NewPlayerReadService(
		playerRepo,
		attrRepo,
		ledgerRepo,
		eventRepo,
		bankRepo,
		seasonRepo,
		logger,
	)
	grantsSvc := usecase.NewGrantsService(playerRepo, store, ids, logger)
	seasonSvc := usecase.NewSeasonService(seasonRepo, playerRepo, attrRepo, ledgerRepo, store, logger)

	forumClient := forum.NewClient(forum.ClientConfig{
		BaseURL:        cfg.ForumBaseURL,
		IntrospectPath: cfg.ForumIntrospectPath,
		Timeout:        cfg.ForumTimeout,
		MaxRetries:     cfg.ForumMaxRetries,
		CacheTTL:       cfg.ForumCacheTTL,
		Logger:         logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ForumCircuitEnabled,
			FailureThreshold: cfg.ForumCircuitFailureCount,
			OpenTimeout:      cfg.ForumCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ForumCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(progressionSvc, readSvc, grantsSvc, seasonSvc, logger)
	router := httpapi.NewRouter(handler, forumClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
