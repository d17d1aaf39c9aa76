package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/gridline/gamecast/internal/config"
	"github.com/gridline/gamecast/internal/domain/event"
	"github.com/gridline/gamecast/internal/infrastructure/generation/media"
	"github.com/gridline/gamecast/internal/infrastructure/generation/narrative"
	"github.com/gridline/gamecast/internal/infrastructure/generation/speech"
	"github.com/gridline/gamecast/internal/infrastructure/repository/memory"
	"github.com/gridline/gamecast/internal/infrastructure/repository/postgres"
	"github.com/gridline/gamecast/internal/interfaces/httpapi"
	idgen "github.com/gridline/gamecast/internal/platform/id"
	"github.com/gridline/gamecast/internal/platform/logging"
	"github.com/gridline/gamecast/internal/platform/resilience"
	"github.com/gridline/gamecast/internal/usecase"
)

// NewHTTPServer wires the full service. The returned cleanup releases
// the worker pool and, when Postgres is configured, the DB pool.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	eventRepo, closeDB, err := newEventRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	narrativeClient := narrative.NewClient(narrative.ClientConfig{
		BaseURL:    cfg.NarrativeBaseURL,
		Token:      cfg.NarrativeToken,
		Model:      cfg.NarrativeModel,
		Timeout:    cfg.NarrativeTimeout,
		MaxRetries: cfg.NarrativeMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NarrativeCircuitEnabled,
			FailureThreshold: cfg.NarrativeCircuitFailureCount,
			OpenTimeout:      cfg.NarrativeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NarrativeCircuitHalfOpenMaxReq,
		},
	})
	speechClient := speech.NewClient(speech.ClientConfig{
		BaseURL:      cfg.SpeechBaseURL,
		Token:        cfg.SpeechToken,
		Voice:        cfg.SpeechVoice,
		Timeout:      cfg.SpeechTimeout,
		PollInterval: cfg.SpeechPollInterval,
		PollTimeout:  cfg.SpeechPollTimeout,
		Logger:       logging.Default(),
	})
	mediaClient := media.NewClient(media.ClientConfig{
		BaseURL:      cfg.MediaBaseURL,
		Token:        cfg.MediaToken,
		Timeout:      cfg.MediaTimeout,
		PollInterval: cfg.MediaPollInterval,
		PollTimeout:  cfg.MediaPollTimeout,
		Logger:       logging.Default(),
	})

	pool, err := ants.NewPool(cfg.MediaWorkerCount)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create media worker pool: %w", err)
	}

	projectionSvc := usecase.NewProjectionService(eventRepo, logger)
	recapSvc := usecase.NewRecapService(projectionSvc, narrativeClient, logger)
	ingestionSvc := usecase.NewIngestionService(eventRepo, idgen.NewRandomGenerator(), logger)
	mediaSvc := usecase.NewMediaService(recapSvc, speechClient, mediaClient, pool, logger)

	handler := httpapi.NewHandler(projectionSvc, recapSvc, ingestionSvc, mediaSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		pool.Release()
		closeDB()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error {
		pool.Release()
		closeDB()
		return nil
	}
	return server, cleanup, nil
}

func newEventRepository(cfg config.Config, logger *slog.Logger) (event.Repository, func(), error) {
	if cfg.DBURL == "" {
		logger.Info("event store backend", "driver", "memory", "reason", "DB_URL empty")
		return memory.NewEventRepository(memory.SeedGameEvents()), func() {}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("event store backend", "driver", "postgres", "db_name", dbNameFromURL(dbURL))
	return postgres.NewEventRepository(db), func() { _ = db.Close() }, nil
}
