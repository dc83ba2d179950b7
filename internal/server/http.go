package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// QuestionRoutes is the set of handlers serving the question bank and quiz play.
type QuestionRoutes interface {
	ListCategories(w http.ResponseWriter, r *http.Request)
	ListQuestions(w http.ResponseWriter, r *http.Request)
	PostQuestions(w http.ResponseWriter, r *http.Request)
	DeleteQuestion(w http.ResponseWriter, r *http.Request)
	NextQuizQuestion(w http.ResponseWriter, r *http.Request)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Dependencies returns the pingers for the Postgres pool and, when configured, Redis.
func Dependencies(pool *pgxpool.Pool, client *redis.Client) []Pinger {
	deps := []Pinger{pool}
	if client != nil {
		deps = append(deps, PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
	}
	return deps
}

// NewHTTPServer wires the API routes behind CORS and request middleware.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, questions QuestionRoutes, deps []Pinger) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, questions, deps),
	}
}

// NewHandler builds the full handler chain: CORS, request context, then the router.
func NewHandler(cfg *config.App, logger zerolog.Logger, questions QuestionRoutes, deps []Pinger) http.Handler {
	router := NewRouter(logger, questions, deps)
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	return c.Handler(withRequestContext(logger, router))
}

// NewRouter registers the API and operational routes.
func NewRouter(logger zerolog.Logger, questions QuestionRoutes, deps []Pinger) *mux.Router {
	r := mux.NewRouter()
	r.Use(instrument)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.RespondMethodNotAllowed(w)
	})

	r.HandleFunc("/categories", questions.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/questions", questions.ListQuestions).Methods(http.MethodGet)
	r.HandleFunc("/questions", questions.PostQuestions).Methods(http.MethodPost)
	r.HandleFunc("/questions/{id:[0-9]+}", questions.DeleteQuestion).Methods(http.MethodDelete)
	r.HandleFunc("/quizzes", questions.NextQuizQuestion).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			logger := logging.FromContext(r.Context())
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	}).Methods(http.MethodGet)

	logger.Debug().Msg("http routes registered")
	return r
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
