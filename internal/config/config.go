package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5000"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Quiz     Quiz
	Cache    Cache
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host         string `env:"PG_HOST,notEmpty"`
	Port         int    `env:"PG_PORT" envDefault:"5432"`
	User         string `env:"PG_USER,notEmpty"`
	Password     string `env:"PG_PASSWORD,notEmpty"`
	Database     string `env:"PG_DATABASE,notEmpty"`
	SSLMode      string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns     int    `env:"PG_MAX_CONNS" envDefault:"10"`
	EnsureSchema bool   `env:"PG_ENSURE_SCHEMA" envDefault:"true"`
}

// ConnString renders the pgxpool connection string.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Redis holds cache configuration. An empty Addr disables caching.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Enabled reports whether a Redis address was configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Quiz groups question listing and quiz play defaults.
type Quiz struct {
	QuestionsPerPage int `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
	MaxDrawAttempts  int `env:"QUIZ_MAX_DRAW_ATTEMPTS" envDefault:"1000"`
}

// Cache governs the category cache and its warmer.
type Cache struct {
	CategoryTTL  time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	WarmInterval time.Duration `env:"CATEGORY_CACHE_WARM_INTERVAL" envDefault:"1m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,true"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: false}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	if c.Quiz.QuestionsPerPage <= 0 {
		return fmt.Errorf("QUESTIONS_PER_PAGE must be positive, got %d", c.Quiz.QuestionsPerPage)
	}
	if c.Quiz.MaxDrawAttempts <= 0 {
		return fmt.Errorf("QUIZ_MAX_DRAW_ATTEMPTS must be positive, got %d", c.Quiz.MaxDrawAttempts)
	}
	if c.Redis.Enabled() && c.Cache.CategoryTTL <= 0 {
		return fmt.Errorf("CATEGORY_CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	return nil
}
