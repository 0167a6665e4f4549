package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	Secret      string        `env:"SECRET" env-required:"true"`
	Match       MatchConfig
	BaseURL     string `env:"BASE_URL" env-default:"http://localhost:8080"`
}

type HTTPConfig struct {
	Port    int           `env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	// IdleTimeout guards keep-alive connections; requests use Timeout.
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// MatchConfig tunes the match engine.
type MatchConfig struct {
	// BudgetTolerancePct is the allowed price overage as a fraction of the
	// buyer's budget, e.g. 0.05 for 5%. Zero keeps the strict comparison.
	BudgetTolerancePct float64 `env:"MATCH_BUDGET_TOLERANCE_PCT" env-default:"0"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
