package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/history"
	"github.com/davidbz/llmbench/internal/observability"
	"github.com/davidbz/llmbench/internal/pricing"
	"github.com/davidbz/llmbench/internal/provider/echo"
	"github.com/davidbz/llmbench/internal/provider/openai"
	"github.com/davidbz/llmbench/internal/report"
)

// Config represents the benchmark harness configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	OpenAI  openai.Config
	Echo    echo.Config
	Bench   BenchConfig
	Pricing pricing.Config
	History history.Config
	Log     observability.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// BenchConfig contains the defaults of a benchmark run.
type BenchConfig struct {
	DefaultModels []string `env:"BENCH_DEFAULT_MODELS" envSeparator:"," envDefault:"gpt-4o-mini,gpt-4.1-nano"`
	DefaultAPIs   []string `env:"BENCH_DEFAULT_APIS"   envSeparator:"," envDefault:"chat,responses"`
	TableFormat   string   `env:"BENCH_TABLE_FORMAT"                    envDefault:"github"`
	FailurePolicy string   `env:"BENCH_FAILURE_POLICY"                  envDefault:"fail-fast"`
}

// Shapes parses the default API shapes.
func (b *BenchConfig) Shapes() ([]domain.APIShape, error) {
	shapes := make([]domain.APIShape, 0, len(b.DefaultAPIs))
	for _, raw := range b.DefaultAPIs {
		shape, err := domain.ParseAPIShape(raw)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// Policy parses the default failure policy.
func (b *BenchConfig) Policy() (domain.FailurePolicy, error) {
	return domain.ParseFailurePolicy(b.FailurePolicy)
}

// Format parses the default table format.
func (b *BenchConfig) Format() (report.Format, error) {
	return report.ParseFormat(b.TableFormat)
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server  *ServerConfig
	CORS    *CORSConfig
	OpenAI  *openai.Config
	Echo    *echo.Config
	Bench   *BenchConfig
	Pricing *pricing.Config
	History *history.Config
	Log     *observability.Config
}

// Load loads environment files and parses configuration from the process environment.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	return Parse(nil)
}

// Parse reads configuration from environment, or from the process environment when nil.
func Parse(environment map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.Bench.Shapes(); err != nil {
		return fmt.Errorf("BENCH_DEFAULT_APIS: %w", err)
	}
	if _, err := c.Bench.Policy(); err != nil {
		return fmt.Errorf("BENCH_FAILURE_POLICY: %w", err)
	}
	if _, err := c.Bench.Format(); err != nil {
		return fmt.Errorf("BENCH_TABLE_FORMAT: %w", err)
	}
	if c.OpenAI.MaxRetries < 0 {
		return domain.NewConfigurationError("OPENAI_MAX_RETRIES must not be negative")
	}
	return nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:     dig.Out{},
		Server:  &cfg.Server,
		CORS:    &cfg.CORS,
		OpenAI:  &cfg.OpenAI,
		Echo:    &cfg.Echo,
		Bench:   &cfg.Bench,
		Pricing: &cfg.Pricing,
		History: &cfg.History,
		Log:     &cfg.Log,
	}
}
