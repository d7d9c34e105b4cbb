package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/davidbz/llmbench/internal/config"
	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/history"
	"github.com/davidbz/llmbench/internal/httpserver"
	"github.com/davidbz/llmbench/internal/httpserver/middleware"
	"github.com/davidbz/llmbench/internal/metrics"
	"github.com/davidbz/llmbench/internal/observability"
	"github.com/davidbz/llmbench/internal/pricing"
	"github.com/davidbz/llmbench/internal/provider/echo"
	"github.com/davidbz/llmbench/internal/provider/openai"
	"github.com/davidbz/llmbench/internal/provider/registry"
)

// containerOptions carries command-line overrides applied on top of the environment.
type containerOptions struct {
	pricingFile string
}

func buildContainer(opts containerOptions) (*dig.Container, error) {
	container := dig.New()

	providers := []struct {
		name        string
		constructor any
		opts        []dig.ProvideOption
	}{
		// Configuration
		{"config", func() (*config.Config, error) { return loadConfig(opts) }, nil},
		{"config dependencies", config.ParseDependenciesConfig, nil},

		// Observability
		{"logger", observability.InitLogger, nil},
		{"event bus", newEventPublisher, nil},
		{"metrics registry", prometheus.NewRegistry, nil},
		{"metrics registerer", func(r *prometheus.Registry) prometheus.Registerer { return r }, nil},
		{"metrics gatherer", func(r *prometheus.Registry) prometheus.Gatherer { return r }, nil},
		{"invocation observer", metrics.NewObserver, []dig.ProvideOption{dig.As(new(domain.InvocationObserver))}},

		// Pricing
		{"pricing table", func(cfg *pricing.Config) (*domain.StaticPricingTable, error) { return pricing.NewTable(*cfg) }, nil},
		{"pricing lookup", func(t *domain.StaticPricingTable) domain.PricingTable { return t }, nil},
		{"cost calculator", domain.NewStandardCostCalculator, []dig.ProvideOption{dig.As(new(domain.CostCalculator))}},

		// Providers
		{"provider registry", newProviderRegistry, nil},

		// History
		{"history stores", newHistoryStores, nil},
		{"run recorder", func(s *historyStores) domain.RunRecorder { return s.recorder }, nil},

		// Domain Services
		{"invocation adapter", domain.NewInvocationAdapter, []dig.ProvideOption{dig.As(new(domain.Invoker))}},
		{"benchmark runner", domain.NewBenchmarkRunner, []dig.ProvideOption{dig.As(new(domain.Benchmarker))}},

		// HTTP Layer
		{"HTTP middleware", middleware.BuildMiddlewareChain, nil},
		{"HTTP handler", httpserver.NewHandler, nil},
		{"HTTP server", httpserver.NewServer, nil},
	}

	for _, p := range providers {
		if err := container.Provide(p.constructor, p.opts...); err != nil {
			return nil, fmt.Errorf("failed to provide %s: %w", p.name, err)
		}
	}

	return container, nil
}

func loadConfig(opts containerOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if opts.pricingFile != "" {
		cfg.Pricing.File = opts.pricingFile
	}

	return cfg, nil
}

func newEventPublisher(logger *zap.Logger) domain.EventPublisher {
	return observability.NewEventBus(logger)
}

// newProviderRegistry registers every configured provider. OpenAI is skipped without an API key,
// so runs naming its models fail validation instead of calling out.
func newProviderRegistry(
	openaiCfg *openai.Config,
	echoCfg *echo.Config,
	table *domain.StaticPricingTable,
	logger *zap.Logger,
) (domain.ProviderRegistry, error) {
	ctx := context.Background()
	reg := registry.NewRegistry()

	if openaiCfg.Configured() {
		provider, err := openai.NewProvider(*openaiCfg, table.Models(openai.ProviderName))
		if err != nil {
			return nil, err
		}
		if err := reg.Register(ctx, provider); err != nil {
			return nil, fmt.Errorf("failed to register OpenAI provider: %w", err)
		}
	} else {
		logger.Debug("openai provider disabled", observability.String("reason", "OPENAI_API_KEY is not set"))
	}

	if err := reg.Register(ctx, echo.NewProvider(*echoCfg)); err != nil {
		return nil, fmt.Errorf("failed to register echo provider: %w", err)
	}

	return reg, nil
}

// historyStores holds the configured run stores. Every store is optional.
type historyStores struct {
	recorder *history.MultiRecorder
	sqlite   *history.SQLiteStore
	redis    *history.RedisStore
	closers  []func() error
}

func newHistoryStores(cfg *history.Config) (*historyStores, error) {
	stores := &historyStores{}
	var recorders []domain.RunRecorder

	if cfg.SQLitePath != "" {
		store, err := history.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		stores.sqlite = store
		stores.closers = append(stores.closers, store.Close)
		recorders = append(recorders, store)
	}

	if cfg.RedisAddr != "" {
		client := history.NewRedisClient(*cfg)
		stores.redis = history.NewRedisStore(client, cfg.RedisKey, cfg.RedisTTL)
		stores.closers = append(stores.closers, client.Close)
		recorders = append(recorders, stores.redis)
	}

	if cfg.CSVPath != "" {
		recorders = append(recorders, history.NewCSVRecorder(cfg.CSVPath))
	}

	stores.recorder = history.NewMultiRecorder(recorders...)
	return stores, nil
}

// lister returns the store used to list past runs, preferring SQLite.
func (s *historyStores) lister() (history.Lister, error) {
	switch {
	case s.sqlite != nil:
		return s.sqlite, nil
	case s.redis != nil:
		return s.redis, nil
	default:
		return nil, domain.NewConfigurationError("no history store configured (set HISTORY_SQLITE_PATH or HISTORY_REDIS_ADDR)")
	}
}

func (s *historyStores) Close() error {
	var errs error
	for _, c := range s.closers {
		errs = multierr.Append(errs, c())
	}
	return errs
}
