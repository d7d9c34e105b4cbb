package observability

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLoggerFieldCapacity int = 8 // Maximum number of context fields to add to logger
)

// Config contains logger settings.
type Config struct {
	Level      string `env:"LOG_LEVEL"       envDefault:"info"`
	Format     string `env:"LOG_FORMAT"      envDefault:"json"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"5"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
}

// Global logger instance - shared across the application.
// This is intentional: loggers should not be stored in context.
//
//nolint:gochecknoglobals // Singleton logger is a standard pattern
var (
	globalLogger *zap.Logger
	loggerMu     sync.RWMutex
)

// InitLogger initializes the base logger (called once at startup).
// Logs always go to stderr so that stdout stays reserved for reports.
// When a file is configured, entries are also written to it and the file
// is rotated once it reaches MaxSizeMB, keeping MaxBackups old files.
func InitLogger(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "json"}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	newEncoder, err := encoderFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stderr), level),
	}

	if cfg.File != "" {
		if cfg.MaxSizeMB <= 0 || cfg.MaxBackups < 0 {
			return nil, fmt.Errorf("invalid log rotation: max size %dMB, max backups %d", cfg.MaxSizeMB, cfg.MaxBackups)
		}

		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(rotator), level))
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel))

	loggerMu.Lock()
	globalLogger = logger
	loggerMu.Unlock()

	return logger, nil
}

func encoderFor(format string) (func() zapcore.Encoder, error) {
	switch format {
	case "", "json":
		return func() zapcore.Encoder {
			return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		}, nil
	case "console":
		return func() zapcore.Encoder {
			return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		}, nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want json or console)", format)
	}
}

// getBaseLogger returns the global logger instance.
func getBaseLogger() *zap.Logger {
	loggerMu.RLock()
	logger := globalLogger
	loggerMu.RUnlock()

	if logger == nil {
		// Not initialized (tests, library use): stay quiet.
		logger = zap.NewNop()
	}

	return logger
}

// FromContext creates a logger with fields extracted from context.
func FromContext(ctx context.Context) *zap.Logger {
	return getBaseLogger().With(contextFields(ctx)...)
}

// contextFields returns the logging fields carried by ctx.
func contextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, maxLoggerFieldCapacity)

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	if spanID := GetSpanID(ctx); spanID != "" {
		fields = append(fields, zap.String("span_id", spanID))
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}

	if provider := GetProvider(ctx); provider != "" {
		fields = append(fields, zap.String("provider", provider))
	}

	if model := GetModel(ctx); model != "" {
		fields = append(fields, zap.String("model", model))
	}

	if shape := GetShape(ctx); shape != "" {
		fields = append(fields, zap.String("api_shape", shape))
	}

	return fields
}
