package observability

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func resetGlobalLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		loggerMu.Lock()
		globalLogger = nil
		loggerMu.Unlock()
	})
}

func TestInitLogger_File(t *testing.T) {
	resetGlobalLogger(t)
	path := filepath.Join(t.TempDir(), "llmbench.log")

	logger, err := InitLogger(&Config{Level: "info", Format: "json", File: path, MaxSizeMB: 5, MaxBackups: 5})
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), "run-1")
	FromContext(ctx).Info("benchmark finished", Bool("temperature_applied", true))
	logger.Debug("below level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"benchmark finished"`)
	require.Contains(t, string(data), `"run_id":"run-1"`)
	require.Contains(t, string(data), `"temperature_applied":true`)
	require.NotContains(t, string(data), "below level")
}

func TestInitLogger_FileAppends(t *testing.T) {
	resetGlobalLogger(t)
	path := filepath.Join(t.TempDir(), "llmbench.log")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o644))

	logger, err := InitLogger(&Config{Level: "info", Format: "console", File: path, MaxSizeMB: 1, MaxBackups: 0})
	require.NoError(t, err)
	logger.Info("next")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "previous\n")
	require.Contains(t, string(data), "next")
}

func TestInitLogger_Invalid(t *testing.T) {
	resetGlobalLogger(t)

	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{name: "level", cfg: &Config{Level: "loud"}, want: "invalid log level"},
		{name: "format", cfg: &Config{Level: "info", Format: "xml"}, want: "invalid log format"},
		{
			name: "rotation size",
			cfg:  &Config{Level: "info", File: filepath.Join(t.TempDir(), "x.log"), MaxSizeMB: 0, MaxBackups: 5},
			want: "invalid log rotation",
		},
		{
			name: "rotation backups",
			cfg:  &Config{Level: "info", File: filepath.Join(t.TempDir(), "x.log"), MaxSizeMB: 5, MaxBackups: -1},
			want: "invalid log rotation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitLogger(tt.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInitLogger_NilConfig(t *testing.T) {
	resetGlobalLogger(t)

	logger, err := InitLogger(nil)
	require.NoError(t, err)
	require.Same(t, logger, getBaseLogger())
}
