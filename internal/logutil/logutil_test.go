package logutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitUnrecognizedLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	Init()
	ctx := context.Background()
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelDebug))
}

func TestInitDebugEnablesDebugLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	Init()
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

func TestInitUnsetEnvInstallsExplicitInfoHandler(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	Init()
	ctx := context.Background()
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelDebug))
}

func TestInitTagsRecordsWithComponent(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	Init()
	os.Stderr = orig
	assert.True(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelInfo))
	slog.Info("hello")
	w.Close()
	out, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "component=jlang")
}
