package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDFrom(t *testing.T) {
	_, ok := RequestIDFrom(context.Background())
	assert.False(t, ok)

	ctx := WithRequestID(context.Background(), "")
	_, ok = RequestIDFrom(ctx)
	assert.False(t, ok, "empty id is not stored")

	id, ok := RequestIDFrom(WithRequestID(context.Background(), "req-1"))
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
}

func TestLoggers_AddRequestIDFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")

	var sbuf bytes.Buffer
	NewTextLogger(&sbuf, slog.LevelInfo).Info(ctx, "hello", "k", "v")
	assert.Contains(t, sbuf.String(), "request_id=req-42")
	assert.Contains(t, sbuf.String(), "k=v")

	var zbuf bytes.Buffer
	NewZerologLogger(zerolog.New(&zbuf)).Info(ctx, "hello")
	assert.Contains(t, zbuf.String(), `"request_id":"req-42"`)
}

func TestSlogLogger_DisabledLevelSkipsWork(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelWarn)
	l.Info(WithRequestID(context.Background(), "x"), "quiet")
	assert.Empty(t, buf.String())
}
