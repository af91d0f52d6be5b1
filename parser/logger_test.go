package parser

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contextKey is a custom type for context keys to satisfy staticcheck SA1029
type contextKey string

// recordingLogger keeps every message it is given.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
	attrs    []any
}

func (r *recordingLogger) record(msg string, attrs []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	r.attrs = append(r.attrs, attrs...)
}

func (r *recordingLogger) Debug(msg string, attrs ...any) { r.record(msg, attrs) }
func (r *recordingLogger) Info(msg string, attrs ...any)  { r.record(msg, attrs) }
func (r *recordingLogger) Warn(msg string, attrs ...any)  { r.record(msg, attrs) }
func (r *recordingLogger) Error(msg string, attrs ...any) { r.record(msg, attrs) }
func (r *recordingLogger) With(_ ...any) Logger           { return r }

// ctxHandler records the request id found in the context of each record.
type ctxHandler struct {
	slog.Handler
	seen *[]any
}

func (h ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	*h.seen = append(*h.seen, ctx.Value(contextKey("req_id")))
	return h.Handler.Handle(ctx, r)
}

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	assert.NotPanics(t, func() {
		l.Debug("message", "key", "value")
		l.Info("message")
		l.Warn("message")
		l.Error("message")
	})
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		assert.Same(t, slog.Default(), NewSlogAdapter(nil).Slog())
	})

	tests := []struct {
		name  string
		level slog.Level
		log   func(Logger)
		want  string
	}{
		{"debug", slog.LevelDebug, func(l Logger) { l.Debug("debug message", "key", "value") }, "level=DEBUG msg=\"debug message\" key=value"},
		{"info", slog.LevelInfo, func(l Logger) { l.Info("info message") }, "level=INFO msg=\"info message\""},
		{"warn", slog.LevelWarn, func(l Logger) { l.Warn("warn message") }, "level=WARN msg=\"warn message\""},
		{"error", slog.LevelError, func(l Logger) { l.Error("error message") }, "level=ERROR msg=\"error message\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.level})
			tt.log(NewSlogAdapter(slog.New(h)))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
		NewSlogAdapter(slog.New(h)).Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("chained With", func(t *testing.T) {
		var buf bytes.Buffer
		h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		l := NewSlogAdapter(slog.New(h)).With("package", "parser").With("phase", "replay")
		l.Debug("replaying", "count", 2)

		out := buf.String()
		assert.Contains(t, out, "package=parser")
		assert.Contains(t, out, "phase=replay")
		assert.Contains(t, out, "count=2")
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("passes the context to slog handlers", func(t *testing.T) {
		var buf bytes.Buffer
		var seen []any
		h := ctxHandler{Handler: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), seen: &seen}
		ctx := context.WithValue(context.Background(), contextKey("req_id"), "123")

		l := NewContextLogger(ctx, NewSlogAdapter(slog.New(h)))
		l.Debug("one")
		l.Info("two")
		l.Warn("three")
		l.Error("four")

		assert.Equal(t, []any{"123", "123", "123", "123"}, seen)
		assert.Contains(t, buf.String(), "msg=four")
	})

	t.Run("delegates to other loggers", func(t *testing.T) {
		rec := &recordingLogger{}
		l := NewContextLogger(context.Background(), rec)
		l.Debug("a")
		l.Info("b")
		l.Warn("c")
		l.Error("d")
		assert.Equal(t, []string{"a", "b", "c", "d"}, rec.messages)
	})

	t.Run("With preserves context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), contextKey("req_id"), "123")
		with := NewContextLogger(ctx, NopLogger{}).With("key", "value")
		cl, ok := with.(*ContextLogger)
		require.True(t, ok, "With should return *ContextLogger")
		assert.Equal(t, ctx, cl.Context())
	})

	t.Run("nil logger", func(t *testing.T) {
		assert.NotPanics(t, func() { NewContextLogger(context.Background(), nil).Info("x") })
	})
}

func TestParserLogsDebug(t *testing.T) {
	rec := &recordingLogger{}
	_, err := ParseWithOptions(
		WithBytes([]byte(forwardRefDoc)),
		WithLogger(rec),
	)
	require.NoError(t, err)
	assert.Contains(t, rec.messages, "detected OpenAPI version")
	assert.Contains(t, rec.messages, "replaying deferred conversions")
	assert.Contains(t, rec.messages, "deferred conversions replayed")
}
