package parser

import (
	"context"
	"log/slog"
)

// Logger is the structured logging interface used by the parser.
//
// Attributes are alternating key-value pairs, as with log/slog:
//
//	logger.Debug("deferred conversions replayed", "applied", 3, "skipped", 1)
//
// The parser only logs at debug level: the detected version, the number of
// deferred conversions scheduled and replayed, and link pass results.
// Problems with the document are never logged; they are returned as
// diagnostics.
//
// Use [NewSlogAdapter] to log through a *slog.Logger:
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.New(handler))),
//	)
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards all output. It is used when no logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(_ string, _ ...any) {}
func (NopLogger) Info(_ string, _ ...any)  {}
func (NopLogger) Warn(_ string, _ ...any)  {}
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.logger.Info(msg, attrs...) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.logger.Warn(msg, attrs...) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

// Slog returns the wrapped *slog.Logger.
func (s *SlogAdapter) Slog() *slog.Logger { return s.logger }

var _ Logger = (*SlogAdapter)(nil)

// ContextLogger binds a context to a Logger. When the wrapped logger is a
// *SlogAdapter, records are emitted through the slog ...Context methods, so
// handlers can read request-scoped values from ctx.
type ContextLogger struct {
	logger Logger
	ctx    context.Context
}

// NewContextLogger creates a new ContextLogger.
func NewContextLogger(ctx context.Context, logger Logger) *ContextLogger {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ContextLogger{logger: logger, ctx: ctx}
}

func (c *ContextLogger) log(level slog.Level, msg string, attrs []any) {
	if s, ok := c.logger.(*SlogAdapter); ok {
		s.logger.Log(c.ctx, level, msg, attrs...)
		return
	}
	switch level {
	case slog.LevelDebug:
		c.logger.Debug(msg, attrs...)
	case slog.LevelInfo:
		c.logger.Info(msg, attrs...)
	case slog.LevelWarn:
		c.logger.Warn(msg, attrs...)
	default:
		c.logger.Error(msg, attrs...)
	}
}

func (c *ContextLogger) Debug(msg string, attrs ...any) { c.log(slog.LevelDebug, msg, attrs) }
func (c *ContextLogger) Info(msg string, attrs ...any)  { c.log(slog.LevelInfo, msg, attrs) }
func (c *ContextLogger) Warn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *ContextLogger) Error(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

// With implements Logger.
func (c *ContextLogger) With(attrs ...any) Logger {
	return &ContextLogger{logger: c.logger.With(attrs...), ctx: c.ctx}
}

// Context returns the context associated with this logger.
func (c *ContextLogger) Context() context.Context {
	return c.ctx
}

var _ Logger = (*ContextLogger)(nil)
