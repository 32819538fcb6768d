package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/folio/portfolio/internal/infrastructure/config"
)

// Logger wraps zap.SugaredLogger to provide application-specific logging
type Logger struct {
	*zap.SugaredLogger

	// helpers writes the Log* helper lines and reports their caller instead
	// of this package.
	helpers *zap.SugaredLogger
}

func wrap(s *zap.SugaredLogger) *Logger {
	return &Logger{
		SugaredLogger: s,
		helpers:       s.WithOptions(zap.AddCallerSkip(1)),
	}
}

// New creates a new logger instance
func New(cfg config.LoggerConfig) (*Logger, error) {
	var zapConfig zap.Config

	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output == "file" && cfg.Filename != "" {
		zapConfig.OutputPaths = []string{cfg.Filename}
		zapConfig.ErrorOutputPaths = []string{cfg.Filename}
	} else {
		zapConfig.OutputPaths = []string{"stdout"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	if cfg.Format != "json" {
		zapConfig.Development = true
		zapConfig.DisableStacktrace = false
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return wrap(zapLogger.Sugar()), nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return wrap(zap.NewNop().Sugar())
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) *Logger {
	return wrap(l.Sugar())
}

// WithFields adds structured fields to the logger
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return wrap(l.SugaredLogger.With(fields...))
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *Logger {
	return l.WithFields("error", err.Error())
}

// WithRequestID adds a request ID field to the logger
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithFields("request_id", requestID)
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithFields("component", component)
}

// LogHTTPRequest records one served request.
func (l *Logger) LogHTTPRequest(method, path, requestID, ip string, statusCode int, durationMs float64) {
	fields := []interface{}{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration_ms", durationMs,
		"request_id", requestID,
		"ip", ip,
	}

	switch {
	case statusCode >= 500:
		l.helpers.Errorw("HTTP request", fields...)
	case statusCode >= 400:
		l.helpers.Warnw("HTTP request", fields...)
	default:
		l.helpers.Infow("HTTP request", fields...)
	}
}

// LogAdminAction records a content mutation made through the admin surface.
func (l *Logger) LogAdminAction(action, collection string, id int, ip string) {
	l.helpers.Infow("Admin action",
		"action", action,
		"collection", collection,
		"record_id", id,
		"ip", ip,
	)
}

func (l *Logger) LogSecurityEvent(event, ip string, details map[string]interface{}) {
	fields := []interface{}{
		"security_event", event,
		"ip", ip,
	}

	for k, v := range details {
		fields = append(fields, k, v)
	}

	l.helpers.Warnw("Security event", fields...)
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}
