package logger

import (
	"context"
	"io"
	"strings"
	"time"

	"SNCF_Proxy/internal/models"

	"github.com/rs/zerolog"
)

// ConsoleLogger implements Service on top of zerolog
type ConsoleLogger struct {
	log zerolog.Logger
}

// NewConsoleLogger creates a logger writing to out. format "text" selects the
// human readable console writer, anything else emits JSON lines.
func NewConsoleLogger(out io.Writer, level, format string) Service {
	return newConsoleLogger(out, level, format)
}

func newConsoleLogger(out io.Writer, level, format string) *ConsoleLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return &ConsoleLogger{
		log: zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "sncf-proxy").Logger(),
	}
}

// LogInfo logs an informational message
func (l *ConsoleLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.write(newEntry(ctx, "", operation, "", message, nil, metadata))
}

// LogSuccess logs a successful operation
func (l *ConsoleLogger) LogSuccess(ctx context.Context, operation, targetName, message string, metadata map[string]interface{}) {
	l.write(newEntry(ctx, "", operation, targetName, message, nil, metadata))
}

// LogError logs an error; low severity is emitted as a warning
func (l *ConsoleLogger) LogError(ctx context.Context, operation, targetName, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	l.write(newEntry(ctx, severity, operation, targetName, message, err, metadata))
}

// write emits an already built entry. DatabaseLogger uses it as fallback.
func (l *ConsoleLogger) write(entry *models.LogEntry) {
	var event *zerolog.Event

	switch entry.Severity {
	case "":
		event = l.log.Info()
	case models.LogSeverityLow:
		event = l.log.Warn()
	default:
		event = l.log.Error()
	}

	event = event.
		Str("operation", entry.Operation).
		Str("process_id", entry.ProcessID).
		Str("process_type", string(entry.ProcessType))

	if entry.Severity != "" {
		event = event.Str("severity", string(entry.Severity))
	}
	if entry.TargetName != "" {
		event = event.Str("target", entry.TargetName)
	}
	if entry.ClientIP != "" {
		event = event.Str("client_ip", entry.ClientIP)
	}
	if entry.Error != "" {
		event = event.Str(zerolog.ErrorFieldName, entry.Error)
	}
	if len(entry.Metadata) > 0 {
		event = event.Interface("metadata", entry.Metadata)
	}

	event.Msg(entry.Message)
}

// Close is a no-op; zerolog does not buffer
func (l *ConsoleLogger) Close() error {
	return nil
}
