package logger

import (
	"context"
	"sync"
	"time"

	"SNCF_Proxy/internal/models"
)

// DatabaseLogger implements the Service interface using a database backend
type DatabaseLogger struct {
	db       DatabaseConnection
	fallback *ConsoleLogger
	pending  sync.WaitGroup
}

// NewDatabaseLogger creates a new database logger. Entries that cannot be
// inserted are written to fallback instead.
func NewDatabaseLogger(db DatabaseConnection, fallback *ConsoleLogger) Service {
	return newDatabaseLogger(db, fallback)
}

func newDatabaseLogger(db DatabaseConnection, fallback *ConsoleLogger) *DatabaseLogger {
	return &DatabaseLogger{
		db:       db,
		fallback: fallback,
	}
}

// LogInfo logs an informational message (no severity)
func (l *DatabaseLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.logEntry(newEntry(ctx, "", operation, "", message, nil, metadata))
}

// LogSuccess logs a successful operation (no severity)
func (l *DatabaseLogger) LogSuccess(ctx context.Context, operation, targetName, message string, metadata map[string]interface{}) {
	l.logEntry(newEntry(ctx, "", operation, targetName, message, nil, metadata))
}

// LogError logs an error with required severity
func (l *DatabaseLogger) LogError(ctx context.Context, operation, targetName, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	l.logEntry(newEntry(ctx, severity, operation, targetName, message, err, metadata))
}

// logEntry stores the entry asynchronously so requests never wait on the database
func (l *DatabaseLogger) logEntry(entry *models.LogEntry) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()

		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := l.db.InsertLog(logCtx, entry); err != nil && l.fallback != nil {
			l.fallback.write(entry)
			l.fallback.log.Warn().Err(err).Str("entry_id", entry.ID).Msg("Failed to insert log entry")
		}
	}()
}

// Ping checks that the log database is reachable
func (l *DatabaseLogger) Ping(ctx context.Context) error {
	return l.db.Ping(ctx)
}

// Close waits for in-flight inserts and closes the database connection
func (l *DatabaseLogger) Close() error {
	l.pending.Wait()
	return l.db.Close()
}

// Operations recorded in the logs
const (
	OpTrainLookup    = "train_lookup"
	OpPlaceSearch    = "place_search"
	OpBoardLookup    = "board_lookup"
	OpCacheHit       = "cache_hit"
	OpCacheMiss      = "cache_miss"
	OpCacheSet       = "cache_set"
	OpUpstreamCall   = "upstream_call"
	OpServerStart    = "server_start"
	OpServerShutdown = "server_shutdown"
	OpHealthCheck    = "health_check"
)
