package logger

import (
	"context"
	"fmt"
	"time"

	"SNCF_Proxy/internal/models"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createLogsTable = `
	CREATE TABLE IF NOT EXISTS proxy_logs (
		id UUID PRIMARY KEY,
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		severity VARCHAR(10) CHECK (severity IN ('low', 'medium', 'high')),
		message TEXT NOT NULL,
		operation VARCHAR(100) NOT NULL,
		target_name VARCHAR(255),
		process_id UUID NOT NULL,
		process_type VARCHAR(20) NOT NULL CHECK (process_type IN ('request', 'internal')),
		client_ip INET,
		error_details TEXT,
		metadata JSONB
	);

	CREATE INDEX IF NOT EXISTS idx_proxy_logs_timestamp ON proxy_logs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_proxy_logs_operation ON proxy_logs(operation);
	CREATE INDEX IF NOT EXISTS idx_proxy_logs_process_id ON proxy_logs(process_id);
`

const insertLog = `
	INSERT INTO proxy_logs
	(id, timestamp, severity, message, operation, target_name, process_id, process_type, client_ip, error_details, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// PostgresConnection implements DatabaseConnection using pgxpool
type PostgresConnection struct {
	pool *pgxpool.Pool
}

// NewPostgresConnection connects to connectionString and makes sure the logs table exists
func NewPostgresConnection(ctx context.Context, connectionString string) (DatabaseConnection, error) {
	conn, err := newPostgresConnection(ctx, connectionString)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func newPostgresConnection(ctx context.Context, connectionString string) (*PostgresConnection, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	// Logging is the only consumer, a small pool is enough
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	// Poolers in front of hosted Postgres reject named prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	config.ConnConfig.StatementCacheCapacity = 0

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed on %s:%d: %w", config.ConnConfig.Host, config.ConnConfig.Port, err)
	}

	if _, err := pool.Exec(ctx, createLogsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create logs table: %w", err)
	}

	return &PostgresConnection{pool: pool}, nil
}

// InsertLog inserts a log entry
func (p *PostgresConnection) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	args, err := insertArgs(entry)
	if err != nil {
		return err
	}

	if _, err := p.pool.Exec(ctx, insertLog, args...); err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}

	return nil
}

// insertArgs maps an entry to the insertLog parameters; empty optional
// columns become NULL.
func insertArgs(entry *models.LogEntry) ([]interface{}, error) {
	var metadata interface{}
	if len(entry.Metadata) > 0 {
		jsonBytes, err := json.Marshal(entry.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
		}
		metadata = string(jsonBytes)
	}

	return []interface{}{
		entry.ID,
		entry.Timestamp,
		nullIfEmpty(string(entry.Severity)),
		entry.Message,
		entry.Operation,
		nullIfEmpty(entry.TargetName),
		entry.ProcessID,
		string(entry.ProcessType),
		nullIfEmpty(entry.ClientIP),
		nullIfEmpty(entry.Error),
		metadata,
	}, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Ping checks if the database connection is alive
func (p *PostgresConnection) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool
func (p *PostgresConnection) Close() error {
	p.pool.Close()
	return nil
}
