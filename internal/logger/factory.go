package logger

import (
	"context"
	"fmt"
	"io"
)

// New builds the application logger. With a databaseURL, entries go to
// Postgres and fall back to the console when an insert fails; without one
// they go straight to the console.
func New(ctx context.Context, out io.Writer, databaseURL, level, format string) (Service, error) {
	console := newConsoleLogger(out, level, format)
	if databaseURL == "" {
		return console, nil
	}

	db, err := NewPostgresConnection(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database logger: %w", err)
	}

	return newDatabaseLogger(db, console), nil
}
