// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/dhirendraxd/voicelink/cliparse"
)

// ConnectTimeout bounds how long Open keeps retrying the initial ping.
// Postgres often starts after the API in container setups.
var ConnectTimeout = 30 * time.Second

// Open connects to the configured database and waits until it answers a
// ping, retrying with exponential backoff.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	var driver, dsn string
	switch dbType {
	case cliparse.DatabasePostgres:
		driver, dsn = "postgres", url
	case cliparse.DatabaseSQLite:
		driver, dsn = "sqlite", sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == cliparse.DatabaseSQLite {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = ConnectTimeout

	ping := func() error {
		return conn.PingContext(ctx)
	}
	notify := func(err error, next time.Duration) {
		slog.Warn("database not ready, retrying", "error", err, "retry_in", next)
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// sqliteDSN enables foreign keys and a busy timeout unless the caller
// already passed pragmas
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
