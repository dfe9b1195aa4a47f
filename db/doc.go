// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation and shared read queries.

# Connecting

Open selects the driver from the configured database type (lib/pq for
postgres, modernc.org/sqlite for sqlite) and retries the first ping with
exponential backoff until ConnectTimeout elapses:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

SQLite paths get foreign keys and a busy timeout enabled, and the pool is
limited to a single connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
All queries use $N placeholders, which both drivers accept.

# Tables

  - moderator: content managers and their approval state
  - alert: community alerts (severity, region, optional expiry)
  - market_price: commodity prices per market
  - transport_schedule: route departures (HH:MM)
  - contact_message: contact form submissions

# Relationships

	moderator 1──* alert
	moderator 1──* market_price
	moderator 1──* transport_schedule

Content foreign keys use ON DELETE CASCADE.

# Reads

Store holds the list queries shared by the public API and the IVR:

	store := db.NewStore(conn)
	alerts, err := store.ActiveAlerts(ctx, time.Now(), 5)
	prices, err := store.MarketPrices(ctx, 5)
	schedules, err := store.TransportSchedules(ctx, 5)
*/
package db
