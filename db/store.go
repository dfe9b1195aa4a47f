// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dhirendraxd/voicelink/models"
)

// DefaultListLimit caps list queries when the caller passes limit <= 0
const DefaultListLimit = 100

var ErrNotFound = errors.New("not found")

// Store holds the read queries shared by the JSON API and the IVR
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func listLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}

// ActiveAlerts returns active alerts that have not expired at now, newest first.
// Expiry is checked in Go: SQLite stores timestamps as text and
// cannot compare them reliably.
func (s *Store) ActiveAlerts(ctx context.Context, now time.Time, limit int) ([]models.Alert, error) {
	limit = listLimit(limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, message, severity, region, active, created_by, created_at, expires_at
		FROM alert
		WHERE active = $1
		ORDER BY created_at DESC
	`, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.Severity, &a.Region,
			&a.Active, &a.CreatedBy, &a.CreatedAt, &a.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
			continue
		}
		alerts = append(alerts, a)
		if len(alerts) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	return alerts, nil
}

// MarketPrices returns the most recently updated prices first
func (s *Store) MarketPrices(ctx context.Context, limit int) ([]models.MarketPrice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, commodity, market, price, unit, currency, created_by, updated_at
		FROM market_price
		ORDER BY updated_at DESC, commodity
		LIMIT $1
	`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	prices := []models.MarketPrice{}
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.ID, &p.Commodity, &p.Market, &p.Price, &p.Unit,
			&p.Currency, &p.CreatedBy, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prices: %w", err)
	}

	return prices, nil
}

// TransportSchedules returns schedules ordered by departure time
func (s *Store) TransportSchedules(ctx context.Context, limit int) ([]models.TransportSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, route_name, origin, destination, departure_time, days, operator, notes, created_by, updated_at
		FROM transport_schedule
		ORDER BY departure_time, route_name
		LIMIT $1
	`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	schedules := []models.TransportSchedule{}
	for rows.Next() {
		var ts models.TransportSchedule
		if err := rows.Scan(&ts.ID, &ts.RouteName, &ts.Origin, &ts.Destination, &ts.DepartureTime,
			&ts.Days, &ts.Operator, &ts.Notes, &ts.CreatedBy, &ts.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}

	return schedules, nil
}

// Moderator loads a moderator by ID, returning ErrNotFound if absent
func (s *Store) Moderator(ctx context.Context, id string) (models.Moderator, error) {
	var m models.Moderator
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, organization, status, created_at, decided_at
		FROM moderator
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Email, &m.DisplayName, &m.Organization, &m.Status, &m.CreatedAt, &m.DecidedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Moderator{}, ErrNotFound
	}
	if err != nil {
		return models.Moderator{}, fmt.Errorf("failed to query moderator: %w", err)
	}
	return m, nil
}
