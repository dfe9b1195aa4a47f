// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dhirendraxd/voicelink/auth"
	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/db"
	"github.com/dhirendraxd/voicelink/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir() and the connection is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "voicelink_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               3318,
		DatabaseType:       cliparse.DatabaseSQLite,
		DatabaseURL:        "voicelink_test.db",
		AdminSecret:        "test-admin-secret",
		ModeratorTokenSalt: "test-token-salt",
		RateLimitPerMinute: 10,
		RateLimitBurst:     5,
	}
}

// CreateTestModerator inserts a moderator and returns its ID and bearer token.
// status should be "pending", "approved", or "rejected"
func CreateTestModerator(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (moderatorID, token string) {
	t.Helper()

	moderatorID = uuid.NewString()

	var decidedAt *time.Time
	if status != models.ModeratorPending {
		now := time.Now().UTC()
		decidedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO moderator (id, email, display_name, organization, status, created_at, decided_at)
		VALUES ($1, $2, 'Test Moderator', 'Test Org', $3, $4, $5)
	`, moderatorID, moderatorID+"@example.org", status, time.Now().UTC(), decidedAt)
	if err != nil {
		t.Fatalf("Failed to create test moderator: %v", err)
	}

	return moderatorID, auth.GenerateModeratorToken(moderatorID, cfg.ModeratorTokenSalt)
}

// CreateTestAlert inserts an active alert and returns its ID.
// A nil expiresAt never expires.
func CreateTestAlert(t *testing.T, conn *sql.DB, moderatorID, title, severity string, expiresAt *time.Time) string {
	t.Helper()

	alertID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO alert (id, title, message, severity, region, active, created_by, created_at, expires_at)
		VALUES ($1, $2, 'Test alert message', $3, 'Test Region', $4, $5, $6, $7)
	`, alertID, title, severity, true, moderatorID, time.Now().UTC(), expiresAt)
	if err != nil {
		t.Fatalf("Failed to create test alert: %v", err)
	}

	return alertID
}

// CreateTestPrice inserts a market price and returns its ID
func CreateTestPrice(t *testing.T, conn *sql.DB, moderatorID, commodity string, price float64) string {
	t.Helper()

	priceID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO market_price (id, commodity, market, price, unit, currency, created_by, updated_at)
		VALUES ($1, $2, 'Central Market', $3, 'kg', 'NPR', $4, $5)
	`, priceID, commodity, price, moderatorID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}

	return priceID
}

// CreateTestSchedule inserts a transport schedule and returns its ID
func CreateTestSchedule(t *testing.T, conn *sql.DB, moderatorID, routeName, departure string) string {
	t.Helper()

	scheduleID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO transport_schedule (id, route_name, origin, destination, departure_time, days, operator, notes, created_by, updated_at)
		VALUES ($1, $2, 'Town', 'City', $3, 'Daily', 'Test Bus Co', '', $4, $5)
	`, scheduleID, routeName, departure, moderatorID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test schedule: %v", err)
	}

	return scheduleID
}

// BearerHeaders returns the Authorization header for a moderator token
func BearerHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// SignTwilioRequest returns the X-Twilio-Signature the provider would send
// for a POST to fullURL: base64(HMAC-SHA1(authToken, url + sorted key/value pairs))
func SignTwilioRequest(authToken, fullURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	payload := fullURL
	for _, k := range keys {
		payload += k + form.Get(k)
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
