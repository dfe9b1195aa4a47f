// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New("voicelink")

	m.ObserveRequest("GET /api/alerts", "GET", 200, 10*time.Millisecond)
	m.ObserveRequest("GET /api/alerts", "GET", 200, 20*time.Millisecond)
	m.ObserveRequest("GET /api/alerts", "GET", 500, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /api/alerts", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /api/alerts", "GET", "500")))
}

func TestMenuSelectionAndRateLimited(t *testing.T) {
	m := New("voicelink")

	m.MenuSelection("prices")
	m.MenuSelection("prices")
	m.MenuSelection("invalid")
	m.RateLimited("POST /api/contact")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.menuSelections.WithLabelValues("prices")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.menuSelections.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited.WithLabelValues("POST /api/contact")))
}

func TestHandler(t *testing.T) {
	m := New("voicelink")
	m.MenuSelection("alerts")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `voicelink_ivr_menu_selections_total{option="alerts"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	// None of these should panic
	m.ObserveRequest("r", "GET", 200, time.Millisecond)
	m.MenuSelection("prices")
	m.RateLimited("r")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
