// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"time"

	"github.com/dhirendraxd/voicelink/metrics"
)

// WithMetrics records request count and latency under the route pattern.
// A nil metrics set disables recording.
func WithMetrics(m *metrics.Metrics, route string, next http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next(rec, r)

		m.ObserveRequest(route, r.Method, rec.status, time.Since(start))
	}
}
