// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/dhirendraxd/voicelink/metrics"
	"github.com/dhirendraxd/voicelink/ratelimit"
)

// WithRateLimit rejects clients that exceed the limiter with 429. Clients
// are identified by GetClientIP with the given trusted proxies.
// A nil limiter disables the check.
func WithRateLimit(limiter *ratelimit.Limiter, trusted []netip.Prefix, m *metrics.Metrics, route string, next http.HandlerFunc) http.HandlerFunc {
	if limiter == nil {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r, trusted)

		ok, retryAfter := limiter.Allow(ip)
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))

			slog.Warn("rate limit exceeded",
				"request_id", RequestID(r.Context()),
				"route", route,
				"retry_after", time.Duration(seconds)*time.Second,
			)
			m.RateLimited(route)

			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}

		next(w, r)
	}
}
