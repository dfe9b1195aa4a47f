// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request gets an ID from the X-Request-ID header or a
fresh UUID; it is echoed back and available via RequestID(ctx).

# Metrics and Rate Limiting

	middleware.WithMetrics(m, "POST /api/contact", handler)
	middleware.WithRateLimit(limiter, cfg.TrustedProxies, m, "POST /api/contact", handler)

Rate limited clients get 429 with a Retry-After header in seconds.

# Authentication

	middleware.RequireAdmin(cfg.AdminSecret, handler)
	middleware.RequireTwilioSignature(cfg.TwilioAuthToken, cfg.PublicBaseURL, handler)

Twilio signatures are checked with the twilio-go RequestValidator over the
public URL and the POST form.

Moderator bearer tokens need a database lookup and are checked in the
handlers package, which stores the moderator via WithModeratorID.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

# Client IP Extraction

The client is the connection's address unless the peer is a trusted
proxy. Behind a trusted proxy it is the right-most X-Forwarded-For hop that
is not itself trusted, then X-Real-IP:

	ip := middleware.GetClientIP(r, cfg.TrustedProxies)

Used as the rate limiter key and hashed before storage.
*/
package middleware
