// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/twilio/twilio-go/client"

	"github.com/dhirendraxd/voicelink/auth"
)

// RequireAdmin allows the request only with a valid X-Admin-Key header
func RequireAdmin(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), secret); err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
			return
		}
		next(w, r)
	}
}

// RequireTwilioSignature verifies X-Twilio-Signature on voice webhooks.
// An empty auth token disables the check (local development).
func RequireTwilioSignature(authToken, publicBaseURL string, next http.HandlerFunc) http.HandlerFunc {
	if authToken == "" {
		return next
	}

	validator := client.NewRequestValidator(authToken)

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		// Query parameters are already part of the URL; only the POST
		// body is appended to the signed payload
		params := map[string]string{}
		if r.Method == http.MethodPost {
			params = signedParams(r.PostForm)
		}

		fullURL := requestURL(r, publicBaseURL)
		signature := r.Header.Get("X-Twilio-Signature")
		if signature == "" || !validator.Validate(fullURL, params, signature) {
			slog.Warn("rejected unsigned voice webhook",
				"request_id", RequestID(r.Context()),
				"url", fullURL,
				"remote", r.RemoteAddr,
			)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

// signedParams flattens the form for the validator. Webhook fields are
// single-valued, so the first value of each key is the signed one.
func signedParams(form url.Values) map[string]string {
	params := make(map[string]string, len(form))
	for k := range form {
		params[k] = form.Get(k)
	}
	return params
}

// requestURL reconstructs the URL the provider requested. Behind a proxy
// the Host header is unreliable, so the configured public base URL wins.
func requestURL(r *http.Request, publicBaseURL string) string {
	if publicBaseURL != "" {
		return publicBaseURL + r.URL.RequestURI()
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
