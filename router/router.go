// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/handlers"
	"github.com/dhirendraxd/voicelink/metrics"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/ratelimit"
	"github.com/dhirendraxd/voicelink/twiml"
)

// Deps are the process-wide services shared by all routes.
// A nil Limiter or Metrics disables that concern. Menu is required.
type Deps struct {
	Limiter *ratelimit.Limiter
	Metrics *metrics.Metrics
	Menu    *twiml.Menu
}

func NewRouter(db *sql.DB, cfg cliparse.Config, deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	alertHandler := handlers.NewAlertHandler(db, cfg)
	priceHandler := handlers.NewPriceHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)
	moderatorHandler := handlers.NewModeratorHandler(db, cfg)
	contactHandler := handlers.NewContactHandler(db, cfg)
	voiceHandler := handlers.NewVoiceHandler(cfg, deps.Menu, deps.Metrics)

	// handle registers a route with logging and metrics labelled by its pattern
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(deps.Metrics, pattern, h)))
	}
	limited := func(pattern string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithRateLimit(deps.Limiter, cfg.TrustedProxies, deps.Metrics, pattern, h)
	}
	moderator := moderatorHandler.RequireApproved
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdmin(cfg.AdminSecret, h)
	}
	signed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireTwilioSignature(cfg.TwilioAuthToken, cfg.PublicBaseURL, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	// IVR webhooks (telephony provider)
	handle("POST "+handlers.VoiceBasePath+"/voice", signed(voiceHandler.Voice))
	handle("POST "+handlers.VoiceBasePath+"/menu", signed(voiceHandler.Menu))

	// Alerts (public read, moderator write)
	handle("GET /api/alerts", alertHandler.ListAlerts)
	handle("POST /api/alerts", moderator(alertHandler.CreateAlert))
	handle("PUT /api/alerts/{id}", moderator(alertHandler.UpdateAlert))
	handle("DELETE /api/alerts/{id}", moderator(alertHandler.DeleteAlert))

	// Market prices
	handle("GET /api/prices", priceHandler.ListPrices)
	handle("POST /api/prices", moderator(priceHandler.CreatePrice))
	handle("PUT /api/prices/{id}", moderator(priceHandler.UpdatePrice))
	handle("DELETE /api/prices/{id}", moderator(priceHandler.DeletePrice))

	// Transport schedules
	handle("GET /api/schedules", scheduleHandler.ListSchedules)
	handle("POST /api/schedules", moderator(scheduleHandler.CreateSchedule))
	handle("PUT /api/schedules/{id}", moderator(scheduleHandler.UpdateSchedule))
	handle("DELETE /api/schedules/{id}", moderator(scheduleHandler.DeleteSchedule))

	// Moderator onboarding
	handle("POST /api/moderators/apply", limited("POST /api/moderators/apply", moderatorHandler.Apply))
	handle("GET /api/moderators/me", moderator(moderatorHandler.Me))
	handle("GET /api/moderators", admin(moderatorHandler.ListModerators))
	handle("POST /api/moderators/{id}/approve", admin(moderatorHandler.Approve))
	handle("POST /api/moderators/{id}/reject", admin(moderatorHandler.Reject))

	// Contact form
	handle("POST /api/contact", limited("POST /api/contact", contactHandler.Submit))
	handle("GET /api/contact", admin(contactHandler.ListMessages))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voicelink API v1"))
	})

	return mux
}
