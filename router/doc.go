// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the VoiceLink API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, router.Deps{
		Limiter: limiter,
		Metrics: m,
		Menu:    handlers.NewVoiceMenu(db, prompts),
	})

Every API route is wrapped with request logging and Prometheus metrics
labelled by its route pattern.

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics

IVR (telephony webhooks, X-Twilio-Signature when configured):

	POST /twiml/voice - Welcome menu
	POST /twiml/menu  - Menu selection (Digits)

Content (public read, moderator write with Authorization: Bearer):

	GET    /api/alerts          - Active alerts
	POST   /api/alerts          - Create alert
	PUT    /api/alerts/{id}     - Update alert
	DELETE /api/alerts/{id}     - Delete alert

/api/prices and /api/schedules follow the same shape.

Moderators:

	POST /api/moderators/apply         - Apply (rate limited)
	GET  /api/moderators/me            - Own profile (moderator)
	GET  /api/moderators?status=       - List (admin, X-Admin-Key)
	POST /api/moderators/{id}/approve  - Approve, returns token (admin)
	POST /api/moderators/{id}/reject   - Reject (admin)

Contact:

	POST /api/contact - Send a message (rate limited)
	GET  /api/contact - List messages (admin)
*/
package router
