// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the VoiceLink API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AlertHandler, PriceHandler, ScheduleHandler: community content CRUD
  - ModeratorHandler: applications, admin decisions, bearer token checks
  - ContactHandler: contact form
  - VoiceHandler: TwiML webhooks for the IVR

Handlers are created via constructor functions that accept *sql.DB and Config:

	alertHandler := handlers.NewAlertHandler(db, cfg)

# Moderator Lifecycle

Moderators progress through: pending → approved or rejected

	POST /api/moderators/apply        → Apply (pending)
	POST /api/moderators/{id}/approve → Approve (returns bearer token)
	POST /api/moderators/{id}/reject  → Reject

Content writes go through RequireApproved, which verifies the token's
HMAC and that the moderator is still approved. Rejecting a moderator
revokes their token immediately.

# IVR

VoiceHandler renders twiml.Menu documents backed by db.Store:

	POST /twiml/voice → Voice (welcome, gather one digit)
	POST /twiml/menu  → Menu (read prices, schedules, alerts or help)

A database failure never fails a call; the caller hears a fallback
sentence and returns to the menu.
*/
package handlers
