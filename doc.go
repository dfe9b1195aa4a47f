// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VoiceLink API server.

VoiceLink is a community information line. Callers dial in and navigate
a keypad menu (IVR) that reads out market prices, transport schedules and
community alerts. Approved moderators keep that content current through a
small JSON API.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_SECRET=... MODERATOR_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-secret ... -token-salt ...

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - ADMIN_SECRET (-admin-secret): Value of the X-Admin-Key header for admin routes
  - MODERATOR_TOKEN_SALT (-token-salt): Secret for moderator token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path (default: voicelink.db)
  - TWILIO_AUTH_TOKEN (-twilio-token): Enables X-Twilio-Signature checks
  - PUBLIC_BASE_URL (-public-url): Origin the telephony provider calls
  - IVR_PROMPTS_FILE (-prompts): YAML file overriding spoken prompts, reloaded when it changes
  - RATE_LIMIT_PER_MINUTE (-rate), RATE_LIMIT_BURST (-burst): Per-IP limits
  - TRUSTED_PROXIES (-trusted-proxies): IPs or CIDRs whose X-Forwarded-For is believed

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (content, moderators, contact, voice)
  - twiml: TwiML documents and the IVR menu
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, validation, rate limiting, auth, JSON helpers
  - ratelimit: Per-client token buckets
  - metrics: Prometheus collectors
  - models: Request/response types
  - auth: Token generation and validation
  - db: Connection, schema and shared queries
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
