// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: SQLite path or PostgreSQL connection string
  - AdminSecret: Secret compared against X-Admin-Key (required)
  - ModeratorTokenSalt: Secret for moderator token HMAC (required)
  - TwilioAuthToken: Enables webhook signature checks (optional)
  - PublicBaseURL: Origin the telephony provider calls (optional)
  - PromptsFile: YAML overrides for IVR prompts (optional)
  - RateLimitPerMinute, RateLimitBurst: Per-client limits (default: 10/5)
  - TrustedProxies: Proxies allowed to name the client in X-Forwarded-For (default: none)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-public-url     Public base URL
	-prompts        IVR prompts file
	-admin-secret   Admin secret
	-token-salt     Moderator token salt
	-twilio-token   Twilio auth token
	-rate, -burst   Rate limit settings
	-trusted-proxies  Comma-separated proxy IPs or CIDRs
	-env-file       Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT                  → -p
	DATABASE_URL          → -d
	DATABASE_TYPE         → -t
	PUBLIC_BASE_URL       → -public-url
	IVR_PROMPTS_FILE      → -prompts
	ADMIN_SECRET          → -admin-secret
	MODERATOR_TOKEN_SALT  → -token-salt
	TWILIO_AUTH_TOKEN     → -twilio-token
	RATE_LIMIT_PER_MINUTE → -rate
	RATE_LIMIT_BURST      → -burst
	TRUSTED_PROXIES       → -trusted-proxies

CLI flags take precedence over environment variables. The dotenv file is
loaded before the fallbacks are read, and never overrides variables that
are already set. A missing dotenv file is ignored.

# Validation

ParseFlags returns an error if:

  - ADMIN_SECRET or MODERATOR_TOKEN_SALT is missing
  - DATABASE_TYPE is postgres and DATABASE_URL is missing
  - DATABASE_TYPE is neither sqlite nor postgres
  - a numeric variable does not parse
  - a TRUSTED_PROXIES entry is neither an IP nor a CIDR
*/
package cliparse
