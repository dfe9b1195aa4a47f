// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit provides an in-memory, per-key token bucket limiter.

Each key (normally the client IP) gets its own golang.org/x/time/rate
bucket, created on first use:

	limiter := ratelimit.New(10, 5, 10*time.Minute)
	defer limiter.Close()

	if ok, retryAfter := limiter.Allow(ip); !ok {
		// reject, ask the client to wait retryAfter
	}

A background janitor removes keys that have been idle longer than the TTL,
so the map does not grow without bound. State is per process: running
several replicas multiplies the effective limit.
*/
package ratelimit
