// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters and histograms for HTTP
// traffic, IVR menu selections and rate limiting, served at GET /metrics.
package metrics
