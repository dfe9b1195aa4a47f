// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dhirendraxd/voicelink/models"
)

// priceSentence reads out one market price, e.g.
// "Rice at Kalimati: 1,250.5 NPR per kg."
func priceSentence(p models.MarketPrice) string {
	return fmt.Sprintf("%s at %s: %s %s per %s.",
		p.Commodity, p.Market, humanize.Commaf(p.Price), p.Currency, p.Unit)
}

func scheduleSentence(s models.TransportSchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s from %s to %s departs at %s", s.RouteName, s.Origin, s.Destination, s.DepartureTime)
	if s.Days != "" {
		fmt.Fprintf(&b, ", %s", s.Days)
	}
	if s.Operator != "" {
		fmt.Fprintf(&b, ", operated by %s", s.Operator)
	}
	b.WriteString(".")
	if s.Notes != "" {
		b.WriteString(" ")
		b.WriteString(sentence(s.Notes))
	}
	return b.String()
}

func alertSentence(a models.Alert, now time.Time) string {
	var b strings.Builder
	b.WriteString(severityLabel(a.Severity))
	if a.Region != "" {
		fmt.Fprintf(&b, " for %s", a.Region)
	}
	fmt.Fprintf(&b, ": %s %s Posted %s.", sentence(a.Title), sentence(a.Message), postedAgo(a.CreatedAt, now))
	return b.String()
}

func severityLabel(severity string) string {
	switch severity {
	case models.SeverityCritical:
		return "Urgent alert"
	case models.SeverityWarning:
		return "Warning"
	default:
		return "Notice"
	}
}

func postedAgo(createdAt, now time.Time) string {
	if now.Sub(createdAt) < time.Minute {
		return "just now"
	}
	return humanize.RelTime(createdAt, now, "ago", "from now")
}

// sentence makes sure text ends with punctuation so the voice pauses
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
