// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dhirendraxd/voicelink/models"
)

// ContentSource supplies what the leaf branches read out
type ContentSource interface {
	MarketPrices(ctx context.Context, limit int) ([]models.MarketPrice, error)
	TransportSchedules(ctx context.Context, limit int) ([]models.TransportSchedule, error)
	ActiveAlerts(ctx context.Context, now time.Time, limit int) ([]models.Alert, error)
}

// Option is a main menu choice
type Option string

const (
	OptionPrices    Option = "prices"
	OptionSchedules Option = "schedules"
	OptionAlerts    Option = "alerts"
	OptionHelp      Option = "help"
	OptionRepeat    Option = "repeat"
	OptionHangup    Option = "hangup"
	OptionInvalid   Option = "invalid"
)

// ParseOption maps the Digits a caller pressed to a menu option.
// Only the first key counts.
func ParseOption(digits string) Option {
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return OptionInvalid
	}

	switch digits[0] {
	case '1':
		return OptionPrices
	case '2':
		return OptionSchedules
	case '3':
		return OptionAlerts
	case '4':
		return OptionHelp
	case '0', '*':
		return OptionRepeat
	case '9':
		return OptionHangup
	default:
		return OptionInvalid
	}
}

// Menu builds the IVR documents. It keeps no per-call state: every
// document ends in a Gather, a Redirect back to the entry route, or a Hangup.
// Prompts may be swapped while calls are in flight; each document is built
// from a single snapshot.
type Menu struct {
	prompts  atomic.Pointer[Prompts]
	content  ContentSource
	basePath string
	now      func() time.Time
}

// NewMenu creates a menu whose routes live under basePath, e.g. "/twiml"
func NewMenu(prompts Prompts, content ContentSource, basePath string) *Menu {
	m := &Menu{
		content:  content,
		basePath: strings.TrimRight(basePath, "/"),
		now:      time.Now,
	}
	m.SetPrompts(prompts)
	return m
}

// SetPrompts replaces the prompts used for documents built from now on
func (m *Menu) SetPrompts(p Prompts) {
	m.prompts.Store(&p)
}

// Prompts returns the prompts currently in use
func (m *Menu) Prompts() Prompts {
	return *m.prompts.Load()
}

// VoiceURL is the entry route the telephony provider calls first
func (m *Menu) VoiceURL() string {
	return m.basePath + "/voice"
}

// MenuURL receives the digits gathered on the main menu
func (m *Menu) MenuURL() string {
	return m.basePath + "/menu"
}

func (m *Menu) backToMenu() Redirect {
	return Redirect{Method: "POST", URL: m.VoiceURL()}
}

func (p *Prompts) say(text string) Say {
	return Say{Voice: p.Voice, Language: p.Language, Text: text}
}

// Welcome greets the caller and gathers one digit. If the caller presses
// nothing, the verbs after Gather run and the call loops back here.
func (m *Menu) Welcome(ctx context.Context) *Response {
	p := m.prompts.Load()

	gather := Gather{
		Input:     "dtmf",
		NumDigits: 1,
		Action:    m.MenuURL(),
		Method:    "POST",
		Timeout:   p.GatherTimeout,
	}
	if p.Welcome != "" {
		gather.Verbs = append(gather.Verbs, p.say(p.Welcome))
	}
	if p.MainMenu != "" {
		gather.Verbs = append(gather.Verbs, p.say(p.MainMenu))
	}

	return NewResponse(
		gather,
		p.say(p.NoInput),
		m.backToMenu(),
	)
}

// Select returns the document for the digits pressed on the main menu
func (m *Menu) Select(ctx context.Context, digits string) *Response {
	p := m.prompts.Load()

	switch ParseOption(digits) {
	case OptionPrices:
		return m.leaf(p, m.prices(ctx, p))
	case OptionSchedules:
		return m.leaf(p, m.schedules(ctx, p))
	case OptionAlerts:
		return m.leaf(p, m.alerts(ctx, p))
	case OptionHelp:
		return m.leaf(p, []string{p.Help})
	case OptionRepeat:
		return NewResponse(m.backToMenu())
	case OptionHangup:
		return NewResponse(p.say(p.Goodbye), Hangup{})
	default:
		return NewResponse(p.say(p.Invalid), m.backToMenu())
	}
}

// leaf speaks each line, pauses, then returns to the main menu
func (m *Menu) leaf(p *Prompts, lines []string) *Response {
	resp := NewResponse()
	for _, line := range lines {
		resp.Append(p.say(line))
	}
	if p.LeafPause > 0 {
		resp.Append(Pause{Length: p.LeafPause})
	}
	return resp.Append(m.backToMenu())
}

func (m *Menu) prices(ctx context.Context, p *Prompts) []string {
	prices, err := m.content.MarketPrices(ctx, p.ItemLimit)
	if err != nil {
		slog.Warn("ivr: failed to load market prices", "error", err)
		return []string{p.Unavailable}
	}
	if len(prices) == 0 {
		return []string{p.NoPrices}
	}

	lines := []string{p.PricesIntro}
	for _, mp := range prices {
		lines = append(lines, priceSentence(mp))
	}
	return lines
}

func (m *Menu) schedules(ctx context.Context, p *Prompts) []string {
	schedules, err := m.content.TransportSchedules(ctx, p.ItemLimit)
	if err != nil {
		slog.Warn("ivr: failed to load transport schedules", "error", err)
		return []string{p.Unavailable}
	}
	if len(schedules) == 0 {
		return []string{p.NoSchedules}
	}

	lines := []string{p.SchedulesIntro}
	for _, s := range schedules {
		lines = append(lines, scheduleSentence(s))
	}
	return lines
}

func (m *Menu) alerts(ctx context.Context, p *Prompts) []string {
	now := m.now()
	alerts, err := m.content.ActiveAlerts(ctx, now, p.ItemLimit)
	if err != nil {
		slog.Warn("ivr: failed to load alerts", "error", err)
		return []string{p.Unavailable}
	}
	if len(alerts) == 0 {
		return []string{p.NoAlerts}
	}

	lines := []string{p.AlertsIntro}
	for _, a := range alerts {
		lines = append(lines, alertSentence(a, now))
	}
	return lines
}
