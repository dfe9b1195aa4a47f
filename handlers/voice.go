// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dhirendraxd/voicelink/auth"
	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/db"
	"github.com/dhirendraxd/voicelink/metrics"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/twiml"
)

// VoiceBasePath is where the telephony provider's webhooks are mounted
const VoiceBasePath = "/twiml"

type VoiceHandler struct {
	cfg     cliparse.Config
	menu    *twiml.Menu
	metrics *metrics.Metrics
}

// NewVoiceMenu builds the IVR menu over the content tables, mounted at VoiceBasePath
func NewVoiceMenu(conn *sql.DB, prompts twiml.Prompts) *twiml.Menu {
	return twiml.NewMenu(prompts, db.NewStore(conn), VoiceBasePath)
}

func NewVoiceHandler(cfg cliparse.Config, menu *twiml.Menu, m *metrics.Metrics) *VoiceHandler {
	return &VoiceHandler{
		cfg:     cfg,
		menu:    menu,
		metrics: m,
	}
}

// Voice handles POST /twiml/voice, the entry point of every call
func (h *VoiceHandler) Voice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	slog.Info("call entered menu",
		"request_id", middleware.RequestID(r.Context()),
		"call_sid", r.FormValue("CallSid"),
		"caller", h.caller(r),
	)

	h.render(w, h.menu.Welcome(r.Context()))
}

// Menu handles POST /twiml/menu with the Digits the caller pressed
func (h *VoiceHandler) Menu(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	digits := r.FormValue("Digits")
	option := twiml.ParseOption(digits)

	slog.Info("menu selection",
		"request_id", middleware.RequestID(r.Context()),
		"call_sid", r.FormValue("CallSid"),
		"caller", h.caller(r),
		"option", string(option),
	)
	h.metrics.MenuSelection(string(option))

	h.render(w, h.menu.Select(r.Context(), digits))
}

// caller hashes the From number so logs never carry phone numbers
func (h *VoiceHandler) caller(r *http.Request) string {
	from := r.FormValue("From")
	if from == "" {
		return ""
	}
	return auth.HashIdentifier(from, h.cfg.ModeratorTokenSalt)
}

func (h *VoiceHandler) render(w http.ResponseWriter, resp *twiml.Response) {
	body, err := resp.Render()
	if err != nil {
		slog.Error("failed to render TwiML", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
