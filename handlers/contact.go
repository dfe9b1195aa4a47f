// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dhirendraxd/voicelink/auth"
	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/db"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/models"
)

type ContactHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewContactHandler(conn *sql.DB, cfg cliparse.Config) *ContactHandler {
	return &ContactHandler{db: conn, cfg: cfg}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	messageID := uuid.NewString()
	reference := auth.GenerateReference(messageID, h.cfg.ModeratorTokenSalt)

	// Hash the client IP for abuse tracking
	ipHash := auth.HashIdentifier(middleware.GetClientIP(r, h.cfg.TrustedProxies), h.cfg.ModeratorTokenSalt)

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO contact_message (id, name, email, message, reference, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, messageID, req.Name, req.Email, req.Message, reference, ipHash, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert contact message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	slog.Info("contact message received", "message_id", messageID, "reference", reference)

	middleware.JSONResponse(w, http.StatusCreated, models.ContactResponse{
		Reference: reference,
		Message:   "Thank you for reaching out. We will get back to you soon.",
	})
}

// ListMessages handles GET /api/contact (admin only)
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, email, message, reference, created_at
		FROM contact_message
		ORDER BY created_at DESC
		LIMIT $1
	`, db.DefaultListLimit)
	if err != nil {
		slog.Error("failed to query contact messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Reference, &m.CreatedAt); err != nil {
			slog.Error("failed to scan contact message", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read contact messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, messages)
}
