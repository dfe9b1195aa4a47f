// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/db"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/models"
)

type AlertHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *db.Store
}

func NewAlertHandler(conn *sql.DB, cfg cliparse.Config) *AlertHandler {
	return &AlertHandler{db: conn, cfg: cfg, store: db.NewStore(conn)}
}

// parseAlert reads and validates an alert body, writing a 400 on failure
func parseAlert(w http.ResponseWriter, r *http.Request) (models.AlertRequest, bool) {
	var req models.AlertRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	if req.ExpiresAt != nil {
		if !req.ExpiresAt.After(time.Now()) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "expires_at must be in the future")
			return req, false
		}
		utc := req.ExpiresAt.UTC()
		req.ExpiresAt = &utc
	}
	if req.Active == nil {
		active := true
		req.Active = &active
	}
	return req, true
}

// ListAlerts handles GET /api/alerts
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.ActiveAlerts(r.Context(), time.Now().UTC(), db.DefaultListLimit)
	if err != nil {
		slog.Error("failed to list alerts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, alerts)
}

// CreateAlert handles POST /api/alerts
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	req, ok := parseAlert(w, r)
	if !ok {
		return
	}

	alertID := uuid.NewString()
	moderatorID := middleware.ModeratorID(r.Context())

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO alert (id, title, message, severity, region, active, created_by, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, alertID, req.Title, req.Message, req.Severity, req.Region, *req.Active, moderatorID, time.Now().UTC(), req.ExpiresAt)
	if err != nil {
		slog.Error("failed to insert alert", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create alert")
		return
	}

	slog.Info("alert created", "alert_id", alertID, "severity", req.Severity, "moderator_id", moderatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: alertID})
}

// UpdateAlert handles PUT /api/alerts/{id}
func (h *AlertHandler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	alertID := r.PathValue("id")
	if alertID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	req, ok := parseAlert(w, r)
	if !ok {
		return
	}

	res, err := h.db.ExecContext(r.Context(), `
		UPDATE alert
		SET title = $1, message = $2, severity = $3, region = $4, active = $5, expires_at = $6
		WHERE id = $7
	`, req.Title, req.Message, req.Severity, req.Region, *req.Active, req.ExpiresAt, alertID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Alert not found")
		return
	}
	if err != nil {
		slog.Error("failed to update alert", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update alert")
		return
	}

	slog.Info("alert updated", "alert_id", alertID, "moderator_id", middleware.ModeratorID(r.Context()))

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{ID: alertID, UpdatedAt: time.Now().UTC()})
}

// DeleteAlert handles DELETE /api/alerts/{id}
func (h *AlertHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	alertID := r.PathValue("id")

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM alert WHERE id = $1", alertID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Alert not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete alert", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete alert")
		return
	}

	slog.Info("alert deleted", "alert_id", alertID, "moderator_id", middleware.ModeratorID(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}
