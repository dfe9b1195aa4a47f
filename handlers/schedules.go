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

// departureLayout is the 24-hour HH:MM form departure times are kept in
const departureLayout = "15:04"

type ScheduleHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *db.Store
}

func NewScheduleHandler(conn *sql.DB, cfg cliparse.Config) *ScheduleHandler {
	return &ScheduleHandler{db: conn, cfg: cfg, store: db.NewStore(conn)}
}

func parseSchedule(w http.ResponseWriter, r *http.Request) (models.ScheduleRequest, bool) {
	var req models.ScheduleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return req, false
	}

	// Stored zero-padded so the TEXT column sorts in departure order
	departure, err := time.Parse(departureLayout, req.DepartureTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "departure_time must be a valid time in HH:MM format")
		return req, false
	}
	req.DepartureTime = departure.Format(departureLayout)

	return req, true
}

// ListSchedules handles GET /api/schedules
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.TransportSchedules(r.Context(), db.DefaultListLimit)
	if err != nil {
		slog.Error("failed to list schedules", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, schedules)
}

// CreateSchedule handles POST /api/schedules
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	req, ok := parseSchedule(w, r)
	if !ok {
		return
	}

	scheduleID := uuid.NewString()
	moderatorID := middleware.ModeratorID(r.Context())

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO transport_schedule (id, route_name, origin, destination, departure_time, days, operator, notes, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, scheduleID, req.RouteName, req.Origin, req.Destination, req.DepartureTime,
		req.Days, req.Operator, req.Notes, moderatorID, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert schedule", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	slog.Info("schedule created", "schedule_id", scheduleID, "route", req.RouteName, "moderator_id", moderatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: scheduleID})
}

// UpdateSchedule handles PUT /api/schedules/{id}
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("id")
	if scheduleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	req, ok := parseSchedule(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	res, err := h.db.ExecContext(r.Context(), `
		UPDATE transport_schedule
		SET route_name = $1, origin = $2, destination = $3, departure_time = $4,
			days = $5, operator = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`, req.RouteName, req.Origin, req.Destination, req.DepartureTime,
		req.Days, req.Operator, req.Notes, now, scheduleID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Schedule not found")
		return
	}
	if err != nil {
		slog.Error("failed to update schedule", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	slog.Info("schedule updated", "schedule_id", scheduleID, "moderator_id", middleware.ModeratorID(r.Context()))

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{ID: scheduleID, UpdatedAt: now})
}

// DeleteSchedule handles DELETE /api/schedules/{id}
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("id")

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM transport_schedule WHERE id = $1", scheduleID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Schedule not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete schedule", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}

	slog.Info("schedule deleted", "schedule_id", scheduleID, "moderator_id", middleware.ModeratorID(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}
