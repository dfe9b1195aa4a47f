// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
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

type ModeratorHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *db.Store
}

func NewModeratorHandler(conn *sql.DB, cfg cliparse.Config) *ModeratorHandler {
	return &ModeratorHandler{db: conn, cfg: cfg, store: db.NewStore(conn)}
}

// Apply handles POST /api/moderators/apply
func (h *ModeratorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req models.ModeratorApplyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	moderatorID := uuid.NewString()

	// Insert moderator (UNIQUE constraint on email prevents duplicates)
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO moderator (id, email, display_name, organization, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, moderatorID, req.Email, req.DisplayName, req.Organization, models.ModeratorPending, time.Now().UTC())
	if isUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to insert moderator", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	slog.Info("moderator applied", "moderator_id", moderatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.ModeratorStatusResponse{
		ModeratorID: moderatorID,
		Status:      models.ModeratorPending,
	})
}

// ListModerators handles GET /api/moderators?status=
func (h *ModeratorHandler) ListModerators(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.ModeratorPending, models.ModeratorApproved, models.ModeratorRejected:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: pending, approved, rejected")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, email, display_name, organization, status, created_at, decided_at
		FROM moderator
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		slog.Error("failed to query moderators", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	moderators := []models.Moderator{}
	for rows.Next() {
		var m models.Moderator
		if err := rows.Scan(&m.ID, &m.Email, &m.DisplayName, &m.Organization, &m.Status, &m.CreatedAt, &m.DecidedAt); err != nil {
			slog.Error("failed to scan moderator", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		moderators = append(moderators, m)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read moderators", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, moderators)
}

// Approve handles POST /api/moderators/{id}/approve and returns the bearer token
func (h *ModeratorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	moderatorID, ok := h.decide(w, r, models.ModeratorApproved)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ApproveModeratorResponse{
		ModeratorID: moderatorID,
		Token:       auth.GenerateModeratorToken(moderatorID, h.cfg.ModeratorTokenSalt),
	})
}

// Reject handles POST /api/moderators/{id}/reject
func (h *ModeratorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	moderatorID, ok := h.decide(w, r, models.ModeratorRejected)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ModeratorStatusResponse{
		ModeratorID: moderatorID,
		Status:      models.ModeratorRejected,
	})
}

// decide records an admin decision, writing the error response itself
func (h *ModeratorHandler) decide(w http.ResponseWriter, r *http.Request, status string) (string, bool) {
	moderatorID := r.PathValue("id")
	if moderatorID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return "", false
	}

	res, err := h.db.ExecContext(r.Context(), `
		UPDATE moderator
		SET status = $1, decided_at = $2
		WHERE id = $3
	`, status, time.Now().UTC(), moderatorID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Moderator not found")
		return "", false
	}
	if err != nil {
		slog.Error("failed to update moderator", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update moderator")
		return "", false
	}

	slog.Info("moderator decided", "moderator_id", moderatorID, "status", status)
	return moderatorID, true
}

// Me handles GET /api/moderators/me
func (h *ModeratorHandler) Me(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.Moderator(r.Context(), middleware.ModeratorID(r.Context()))
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Moderator not found")
		return
	}
	if err != nil {
		slog.Error("failed to load moderator", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, m)
}

// RequireApproved allows the request only with a bearer token belonging
// to an approved moderator, and stores the moderator ID on the context
func (h *ModeratorHandler) RequireApproved(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		moderatorID, err := auth.ParseModeratorToken(token, h.cfg.ModeratorTokenSalt)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid moderator token")
			return
		}

		m, err := h.store.Moderator(r.Context(), moderatorID)
		if errors.Is(err, db.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid moderator token")
			return
		}
		if err != nil {
			slog.Error("failed to load moderator", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if m.Status != models.ModeratorApproved {
			middleware.ErrorResponse(w, http.StatusForbidden, "Moderator is not approved")
			return
		}

		next(w, r.WithContext(middleware.WithModeratorID(r.Context(), moderatorID)))
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
