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

	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/db"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/models"
)

type PriceHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	store *db.Store
}

func NewPriceHandler(conn *sql.DB, cfg cliparse.Config) *PriceHandler {
	return &PriceHandler{db: conn, cfg: cfg, store: db.NewStore(conn)}
}

func parsePrice(w http.ResponseWriter, r *http.Request) (models.PriceRequest, bool) {
	var req models.PriceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	req.Currency = strings.ToUpper(req.Currency)
	return req, true
}

// ListPrices handles GET /api/prices
func (h *PriceHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.store.MarketPrices(r.Context(), db.DefaultListLimit)
	if err != nil {
		slog.Error("failed to list prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, prices)
}

// CreatePrice handles POST /api/prices
func (h *PriceHandler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	req, ok := parsePrice(w, r)
	if !ok {
		return
	}

	priceID := uuid.NewString()
	moderatorID := middleware.ModeratorID(r.Context())

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO market_price (id, commodity, market, price, unit, currency, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, priceID, req.Commodity, req.Market, req.Price, req.Unit, req.Currency, moderatorID, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert price", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create price")
		return
	}

	slog.Info("price created", "price_id", priceID, "commodity", req.Commodity, "moderator_id", moderatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: priceID})
}

// UpdatePrice handles PUT /api/prices/{id}
func (h *PriceHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	priceID := r.PathValue("id")
	if priceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	req, ok := parsePrice(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	res, err := h.db.ExecContext(r.Context(), `
		UPDATE market_price
		SET commodity = $1, market = $2, price = $3, unit = $4, currency = $5, updated_at = $6
		WHERE id = $7
	`, req.Commodity, req.Market, req.Price, req.Unit, req.Currency, now, priceID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Price not found")
		return
	}
	if err != nil {
		slog.Error("failed to update price", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update price")
		return
	}

	slog.Info("price updated", "price_id", priceID, "moderator_id", middleware.ModeratorID(r.Context()))

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{ID: priceID, UpdatedAt: now})
}

// DeletePrice handles DELETE /api/prices/{id}
func (h *PriceHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	priceID := r.PathValue("id")

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM market_price WHERE id = $1", priceID)
	if err == nil {
		err = requireRow(res)
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Price not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete price", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete price")
		return
	}

	slog.Info("price deleted", "price_id", priceID, "moderator_id", middleware.ModeratorID(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}
