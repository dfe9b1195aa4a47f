// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhirendraxd/voicelink/auth"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/models"
	"github.com/dhirendraxd/voicelink/testutil"
)

func TestApply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewModeratorHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name           string
		body           models.ModeratorApplyRequest
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid application",
			body:           models.ModeratorApplyRequest{Email: "Asha@Example.org", DisplayName: "Asha", Organization: "Farmers Co-op"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate email differing in case",
			body:           models.ModeratorApplyRequest{Email: "asha@example.org ", DisplayName: "Asha Again"},
			expectedStatus: http.StatusConflict,
			expectedError:  "Email already registered",
		},
		{
			name:           "invalid email",
			body:           models.ModeratorApplyRequest{Email: "asha", DisplayName: "Asha"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "email must be a valid email address",
		},
		{
			name:           "short display name",
			body:           models.ModeratorApplyRequest{Email: "b@example.org", DisplayName: " B "},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "display_name must be at least 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/moderators/apply", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Apply(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.ModeratorStatusResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ModeratorID == "" {
					t.Error("Expected moderator_id in response")
				}
				if resp.Status != models.ModeratorPending {
					t.Errorf("Expected status pending, got %s", resp.Status)
				}
				return
			}

			var errResp models.ErrorResponse
			testutil.AssertJSON(t, w, &errResp)
			if errResp.Message != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, errResp.Message)
			}
		})
	}
}

func TestListModerators(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewModeratorHandler(db, cfg)

	testutil.CreateTestModerator(t, db, cfg, models.ModeratorPending)
	testutil.CreateTestModerator(t, db, cfg, models.ModeratorPending)
	testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)

	tests := []struct {
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"", http.StatusOK, 3},
		{"?status=pending", http.StatusOK, 2},
		{"?status=approved", http.StatusOK, 1},
		{"?status=rejected", http.StatusOK, 0},
		{"?status=banned", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run("query"+tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListModerators(w, httptest.NewRequest("GET", "/api/moderators"+tt.query, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var moderators []models.Moderator
			testutil.AssertJSON(t, w, &moderators)
			if len(moderators) != tt.expectedCount {
				t.Errorf("Expected %d moderators, got %d", tt.expectedCount, len(moderators))
			}
		})
	}
}

func TestApproveAndReject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewModeratorHandler(db, cfg)

	modID, _ := testutil.CreateTestModerator(t, db, cfg, models.ModeratorPending)

	t.Run("approve returns token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/moderators/"+modID+"/approve", nil)
		req.SetPathValue("id", modID)
		w := httptest.NewRecorder()

		handler.Approve(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ApproveModeratorResponse
		testutil.AssertJSON(t, w, &resp)

		parsed, err := auth.ParseModeratorToken(resp.Token, cfg.ModeratorTokenSalt)
		if err != nil {
			t.Fatalf("Returned token does not verify: %v", err)
		}
		if parsed != modID {
			t.Errorf("Expected token for %s, got %s", modID, parsed)
		}

		var status string
		var decided bool
		db.QueryRow("SELECT status, decided_at IS NOT NULL FROM moderator WHERE id = $1", modID).Scan(&status, &decided)
		if status != models.ModeratorApproved || !decided {
			t.Errorf("Expected approved with decided_at, got status=%s decided=%v", status, decided)
		}
	})

	t.Run("reject", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/moderators/"+modID+"/reject", nil)
		req.SetPathValue("id", modID)
		w := httptest.NewRecorder()

		handler.Reject(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ModeratorStatusResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != models.ModeratorRejected {
			t.Errorf("Expected rejected, got %s", resp.Status)
		}
	})

	t.Run("unknown moderator", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/moderators/missing/approve", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.Approve(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestRequireApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewModeratorHandler(db, cfg)

	approvedID, approvedToken := testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)
	_, pendingToken := testutil.CreateTestModerator(t, db, cfg, models.ModeratorPending)
	_, rejectedToken := testutil.CreateTestModerator(t, db, cfg, models.ModeratorRejected)

	var seen string
	protected := handler.RequireApproved(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.ModeratorID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{"approved moderator", "Bearer " + approvedToken, http.StatusOK},
		{"lowercase scheme", "bearer " + approvedToken, http.StatusOK},
		{"pending moderator", "Bearer " + pendingToken, http.StatusForbidden},
		{"rejected moderator", "Bearer " + rejectedToken, http.StatusForbidden},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + approvedToken, http.StatusUnauthorized},
		{"tampered token", "Bearer " + approvedToken + "x", http.StatusUnauthorized},
		{"unknown moderator", "Bearer " + auth.GenerateModeratorToken("ghost", cfg.ModeratorTokenSalt), http.StatusUnauthorized},
		{"token from another salt", "Bearer " + auth.GenerateModeratorToken(approvedID, "other-salt"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest("POST", "/api/alerts", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			protected(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK && seen != approvedID {
				t.Errorf("Expected moderator %s on context, got %q", approvedID, seen)
			}
		})
	}
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewModeratorHandler(db, cfg)

	modID, token := testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)

	req := testutil.MakeRequest("GET", "/api/moderators/me", nil, testutil.BearerHeaders(token))
	w := httptest.NewRecorder()
	handler.RequireApproved(handler.Me)(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var m models.Moderator
	testutil.AssertJSON(t, w, &m)
	if m.ID != modID || m.Status != models.ModeratorApproved {
		t.Errorf("Unexpected moderator: %+v", m)
	}
}
