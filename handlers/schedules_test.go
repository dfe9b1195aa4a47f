// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhirendraxd/voicelink/models"
	"github.com/dhirendraxd/voicelink/testutil"
)

func TestListSchedules_OrderedByDeparture(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewScheduleHandler(db, cfg)

	modID, _ := testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)
	testutil.CreateTestSchedule(t, db, modID, "Evening bus", "18:30")
	testutil.CreateTestSchedule(t, db, modID, "Morning bus", "06:15")
	testutil.CreateTestSchedule(t, db, modID, "Noon bus", "12:00")

	w := httptest.NewRecorder()
	handler.ListSchedules(w, httptest.NewRequest("GET", "/api/schedules", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var schedules []models.TransportSchedule
	testutil.AssertJSON(t, w, &schedules)
	if len(schedules) != 3 {
		t.Fatalf("Expected 3 schedules, got %d", len(schedules))
	}

	expected := []string{"06:15", "12:00", "18:30"}
	for i, s := range schedules {
		if s.DepartureTime != expected[i] {
			t.Errorf("Position %d: expected departure %s, got %s", i, expected[i], s.DepartureTime)
		}
	}
}

func TestCreateSchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewScheduleHandler(db, cfg)

	modID, _ := testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)

	tests := []struct {
		name           string
		departure      string
		expectedStatus int
	}{
		{"valid time", "07:45", http.StatusCreated},
		{"midnight", "00:00", http.StatusCreated},
		{"not a time", "quarter past seven", http.StatusBadRequest},
		{"hour out of range", "25:00", http.StatusBadRequest},
		{"missing", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := models.ScheduleRequest{
				RouteName:     "Route 7",
				Origin:        "Village",
				Destination:   "Market town",
				DepartureTime: tt.departure,
				Days:          "Mon-Fri",
			}
			req := asModerator(testutil.MakeRequest("POST", "/api/schedules", body, nil), modID)
			w := httptest.NewRecorder()

			handler.CreateSchedule(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestUpdateAndDeleteSchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewScheduleHandler(db, cfg)

	modID, _ := testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)
	scheduleID := testutil.CreateTestSchedule(t, db, modID, "Route 7", "07:00")

	body := models.ScheduleRequest{
		RouteName:     "Route 7",
		Origin:        "Village",
		Destination:   "Market town",
		DepartureTime: "07:30",
		Notes:         "Delayed by roadworks",
	}

	req := asModerator(testutil.MakeRequest("PUT", "/api/schedules/"+scheduleID, body, nil), modID)
	req.SetPathValue("id", scheduleID)
	w := httptest.NewRecorder()
	handler.UpdateSchedule(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var departure, notes string
	if err := db.QueryRow("SELECT departure_time, notes FROM transport_schedule WHERE id = $1", scheduleID).Scan(&departure, &notes); err != nil {
		t.Fatalf("Failed to read schedule: %v", err)
	}
	if departure != "07:30" || notes != "Delayed by roadworks" {
		t.Errorf("Schedule not updated: departure=%q notes=%q", departure, notes)
	}

	req = asModerator(httptest.NewRequest("DELETE", "/api/schedules/"+scheduleID, nil), modID)
	req.SetPathValue("id", scheduleID)
	w = httptest.NewRecorder()
	handler.DeleteSchedule(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	req = asModerator(testutil.MakeRequest("PUT", "/api/schedules/"+scheduleID, body, nil), modID)
	req.SetPathValue("id", scheduleID)
	w = httptest.NewRecorder()
	handler.UpdateSchedule(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateSchedule_UnpaddedHourSortsByDeparture(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewScheduleHandler(db, cfg)

	modID, _ := testutil.CreateTestModerator(t, db, cfg, models.ModeratorApproved)

	for _, departure := range []string{"9:30", "10:00"} {
		body := models.ScheduleRequest{
			RouteName:     "Route " + departure,
			Origin:        "Village",
			Destination:   "Market town",
			DepartureTime: departure,
		}
		w := httptest.NewRecorder()
		handler.CreateSchedule(w, asModerator(testutil.MakeRequest("POST", "/api/schedules", body, nil), modID))
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	w := httptest.NewRecorder()
	handler.ListSchedules(w, httptest.NewRequest("GET", "/api/schedules", nil))

	var schedules []models.TransportSchedule
	testutil.AssertJSON(t, w, &schedules)
	if len(schedules) != 2 {
		t.Fatalf("Expected 2 schedules, got %d", len(schedules))
	}

	// The one-digit hour is stored zero-padded and listed first
	expected := []string{"09:30", "10:00"}
	for i, s := range schedules {
		if s.DepartureTime != expected[i] {
			t.Errorf("Position %d: expected departure %s, got %s", i, expected[i], s.DepartureTime)
		}
	}
}
