//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceURL = "http://localhost:8080"

// The seeded admin and organizer accounts; see the deployment seed script.
const (
	adminUserID     = "1"
	organizerUserID = "2"
)

// TestAPI_FullFlow walks the whole booking lifecycle against a running
// service: venue setup, request, conflict, approve, reject.
func TestAPI_FullFlow(t *testing.T) {
	waitForService(t)

	day := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	var venueID, firstBookingID, secondBookingID float64

	t.Run("Step1_CreateVenue", func(t *testing.T) {
		resp := post(t, "/api/v1/admin/venues", adminUserID, map[string]any{
			"name":        "Grand Hall",
			"capacity":    300,
			"hourly_rate": 100,
		})
		require.Equal(t, 201, resp.StatusCode)

		var venue map[string]any
		decodeJSON(t, resp, &venue)
		venueID = venue["id"].(float64)
		assert.Equal(t, "Grand Hall", venue["name"])
	})

	t.Run("Step2_CreateBooking", func(t *testing.T) {
		resp := post(t, "/api/v1/bookings", organizerUserID, map[string]any{
			"venue_id":       venueID,
			"event_title":    "Graduation Ceremony",
			"start_datetime": day.Add(9 * time.Hour).Format(time.RFC3339),
			"end_datetime":   day.Add(11 * time.Hour).Format(time.RFC3339),
		})
		require.Equal(t, 201, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		firstBookingID = booking["id"].(float64)
		assert.Equal(t, "pending", booking["status"])
	})

	t.Run("Step3_CreateOverlappingBooking", func(t *testing.T) {
		resp := post(t, "/api/v1/bookings", organizerUserID, map[string]any{
			"venue_id":       venueID,
			"event_title":    "Club Fair",
			"start_datetime": day.Add(10*time.Hour + 30*time.Minute).Format(time.RFC3339),
			"end_datetime":   day.Add(12 * time.Hour).Format(time.RFC3339),
		})
		// Creation is allowed; the conflict only matters at approval.
		require.Equal(t, 201, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		secondBookingID = booking["id"].(float64)
	})

	t.Run("Step4_ApproveFirst", func(t *testing.T) {
		resp := post(t, fmt.Sprintf("/api/v1/admin/requests/%.0f/approve", firstBookingID), adminUserID, map[string]any{})
		require.Equal(t, 200, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "approved", booking["status"])
		assert.Equal(t, 200.0, booking["total_cost"])
	})

	t.Run("Step5_ApproveSecondConflicts", func(t *testing.T) {
		resp := post(t, fmt.Sprintf("/api/v1/admin/requests/%.0f/approve", secondBookingID), adminUserID, map[string]any{})
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("Step6_RejectSecond", func(t *testing.T) {
		resp := post(t, fmt.Sprintf("/api/v1/admin/requests/%.0f/reject", secondBookingID), adminUserID, map[string]any{
			"reason": "Venue unavailable",
		})
		require.Equal(t, 200, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "rejected", booking["status"])
		assert.Equal(t, "Venue unavailable", booking["rejection_reason"])
	})

	t.Run("Step7_OrganizerSeesNotification", func(t *testing.T) {
		resp := get(t, "/api/v1/notifications?unread=true", organizerUserID)
		require.Equal(t, 200, resp.StatusCode)

		var notifications []map[string]any
		decodeJSON(t, resp, &notifications)
		assert.NotEmpty(t, notifications)
	})
}

func waitForService(t *testing.T) {
	t.Helper()
	for i := 0; i < 30; i++ {
		resp, err := http.Get(serviceURL + "/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			return
		}
		time.Sleep(time.Second)
	}
	t.Fatal("service did not become ready")
}

func post(t *testing.T, path, userID string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, serviceURL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, path, userID string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, serviceURL+path, nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", userID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
