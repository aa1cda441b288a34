package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/service"
)

type tripHandler struct {
	trips service.TripService
}

type startTripRequest struct {
	BookingID      int32   `json:"booking_id"`
	StartLatitude  float64 `json:"start_latitude"`
	StartLongitude float64 `json:"start_longitude"`
	StartBattery   int32   `json:"start_battery"`
	StartAddress   string  `json:"start_address"`
}

func (h *tripHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.trips.StartTrip(r.Context(), userIDFromContext(r.Context()), req.BookingID,
		req.StartLatitude, req.StartLongitude, req.StartBattery, req.StartAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

type endTripRequest struct {
	EndLatitude      float64 `json:"end_latitude"`
	EndLongitude     float64 `json:"end_longitude"`
	EndBattery       int32   `json:"end_battery"`
	EndAddress       string  `json:"end_address"`
	HasIssues        bool    `json:"has_issues"`
	IssueDescription string  `json:"issue_description"`
}

func (h *tripHandler) end(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req endTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.trips.EndTrip(r.Context(), userIDFromContext(r.Context()), id,
		req.EndLatitude, req.EndLongitude, req.EndBattery, req.EndAddress, req.HasIssues, req.IssueDescription)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

type reportIssueRequest struct {
	IssueDescription string `json:"issue_description"`
}

func (h *tripHandler) reportIssue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reportIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.trips.ReportIssue(r.Context(), userIDFromContext(r.Context()), id, req.IssueDescription)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (h *tripHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	trip, err := h.trips.GetTrip(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (h *tripHandler) active(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.GetActiveTrip(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}
