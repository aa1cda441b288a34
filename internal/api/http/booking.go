package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/service"
)

type bookingHandler struct {
	bookings service.BookingService
}

type createBookingRequest struct {
	VehicleID int32  `json:"vehicle_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

func (h *bookingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := parseTime(req.StartTime, "start_time")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseTime(req.EndTime, "end_time")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), userIDFromContext(r.Context()), req.VehicleID, start, end, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *bookingHandler) list(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")

	bookings, total, err := h.bookings.ListMyBookings(r.Context(), userIDFromContext(r.Context()), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, bookings, total, page, pageSize)
}

func (h *bookingHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *bookingHandler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.CancelBooking(r.Context(), userIDFromContext(r.Context()), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *bookingHandler) schedule(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "vehicleId")
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.bookings.GetVehicleSchedule(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *bookingHandler) ownerList(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")

	bookings, total, err := h.bookings.ListOwnerBookings(r.Context(), userIDFromContext(r.Context()), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, bookings, total, page, pageSize)
}

func (h *bookingHandler) ownerPending(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	bookings, total, err := h.bookings.ListOwnerBookings(r.Context(), userIDFromContext(r.Context()), "PENDING", page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, bookings, total, page, pageSize)
}

func (h *bookingHandler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.ApproveBooking(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *bookingHandler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.RejectBooking(r.Context(), userIDFromContext(r.Context()), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}
