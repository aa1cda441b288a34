package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"
)

type paymentHandler struct {
	payments service.PaymentService
}

type createPaymentRequest struct {
	BookingID int32                `json:"booking_id"`
	Method    domain.PaymentMethod `json:"method"`
}

func (h *paymentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.payments.CreatePayment(r.Context(), userIDFromContext(r.Context()), req.BookingID, req.Method)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

func (h *paymentHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.payments.GetPayment(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *paymentHandler) getForBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.payments.GetBookingPayment(r.Context(), userIDFromContext(r.Context()), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *paymentHandler) list(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	payments, total, err := h.payments.ListMyPayments(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, payments, total, page, pageSize)
}
