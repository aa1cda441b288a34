package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/service"
)

type reviewHandler struct {
	reviews service.ReviewService
}

type createReviewRequest struct {
	BookingID int32  `json:"booking_id"`
	Rating    int32  `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *reviewHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), userIDFromContext(r.Context()), req.BookingID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}
