package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// writeError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindNotFound:
			respondError(w, http.StatusNotFound, appErr.Message)
		case apperr.KindBadRequest:
			respondError(w, http.StatusBadRequest, appErr.Message)
		case apperr.KindConflict:
			respondError(w, http.StatusConflict, appErr.Message)
		case apperr.KindForbidden:
			respondError(w, http.StatusForbidden, appErr.Message)
		default:
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	logger.Error("Unhandled error in request", "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}

type paginatedResponse struct {
	Items      any   `json:"items"`
	TotalCount int32 `json:"total_count"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
}

func respondPage(w http.ResponseWriter, items any, total, page, pageSize int32) {
	respondJSON(w, http.StatusOK, paginatedResponse{Items: items, TotalCount: total, Page: page, PageSize: pageSize})
}
