package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"
)

type notificationHandler struct {
	notifications service.NotificationService
}

func (h *notificationHandler) list(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	notes, total, err := h.notifications.GetNotifications(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, notes, total, page, pageSize)
}

func (h *notificationHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.UnreadCount(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"unread_count": count})
}

func (h *notificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), userIDFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *notificationHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllAsRead(r.Context(), userIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type registerDeviceRequest struct {
	Token    string                `json:"token"`
	Platform domain.DevicePlatform `json:"platform"`
}

func (h *notificationHandler) registerDevice(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.notifications.RegisterDevice(r.Context(), userIDFromContext(r.Context()), req.Token, req.Platform); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *notificationHandler) unregisterDevice(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.notifications.UnregisterDevice(r.Context(), req.Token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
