package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"ispdesk-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	notes, err := h.noteSvc.GetNotifications(r.Context(), r.URL.Query().Get("customer_id"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.noteSvc.MarkAsRead(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark notification as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "read": "true"})
}
