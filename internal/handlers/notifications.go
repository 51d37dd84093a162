package handlers

import (
	"net/http"
	"strconv"

	"github.com/TshiamoTodd/live-docs/internal/api/middleware"
)

// ListNotifications handles GET /notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			h.Error(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	notifications, err := h.inbox.List(r.Context(), ident.Email, limit)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	h.JSON(w, http.StatusOK, map[string]interface{}{
		"data":  notifications,
		"count": len(notifications),
	})
}
