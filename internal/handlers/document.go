package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/TshiamoTodd/live-docs/internal/api/middleware"
	"github.com/TshiamoTodd/live-docs/internal/serialize"
)

// UpdateTitleRequest is the payload for PATCH /documents/{id}.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// CreateDocument handles POST /documents.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	room, err := h.svc.CreateDocument(r.Context(), ident.UserID, ident.Email)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusCreated, serialize.Clean(room))
}

// GetDocument handles GET /documents/{id}.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	documentID := chi.URLParam(r, "id")

	room, err := h.svc.GetDocument(r.Context(), documentID, ident.Email)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, serialize.Clean(room))
}

// UpdateTitle handles PATCH /documents/{id}.
func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "id")

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	title := sanitizeTitle(strings.TrimSpace(req.Title))
	if title == "" {
		h.Error(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	room, err := h.svc.UpdateTitle(r.Context(), documentID, title)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, serialize.Clean(room))
}

// ListDocuments handles GET /documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	rooms, err := h.svc.ListDocuments(r.Context(), ident.Email)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]interface{}{
		"data":  serialize.Clean(rooms),
		"count": len(rooms),
	})
}
