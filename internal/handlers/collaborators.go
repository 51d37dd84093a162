package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/TshiamoTodd/live-docs/internal/access"
	"github.com/TshiamoTodd/live-docs/internal/api/middleware"
	"github.com/TshiamoTodd/live-docs/internal/serialize"
)

// ShareRequest is the payload for POST /documents/{id}/collaborators.
type ShareRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// SearchCollaborators handles GET /documents/{id}/collaborators.
func (h *Handler) SearchCollaborators(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	documentID := chi.URLParam(r, "id")
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	emails, err := h.svc.SearchCollaborators(r.Context(), documentID, ident.Email, query)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]interface{}{
		"data":  emails,
		"count": len(emails),
	})
}

// ShareDocument handles POST /documents/{id}/collaborators.
func (h *Handler) ShareDocument(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	documentID := chi.URLParam(r, "id")

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		h.Error(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}

	userType := access.UserType(req.UserType)
	if userType != access.UserTypeEditor && userType != access.UserTypeViewer {
		h.Error(w, http.StatusUnprocessableEntity, "userType must be editor or viewer")
		return
	}

	room, err := h.svc.UpdateAccess(r.Context(), documentID, email, userType, ident.Email)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, serialize.Clean(room))
}

// RemoveCollaborator handles DELETE /documents/{id}/collaborators/{email}.
func (h *Handler) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "id")

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || !isValidEmail(email) {
		h.Error(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}

	room, err := h.svc.RemoveCollaborator(r.Context(), documentID, email)
	if err != nil {
		h.ServiceError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, serialize.Clean(room))
}
