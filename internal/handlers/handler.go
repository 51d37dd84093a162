package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/TshiamoTodd/live-docs/internal/cache"
	"github.com/TshiamoTodd/live-docs/internal/docs"
	"github.com/TshiamoTodd/live-docs/internal/notify"
)

// emailRegex validates email addresses per RFC 5322 (simplified).
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// maxTitleLength bounds inline-edited titles.
const maxTitleLength = 512

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	svc   *docs.Service
	views *cache.ViewCache
	inbox *notify.Inbox
}

// NewHandler creates a new Handler.
func NewHandler(svc *docs.Service, views *cache.ViewCache, inbox *notify.Inbox) *Handler {
	return &Handler{svc: svc, views: views, inbox: inbox}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// ServiceError maps an action-layer error kind onto an HTTP response.
func (h *Handler) ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, docs.ErrNotFound):
		h.Error(w, http.StatusNotFound, "document not found")
	case errors.Is(err, docs.ErrAccessDenied):
		h.Error(w, http.StatusForbidden, "you don't have access to this document")
	case errors.Is(err, docs.ErrForbiddenOperation):
		h.Error(w, http.StatusForbidden, "the document owner cannot be removed")
	case errors.Is(err, docs.ErrValidation):
		h.Error(w, http.StatusUnprocessableEntity, "invalid document payload")
	case errors.Is(err, docs.ErrBackendUnavailable):
		h.Error(w, http.StatusBadGateway, "collaboration backend unavailable")
	default:
		h.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// sanitizeTitle strips control characters and bounds the title length.
func sanitizeTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, title)

	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}
	return title
}

// isValidEmail validates email addresses using RFC 5322 pattern.
func isValidEmail(email string) bool {
	if len(email) == 0 || len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}
