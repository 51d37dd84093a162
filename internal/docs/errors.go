package docs

import (
	"errors"

	"github.com/TshiamoTodd/live-docs/internal/liveblocks"
)

// Error kinds returned by the action layer. Callers branch with errors.Is
// instead of inspecting a missing result.
var (
	// ErrNotFound: the document id does not exist upstream.
	ErrNotFound = liveblocks.ErrNotFound
	// ErrValidation: the backend rejected a malformed payload.
	ErrValidation = liveblocks.ErrValidation
	// ErrBackendUnavailable: network or service failure reaching the backend.
	ErrBackendUnavailable = liveblocks.ErrUnavailable

	// ErrAccessDenied: the caller has no access entry and read gating is on.
	ErrAccessDenied = errors.New("access denied")
	// ErrForbiddenOperation: the operation is never allowed, such as
	// removing the document owner.
	ErrForbiddenOperation = errors.New("forbidden operation")
)
