// Package docs is the document action layer: every operation wraps one call
// to the hosted collaboration backend, applies local validation, invalidates
// the affected cached views and returns either a result or a typed error.
package docs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/TshiamoTodd/live-docs/internal/access"
	"github.com/TshiamoTodd/live-docs/internal/cache"
	"github.com/TshiamoTodd/live-docs/internal/liveblocks"
	"github.com/TshiamoTodd/live-docs/internal/metrics"
	"github.com/TshiamoTodd/live-docs/internal/models"
	"github.com/TshiamoTodd/live-docs/internal/notify"
)

// DefaultTitle is the title every new document starts with.
const DefaultTitle = "Untitled"

// AccessPolicy selects the defaultAccesses applied to users without an
// explicit entry in a new document's access map.
type AccessPolicy string

const (
	// PolicyRestricted: only listed users have access (private by default).
	PolicyRestricted AccessPolicy = "restricted"
	// PolicyOpen: any authenticated user can write.
	PolicyOpen AccessPolicy = "open"
)

// Options holds the configurable access policies: read gating and the
// default-access policy applied to new documents.
type Options struct {
	EnforceReadAccess   bool
	DefaultAccessPolicy AccessPolicy
}

// Service is the document action layer. The backend handle is injected, not
// global; the cache and inbox are optional (nil disables them).
type Service struct {
	backend liveblocks.Backend
	views   *cache.ViewCache
	inbox   *notify.Inbox
	logger  zerolog.Logger
	opts    Options
}

// NewService creates the action layer.
func NewService(backend liveblocks.Backend, views *cache.ViewCache, inbox *notify.Inbox, logger zerolog.Logger, opts Options) *Service {
	if opts.DefaultAccessPolicy == "" {
		opts.DefaultAccessPolicy = PolicyRestricted
	}
	return &Service{
		backend: backend,
		views:   views,
		inbox:   inbox,
		logger:  logger,
		opts:    opts,
	}
}

// defaultAccesses returns the capability set for unlisted users under the
// configured policy.
func (s *Service) defaultAccesses() []models.AccessType {
	if s.opts.DefaultAccessPolicy == PolicyOpen {
		return []models.AccessType{models.AccessRoomWrite}
	}
	return []models.AccessType{}
}

// CreateDocument creates a fresh document owned by the given user. A single
// failed attempt surfaces as an error; no retry is made.
func (s *Service) CreateDocument(ctx context.Context, userID, email string) (*models.Room, error) {
	id := ulid.Make().String()

	room, err := s.backend.CreateRoom(ctx, liveblocks.CreateRoomParams{
		ID: id,
		Metadata: models.RoomMetadata{
			CreatorID: userID,
			Email:     email,
			Title:     DefaultTitle,
		},
		UsersAccesses: map[string][]models.AccessType{
			email: access.ForUserType(access.UserTypeCreator),
		},
		DefaultAccesses: s.defaultAccesses(),
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.views.InvalidateListings(ctx)
	metrics.DocumentsCreated.Inc()
	s.logger.Info().
		Str("document_id", room.ID).
		Str("creator", email).
		Msg("document created")
	return room, nil
}

// GetDocument fetches a document, reading through the view cache. When read
// gating is enabled, callers without an access entry get ErrAccessDenied.
func (s *Service) GetDocument(ctx context.Context, documentID, userEmail string) (*models.Room, error) {
	room, err := s.getRoom(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if s.opts.EnforceReadAccess && !room.HasAccess(userEmail) {
		return nil, fmt.Errorf("get document %s: %w", documentID, ErrAccessDenied)
	}
	return room, nil
}

// UpdateTitle applies a title-only metadata update. The operation is
// idempotent; no authorization happens at this layer.
func (s *Service) UpdateTitle(ctx context.Context, documentID, title string) (*models.Room, error) {
	room, err := s.backend.UpdateRoom(ctx, documentID, liveblocks.RoomUpdate{
		Metadata: map[string]string{"title": title},
	})
	if err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	s.views.InvalidateDocument(ctx, documentID)
	s.views.SetDocument(ctx, room)
	metrics.TitleUpdates.Inc()
	return room, nil
}

// ListDocuments returns every document where the user has an access entry,
// in the backend's own order.
func (s *Service) ListDocuments(ctx context.Context, email string) ([]models.Room, error) {
	if rooms, ok := s.views.GetListing(ctx, email); ok {
		return rooms, nil
	}

	rooms, err := s.backend.ListRooms(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	s.views.SetListing(ctx, email, rooms)
	return rooms, nil
}

// SearchCollaborators returns the document's collaborator emails minus the
// caller, filtered case-insensitively by query when it is non-empty.
func (s *Service) SearchCollaborators(ctx context.Context, documentID, currentEmail, query string) ([]string, error) {
	room, err := s.getRoom(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("search collaborators: %w", err)
	}

	emails := make([]string, 0, len(room.UsersAccesses))
	for email := range room.UsersAccesses {
		if email != currentEmail {
			emails = append(emails, email)
		}
	}
	sort.Strings(emails)

	if query == "" {
		return emails, nil
	}

	needle := strings.ToLower(query)
	filtered := make([]string, 0, len(emails))
	for _, email := range emails {
		if strings.Contains(strings.ToLower(email), needle) {
			filtered = append(filtered, email)
		}
	}
	return filtered, nil
}

// UpdateAccess grants or changes one collaborator's role. The update touches
// only the target entry; other entries are never clobbered. The target is
// notified best-effort.
func (s *Service) UpdateAccess(ctx context.Context, documentID, email string, userType access.UserType, updatedBy string) (*models.Room, error) {
	room, err := s.backend.UpdateRoom(ctx, documentID, liveblocks.RoomUpdate{
		UsersAccesses: map[string][]models.AccessType{
			email: access.ForUserType(userType),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("update access: %w", err)
	}

	s.views.InvalidateDocument(ctx, documentID)
	s.views.InvalidateListings(ctx)
	metrics.AccessGrants.WithLabelValues(string(userType)).Inc()

	if err := s.inbox.Add(ctx, email, models.Notification{
		DocumentID: room.ID,
		Title:      room.Metadata.Title,
		Role:       string(userType),
		UpdatedBy:  updatedBy,
	}); err != nil {
		s.logger.Warn().Err(err).
			Str("document_id", documentID).
			Str("email", email).
			Msg("share notification not delivered")
	}

	return room, nil
}

// RemoveCollaborator deletes one collaborator's access entry. Removing the
// owner is forbidden; the check runs locally before any mutating call.
func (s *Service) RemoveCollaborator(ctx context.Context, documentID, email string) (*models.Room, error) {
	room, err := s.getRoom(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("remove collaborator: %w", err)
	}

	if room.Metadata.Email == email {
		return nil, fmt.Errorf("remove collaborator: %w: document owner cannot be removed", ErrForbiddenOperation)
	}

	updated, err := s.backend.UpdateRoom(ctx, documentID, liveblocks.RoomUpdate{
		UsersAccesses: map[string][]models.AccessType{email: nil},
	})
	if err != nil {
		return nil, fmt.Errorf("remove collaborator: %w", err)
	}

	s.views.InvalidateDocument(ctx, documentID)
	s.views.InvalidateListings(ctx)
	metrics.CollaboratorRemovals.Inc()
	return updated, nil
}

// Ping reports backend reachability for health checks.
func (s *Service) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// getRoom is the cached read path shared by every operation that starts from
// the current room state.
func (s *Service) getRoom(ctx context.Context, documentID string) (*models.Room, error) {
	if room := s.views.GetDocument(ctx, documentID); room != nil {
		return room, nil
	}

	room, err := s.backend.GetRoom(ctx, documentID)
	if err != nil {
		return nil, err
	}

	s.views.SetDocument(ctx, room)
	return room, nil
}
