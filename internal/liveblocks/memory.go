package liveblocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/TshiamoTodd/live-docs/internal/models"
)

// MemoryBackend is an in-process Backend used when no secret key is
// configured (local development) and throughout the test suite. It applies
// the same partial-update semantics as the hosted backend.
type MemoryBackend struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{rooms: make(map[string]*models.Room)}
}

// CreateRoom stores a new room. An existing id is a validation error, as the
// hosted backend rejects duplicate ids.
func (b *MemoryBackend) CreateRoom(ctx context.Context, params CreateRoomParams) (*models.Room, error) {
	if params.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.rooms[params.ID]; exists {
		return nil, fmt.Errorf("%w: room %s already exists", ErrValidation, params.ID)
	}

	room := &models.Room{
		ID:              params.ID,
		Metadata:        params.Metadata,
		UsersAccesses:   cloneAccesses(params.UsersAccesses),
		DefaultAccesses: cloneSet(params.DefaultAccesses),
		CreatedAt:       time.Now().UTC(),
	}
	if room.UsersAccesses == nil {
		room.UsersAccesses = map[string][]models.AccessType{}
	}
	if room.DefaultAccesses == nil {
		room.DefaultAccesses = []models.AccessType{}
	}

	b.rooms[params.ID] = room
	return cloneRoom(room), nil
}

// GetRoom returns a copy of the stored room.
func (b *MemoryBackend) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	room, ok := b.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneRoom(room), nil
}

// UpdateRoom applies a partial update: metadata keys are merged, access
// entries are merged with nil meaning delete, defaultAccesses is replaced
// only when present. Untouched entries are preserved byte for byte.
func (b *MemoryBackend) UpdateRoom(ctx context.Context, id string, update RoomUpdate) (*models.Room, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for key, value := range update.Metadata {
		switch key {
		case "title":
			room.Metadata.Title = value
		case "creatorId":
			room.Metadata.CreatorID = value
		case "email":
			room.Metadata.Email = value
		default:
			return nil, fmt.Errorf("%w: unknown metadata key %q", ErrValidation, key)
		}
	}

	for email, set := range update.UsersAccesses {
		if set == nil {
			delete(room.UsersAccesses, email)
			continue
		}
		room.UsersAccesses[email] = cloneSet(set)
	}

	if update.DefaultAccesses != nil {
		room.DefaultAccesses = cloneSet(*update.DefaultAccesses)
	}

	return cloneRoom(room), nil
}

// ListRooms returns rooms where userID has an explicit access entry, newest
// first for deterministic output.
func (b *MemoryBackend) ListRooms(ctx context.Context, userID string) ([]models.Room, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var rooms []models.Room
	for _, room := range b.rooms {
		if room.HasAccess(userID) {
			rooms = append(rooms, *cloneRoom(room))
		}
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID > rooms[j].ID
		}
		return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
	})
	return rooms, nil
}

// Ping always succeeds; the backend lives in-process.
func (b *MemoryBackend) Ping(ctx context.Context) error {
	return nil
}

func cloneRoom(room *models.Room) *models.Room {
	out := *room
	out.UsersAccesses = cloneAccesses(room.UsersAccesses)
	out.DefaultAccesses = cloneSet(room.DefaultAccesses)
	return &out
}

func cloneAccesses(in map[string][]models.AccessType) map[string][]models.AccessType {
	if in == nil {
		return nil
	}
	out := make(map[string][]models.AccessType, len(in))
	for email, set := range in {
		out[email] = cloneSet(set)
	}
	return out
}

func cloneSet(in []models.AccessType) []models.AccessType {
	if in == nil {
		return nil
	}
	out := make([]models.AccessType, len(in))
	copy(out, in)
	return out
}
