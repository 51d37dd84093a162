// Package liveblocks talks to the hosted collaboration backend that owns
// room storage and real-time sync. The service consumes it through the
// Backend interface; Client is the real REST implementation and
// MemoryBackend an in-process one for development and tests.
package liveblocks

import (
	"context"
	"errors"

	"github.com/TshiamoTodd/live-docs/internal/models"
)

// Error kinds surfaced by every Backend implementation. Callers branch with
// errors.Is; wrapped messages carry the upstream detail.
var (
	ErrNotFound    = errors.New("room not found")
	ErrValidation  = errors.New("invalid room payload")
	ErrUnavailable = errors.New("collaboration backend unavailable")
)

// CreateRoomParams is the payload for creating a room.
type CreateRoomParams struct {
	ID              string                         `json:"id"`
	Metadata        models.RoomMetadata            `json:"metadata"`
	UsersAccesses   map[string][]models.AccessType `json:"usersAccesses"`
	DefaultAccesses []models.AccessType            `json:"defaultAccesses"`
}

// RoomUpdate is a partial room update. Zero-value fields are left untouched
// upstream. A nil capability set in UsersAccesses deletes that entry.
type RoomUpdate struct {
	Metadata        map[string]string              `json:"metadata,omitempty"`
	UsersAccesses   map[string][]models.AccessType `json:"usersAccesses,omitempty"`
	DefaultAccesses *[]models.AccessType           `json:"defaultAccesses,omitempty"`
}

// Backend is the hosted collaboration service consumed by the action layer.
type Backend interface {
	CreateRoom(ctx context.Context, params CreateRoomParams) (*models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	UpdateRoom(ctx context.Context, id string, update RoomUpdate) (*models.Room, error)
	ListRooms(ctx context.Context, userID string) ([]models.Room, error)
	Ping(ctx context.Context) error
}
