package models

import "time"

// AccessType is a single capability granted on a document room.
type AccessType string

const (
	AccessRoomWrite         AccessType = "room:write"
	AccessRoomRead          AccessType = "room:read"
	AccessRoomPresenceWrite AccessType = "room:presence:write"
)

// RoomMetadata holds the document metadata stored alongside a room.
// CreatorID and Email are fixed at creation time; only Title is mutable.
type RoomMetadata struct {
	CreatorID string `json:"creatorId"`
	Email     string `json:"email"`
	Title     string `json:"title"`
}

// Room represents a collaborative document as the hosted backend sees it:
// metadata plus the per-user access map and the default capability set
// applied to users without an explicit entry.
type Room struct {
	ID               string                  `json:"id"`
	Metadata         RoomMetadata            `json:"metadata"`
	UsersAccesses    map[string][]AccessType `json:"usersAccesses"`
	DefaultAccesses  []AccessType            `json:"defaultAccesses"`
	CreatedAt        time.Time               `json:"createdAt,omitzero"`
	LastConnectionAt time.Time               `json:"lastConnectionAt,omitzero"`
}

// HasAccess reports whether email has an explicit entry in the access map.
func (r *Room) HasAccess(email string) bool {
	_, ok := r.UsersAccesses[email]
	return ok
}
