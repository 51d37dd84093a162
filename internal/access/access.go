// Package access maps the coarse collaborator roles exposed by the API onto
// the fine-grained capability sets understood by the hosted backend.
package access

import "github.com/TshiamoTodd/live-docs/internal/models"

// UserType is a coarse collaborator role.
type UserType string

const (
	UserTypeCreator UserType = "creator"
	UserTypeEditor  UserType = "editor"
	UserTypeViewer  UserType = "viewer"
)

// ForUserType returns the capability set for a role. Creators and editors get
// write capability; every other value falls back to the read-only pair.
func ForUserType(t UserType) []models.AccessType {
	switch t {
	case UserTypeCreator, UserTypeEditor:
		return []models.AccessType{models.AccessRoomWrite}
	default:
		return []models.AccessType{models.AccessRoomRead, models.AccessRoomPresenceWrite}
	}
}

// Normalize coerces an arbitrary role string into a known UserType,
// defaulting to viewer.
func Normalize(role string) UserType {
	switch UserType(role) {
	case UserTypeCreator, UserTypeEditor, UserTypeViewer:
		return UserType(role)
	default:
		return UserTypeViewer
	}
}

// Writable reports whether a capability set includes write capability.
func Writable(set []models.AccessType) bool {
	for _, a := range set {
		if a == models.AccessRoomWrite {
			return true
		}
	}
	return false
}
