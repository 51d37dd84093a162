package models

// Notification records a document being shared with a user.
type Notification struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Role       string `json:"role"`
	UpdatedBy  string `json:"updatedBy"`
	Timestamp  int64  `json:"timestamp"`
}
