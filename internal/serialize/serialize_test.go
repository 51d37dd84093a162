package serialize

import (
	"testing"
	"time"

	"github.com/TshiamoTodd/live-docs/internal/models"
)

func TestCleanRoom(t *testing.T) {
	room := &models.Room{
		ID: "01J0000000000000000000TEST",
		Metadata: models.RoomMetadata{
			CreatorID: "u1",
			Email:     "u1@x.com",
			Title:     "Untitled",
		},
		UsersAccesses: map[string][]models.AccessType{
			"u1@x.com": {models.AccessRoomWrite},
		},
		DefaultAccesses: []models.AccessType{},
		CreatedAt:       time.Now().UTC(),
	}

	out := Clean(room)
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", out)
	}
	if m["id"] != room.ID {
		t.Fatalf("id = %v, want %s", m["id"], room.ID)
	}
	meta, ok := m["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata missing or wrong type: %v", m["metadata"])
	}
	if meta["title"] != "Untitled" {
		t.Fatalf("title = %v", meta["title"])
	}
	accesses, ok := m["usersAccesses"].(map[string]any)
	if !ok {
		t.Fatalf("usersAccesses missing: %v", m["usersAccesses"])
	}
	if _, ok := accesses["u1@x.com"]; !ok {
		t.Fatal("creator entry missing after round trip")
	}
}

func TestCleanIsDeepCopy(t *testing.T) {
	in := map[string]any{"nested": map[string]any{"k": "v"}}
	out := Clean(in).(map[string]any)

	in["nested"].(map[string]any)["k"] = "changed"
	if out["nested"].(map[string]any)["k"] != "v" {
		t.Fatal("Clean must not share structure with its input")
	}
}

func TestCleanNil(t *testing.T) {
	if Clean(nil) != nil {
		t.Fatal("Clean(nil) should be nil")
	}
}

func TestCleanUnmarshalable(t *testing.T) {
	// Functions are not data; Clean must not panic.
	if out := Clean(func() {}); out != nil {
		t.Fatalf("expected nil for non-data input, got %v", out)
	}
	if out := Clean(make(chan int)); out != nil {
		t.Fatalf("expected nil for channel input, got %v", out)
	}
}

func TestCleanSlice(t *testing.T) {
	rooms := []models.Room{{ID: "a"}, {ID: "b"}}
	out, ok := Clean(rooms).([]any)
	if !ok {
		t.Fatalf("expected slice, got %T", Clean(rooms))
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
}
