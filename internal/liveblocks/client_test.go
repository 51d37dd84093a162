package liveblocks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TshiamoTodd/live-docs/internal/models"
)

func TestCreateRoomRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Room{
			ID:       "room-1",
			Metadata: models.RoomMetadata{CreatorID: "u1", Email: "u1@x.com", Title: "Untitled"},
			UsersAccesses: map[string][]models.AccessType{
				"u1@x.com": {models.AccessRoomWrite},
			},
			DefaultAccesses: []models.AccessType{},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	room, err := client.CreateRoom(context.Background(), CreateRoomParams{
		ID:       "room-1",
		Metadata: models.RoomMetadata{CreatorID: "u1", Email: "u1@x.com", Title: "Untitled"},
		UsersAccesses: map[string][]models.AccessType{
			"u1@x.com": {models.AccessRoomWrite},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "POST /v2/rooms" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer sk_test" {
		t.Fatalf("auth = %q", gotAuth)
	}
	// A nil set must be sent as an explicit empty array, not null.
	if accesses, ok := gotBody["defaultAccesses"].([]any); !ok || len(accesses) != 0 {
		t.Fatalf("defaultAccesses = %v", gotBody["defaultAccesses"])
	}
	if room.ID != "room-1" {
		t.Fatalf("room id = %q", room.ID)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"ROOM_NOT_FOUND","message":"room missing does not exist"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.GetRoom(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRoomValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid accesses"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.UpdateRoom(context.Background(), "room-1", RoomUpdate{
		Metadata: map[string]string{"title": "x"},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.GetRoom(context.Background(), "room-1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNetworkErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "sk_test")
	err := client.Ping(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestListRooms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != "u1@x.com" {
			t.Errorf("userId = %q", got)
		}
		_, _ = w.Write([]byte(`{"nextCursor":null,"data":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	rooms, err := client.ListRooms(context.Background(), "u1@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 2 || rooms[0].ID != "a" {
		t.Fatalf("rooms = %v", rooms)
	}
}

func TestUpdateRoomMarshalsNullEntry(t *testing.T) {
	// A nil capability set must reach the wire as an explicit null so the
	// backend deletes the entry.
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UsersAccesses map[string]json.RawMessage `json:"usersAccesses"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		raw = body.UsersAccesses
		_, _ = w.Write([]byte(`{"id":"room-1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.UpdateRoom(context.Background(), "room-1", RoomUpdate{
		UsersAccesses: map[string][]models.AccessType{"gone@x.com": nil},
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw["gone@x.com"]) != "null" {
		t.Fatalf("entry = %s, want null", raw["gone@x.com"])
	}
}
