package livedocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, wantMethod, wantPath string, status int, respBody any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != wantMethod || r.URL.Path != wantPath {
			t.Errorf("got %s %s, want %s %s", r.Method, r.URL.Path, wantMethod, wantPath)
		}
		if got := r.Header.Get("X-LiveDocs-User-Id"); got != "user_1" {
			t.Errorf("user id header = %q", got)
		}
		if got := r.Header.Get("X-LiveDocs-User-Email"); got != "me@example.com" {
			t.Errorf("email header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(respBody)
	}))
}

func TestCreateDocument(t *testing.T) {
	srv := newTestServer(t, "POST", "/documents", http.StatusCreated, map[string]any{
		"id": "doc-1",
		"metadata": map[string]string{
			"creatorId": "user_1",
			"email":     "me@example.com",
			"title":     "Untitled",
		},
	})
	defer srv.Close()

	c := NewClient(srv.URL, "user_1", "me@example.com")
	doc, err := c.CreateDocument()
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.ID != "doc-1" || doc.Metadata.Title != "Untitled" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestListDocuments(t *testing.T) {
	srv := newTestServer(t, "GET", "/documents", http.StatusOK, map[string]any{
		"data":  []map[string]any{{"id": "a"}, {"id": "b"}},
		"count": 2,
	})
	defer srv.Close()

	c := NewClient(srv.URL, "user_1", "me@example.com")
	docs, err := c.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "a" {
		t.Errorf("unexpected documents: %+v", docs)
	}
}

func TestShareEncodesRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ali@example.com" || body["userType"] != "editor" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "doc-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user_1", "me@example.com")
	if _, err := c.Share("doc-1", "ali@example.com", "editor"); err != nil {
		t.Fatalf("Share: %v", err)
	}
}

func TestRemoveCollaboratorPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/doc-1/collaborators/ali@example.com" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "doc-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user_1", "me@example.com")
	if _, err := c.RemoveCollaborator("doc-1", "ali@example.com"); err != nil {
		t.Fatalf("RemoveCollaborator: %v", err)
	}
}

func TestErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "you don't have access to this document"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user_1", "me@example.com")
	_, err := c.GetDocument("doc-1")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "LiveDocs error 403: you don't have access to this document"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
