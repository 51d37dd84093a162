// Package livedocs provides a client for the LiveDocs document API.
package livedocs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a LiveDocs API client. Identity headers are attached to every
// request; the server trusts them, so the caller is responsible for using
// credentials issued by the identity provider.
type Client struct {
	BaseURL    string
	UserID     string
	Email      string
	HTTPClient *http.Client
}

// NewClient creates a new LiveDocs client.
func NewClient(baseURL, userID, email string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		BaseURL:    baseURL,
		UserID:     userID,
		Email:      email,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Document is a document with its metadata and access map.
type Document struct {
	ID       string `json:"id"`
	Metadata struct {
		CreatorID string `json:"creatorId"`
		Email     string `json:"email"`
		Title     string `json:"title"`
	} `json:"metadata"`
	UsersAccesses   map[string][]string `json:"usersAccesses"`
	DefaultAccesses []string            `json:"defaultAccesses"`
	CreatedAt       time.Time           `json:"createdAt,omitzero"`
}

// Notification is a share notification.
type Notification struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Role       string `json:"role"`
	UpdatedBy  string `json:"updatedBy"`
	Timestamp  int64  `json:"timestamp"`
}

// listResponse wraps collection endpoints.
type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// doRequest performs an HTTP request with identity headers.
func (c *Client) doRequest(method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-LiveDocs-User-Id", c.UserID)
	req.Header.Set("X-LiveDocs-User-Email", c.Email)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)
		return nil, fmt.Errorf("LiveDocs error %d: %s", resp.StatusCode, errResp.Error)
	}

	return respBody, nil
}

// CreateDocument creates a new untitled document owned by the client identity.
func (c *Client) CreateDocument() (*Document, error) {
	respBody, err := c.doRequest("POST", "/documents", nil)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocument fetches one document.
func (c *Client) GetDocument(id string) (*Document, error) {
	respBody, err := c.doRequest("GET", "/documents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateTitle renames a document.
func (c *Client) UpdateTitle(id, title string) (*Document, error) {
	body, _ := json.Marshal(map[string]string{"title": title})
	respBody, err := c.doRequest("PATCH", "/documents/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns the documents the client identity can access.
func (c *Client) ListDocuments() ([]Document, error) {
	respBody, err := c.doRequest("GET", "/documents", nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse[Document]
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SearchCollaborators returns a document's collaborator emails, filtered by
// query when it is non-empty. The client identity is never included.
func (c *Client) SearchCollaborators(id, query string) ([]string, error) {
	path := "/documents/" + url.PathEscape(id) + "/collaborators"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}

	respBody, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse[string]
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Share grants a collaborator access. userType is "editor" or "viewer".
func (c *Client) Share(id, email, userType string) (*Document, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "userType": userType})
	respBody, err := c.doRequest("POST", "/documents/"+url.PathEscape(id)+"/collaborators", body)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// RemoveCollaborator revokes a collaborator's access.
func (c *Client) RemoveCollaborator(id, email string) (*Document, error) {
	path := "/documents/" + url.PathEscape(id) + "/collaborators/" + url.PathEscape(email)
	respBody, err := c.doRequest("DELETE", path, nil)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Notifications returns the client identity's share notifications, newest
// first.
func (c *Client) Notifications() ([]Notification, error) {
	respBody, err := c.doRequest("GET", "/notifications", nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse[Notification]
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Health reports the raw health payload from the server.
func (c *Client) Health() (map[string]any, error) {
	respBody, err := c.doRequest("GET", "/health", nil)
	if err != nil {
		return nil, err
	}

	var resp map[string]any
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
