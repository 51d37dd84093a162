package liveblocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/TshiamoTodd/live-docs/internal/metrics"
	"github.com/TshiamoTodd/live-docs/internal/models"
)

// DefaultAPIURL is the hosted backend's REST endpoint.
const DefaultAPIURL = "https://api.liveblocks.io"

// Client is a Liveblocks REST API client. It is constructed once at startup
// and injected into the action layer; it holds no mutable state beyond the
// underlying http.Client.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a client authenticated with the given secret key.
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest performs an HTTP request and maps failures onto the backend
// error kinds. op labels the backend latency metric.
func (c *Client) doRequest(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// apiError translates an upstream error response into an error kind.
func apiError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, msg)
	}
}

// CreateRoom creates a room with the given id, metadata and access maps.
func (c *Client) CreateRoom(ctx context.Context, params CreateRoomParams) (*models.Room, error) {
	if params.UsersAccesses == nil {
		params.UsersAccesses = map[string][]models.AccessType{}
	}
	if params.DefaultAccesses == nil {
		params.DefaultAccesses = []models.AccessType{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	respBody, err := c.doRequest(ctx, "create_room", http.MethodPost, "/v2/rooms", body)
	if err != nil {
		return nil, err
	}
	return decodeRoom(respBody)
}

// GetRoom fetches a room by id.
func (c *Client) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	respBody, err := c.doRequest(ctx, "get_room", http.MethodGet, "/v2/rooms/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeRoom(respBody)
}

// UpdateRoom applies a partial update to a room and returns the updated room.
func (c *Client) UpdateRoom(ctx context.Context, id string, update RoomUpdate) (*models.Room, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	respBody, err := c.doRequest(ctx, "update_room", http.MethodPost, "/v2/rooms/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	return decodeRoom(respBody)
}

// ListRooms returns every room where userID has an access entry. The
// backend's own ordering is preserved.
func (c *Client) ListRooms(ctx context.Context, userID string) ([]models.Room, error) {
	path := "/v2/rooms?userId=" + url.QueryEscape(userID)
	respBody, err := c.doRequest(ctx, "list_rooms", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []models.Room `json:"data"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode room list: %v", ErrUnavailable, err)
	}
	return resp.Data, nil
}

// Ping checks that the backend is reachable and the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, "ping", http.MethodGet, "/v2/rooms?limit=1", nil)
	return err
}

func decodeRoom(data []byte) (*models.Room, error) {
	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("%w: decode room: %v", ErrUnavailable, err)
	}
	return &room, nil
}
