// Package notify records share notifications in per-user Redis inboxes.
// Delivery is best-effort: a failed write never fails the share itself.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/TshiamoTodd/live-docs/internal/metrics"
	"github.com/TshiamoTodd/live-docs/internal/models"
)

const inboxTTL = 7 * 24 * time.Hour

// Inbox stores and lists share notifications. A nil *Inbox is valid and
// drops notifications.
type Inbox struct {
	client *redis.Client
}

// NewInbox creates an inbox store on an existing Redis client.
func NewInbox(client *redis.Client) *Inbox {
	return &Inbox{client: client}
}

// inboxKey returns the key for a user's notification inbox.
func inboxKey(email string) string {
	return fmt.Sprintf("notify:%s:inbox", email)
}

// Add appends a notification to the recipient's inbox, assigning an ID and
// timestamp if unset.
func (i *Inbox) Add(ctx context.Context, email string, n models.Notification) error {
	if i == nil || i.client == nil {
		return nil
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp == 0 {
		n.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(n)
	if err != nil {
		return err
	}

	key := inboxKey(email)
	if err := i.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(n.Timestamp),
		Member: string(data),
	}).Err(); err != nil {
		return err
	}
	i.client.Expire(ctx, key, inboxTTL)

	metrics.ShareNotifications.Inc()
	return nil
}

// List returns a user's notifications, newest first.
func (i *Inbox) List(ctx context.Context, email string, limit int) ([]models.Notification, error) {
	if i == nil || i.client == nil {
		return []models.Notification{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	results, err := i.client.ZRevRange(ctx, inboxKey(email), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(results))
	for _, data := range results {
		var n models.Notification
		if err := json.Unmarshal([]byte(data), &n); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
