package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const feedKey = "notifications:feed"

// RedisFeed stores the feed as a Redis list, newest at the head, trimmed to
// MaxItems on every append so the log survives restarts but never grows.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) Append(ctx context.Context, item Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, feedKey, data)
	pipe.LTrim(ctx, feedKey, 0, MaxItems-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

func (f *RedisFeed) List(ctx context.Context) ([]Item, error) {
	raw, err := f.client.LRange(ctx, feedKey, 0, MaxItems-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		var item Item
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *RedisFeed) MarkRead(ctx context.Context, id uuid.UUID) error {
	return f.rewrite(ctx, func(item *Item) {
		if item.ID == id {
			item.Read = true
		}
	}, id)
}

func (f *RedisFeed) MarkAllRead(ctx context.Context) error {
	return f.rewrite(ctx, func(item *Item) {
		item.Read = true
	}, uuid.Nil)
}

// rewrite applies fn to each stored item and LSETs changed entries in place.
// When target is non-nil and absent, ErrNotificationNotFound is returned.
func (f *RedisFeed) rewrite(ctx context.Context, fn func(*Item), target uuid.UUID) error {
	raw, err := f.client.LRange(ctx, feedKey, 0, MaxItems-1).Result()
	if err != nil {
		return fmt.Errorf("read notifications: %w", err)
	}

	found := false
	for i, entry := range raw {
		var item Item
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return fmt.Errorf("unmarshal notification: %w", err)
		}
		if target != uuid.Nil && item.ID != target {
			continue
		}
		found = true

		before := item.Read
		fn(&item)
		if item.Read == before {
			continue
		}

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal notification: %w", err)
		}
		if err := f.client.LSet(ctx, feedKey, int64(i), data).Err(); err != nil {
			return fmt.Errorf("update notification: %w", err)
		}
	}

	if target != uuid.Nil && !found {
		return ErrNotificationNotFound
	}
	return nil
}

func (f *RedisFeed) UnreadCount(ctx context.Context) (int, error) {
	items, err := f.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range items {
		if !items[i].Read {
			n++
		}
	}
	return n, nil
}
