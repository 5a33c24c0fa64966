package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryFeed holds the feed in process memory, newest first.
type MemoryFeed struct {
	mu    sync.RWMutex
	items []Item
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{}
}

func (f *MemoryFeed) Append(ctx context.Context, item Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]Item{item}, f.items...)
	if len(f.items) > MaxItems {
		f.items = f.items[:MaxItems]
	}
	return nil
}

func (f *MemoryFeed) List(ctx context.Context) ([]Item, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *MemoryFeed) MarkRead(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (f *MemoryFeed) MarkAllRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		f.items[i].Read = true
	}
	return nil
}

func (f *MemoryFeed) UnreadCount(ctx context.Context) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := 0
	for i := range f.items {
		if !f.items[i].Read {
			n++
		}
	}
	return n, nil
}
