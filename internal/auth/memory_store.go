package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStore backs demo mode and tests. Expiry is checked lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	codes   map[string]memoryCode
	resends map[string]time.Time
	now     func() time.Time
}

type memoryCode struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes:   make(map[string]memoryCode),
		resends: make(map[string]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the wall clock, used by tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) SaveCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = memoryCode{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) GetCode(ctx context.Context, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[phone]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.codes, phone)
		return "", ErrCodeExpired
	}
	return entry.code, nil
}

func (s *MemoryStore) DeleteCode(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, phone)
	return nil
}

func (s *MemoryStore) AcquireResend(ctx context.Context, phone string, cooldown time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.resends[phone]; ok && now.Before(until) {
		return false, nil
	}
	s.resends[phone] = now.Add(cooldown)
	return true, nil
}
