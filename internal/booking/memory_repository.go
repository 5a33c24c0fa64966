package booking

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps appointments in insertion order, guarded by a mutex.
// It backs demo mode and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []AppointmentRequest
}

func NewMemoryRepository(seed ...AppointmentRequest) *MemoryRepository {
	r := &MemoryRepository{}
	r.items = append(r.items, seed...)
	return r
}

func (r *MemoryRepository) Create(ctx context.Context, appt *AppointmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *appt)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if r.items[i].ID == id {
			cp := r.items[i]
			return &cp, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]AppointmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []AppointmentRequest
	for i := range r.items {
		if matches(&r.items[i], f) {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, appt *AppointmentRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == appt.ID {
			r.items[i] = *appt
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func matches(a *AppointmentRequest, f Filter) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.DoctorID != uuid.Nil && a.DoctorID != f.DoctorID {
		return false
	}
	if f.Date != nil && !a.Date.Equal(*f.Date) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.PatientName), q) &&
			!strings.Contains(a.PatientPhone, q) &&
			!strings.Contains(strings.ToLower(a.Symptoms), q) &&
			!strings.Contains(strings.ToLower(a.ID.String()), q) {
			return false
		}
	}
	return true
}
