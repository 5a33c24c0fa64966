package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Filter narrows List results. Zero-value fields are ignored.
type Filter struct {
	Status   Status
	DoctorID uuid.UUID
	Date     *Date
	// Search matches case-insensitively against patient name, phone,
	// symptoms and the appointment id.
	Search string
}

// Repository stores the appointment collection. List returns records in
// insertion order; conflict reporting relies on that.
type Repository interface {
	Create(ctx context.Context, appt *AppointmentRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentRequest, error)
	List(ctx context.Context, f Filter) ([]AppointmentRequest, error)
	// Update replaces the stored record matched by appt.ID. The returned
	// bool is false when no record matched; callers treat that as a no-op.
	Update(ctx context.Context, appt *AppointmentRequest) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
