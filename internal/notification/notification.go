// Package notification keeps a small, capped feed of staff-facing events.
// The feed holds the 50 most recent items; older entries are evicted.
package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const MaxItems = 50

var ErrNotificationNotFound = errors.New("notification not found")

type Type string

const (
	TypeAppointmentApproved    Type = "appointment_approved"
	TypeAppointmentDeclined    Type = "appointment_declined"
	TypeAppointmentRescheduled Type = "appointment_rescheduled"
	TypeNewBooking             Type = "new_booking"
	TypeQueueUpdate            Type = "queue_update"
	TypeSystemAlert            Type = "system_alert"
)

type Item struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
	Priority  string    `json:"priority"`
}

// New builds an item with a derived title. The message texts around the
// system are Vietnamese; titles follow suit.
func New(typ Type, message, priority string, now time.Time) Item {
	return Item{
		ID:        uuid.New(),
		Title:     titleFor(typ),
		Message:   message,
		Type:      typ,
		CreatedAt: now,
		Priority:  priority,
	}
}

func titleFor(typ Type) string {
	switch typ {
	case TypeAppointmentApproved:
		return "Lịch hẹn được duyệt"
	case TypeAppointmentDeclined:
		return "Lịch hẹn bị từ chối"
	case TypeAppointmentRescheduled:
		return "Lịch hẹn được dời"
	case TypeNewBooking:
		return "Yêu cầu đặt lịch mới"
	case TypeQueueUpdate:
		return "Cập nhật hàng chờ"
	case TypeSystemAlert:
		return "Thông báo hệ thống"
	}
	return "Thông báo"
}

// Feed is the notification log. Append evicts the oldest entry past MaxItems.
// List returns newest first.
type Feed interface {
	Append(ctx context.Context, item Item) error
	List(ctx context.Context) ([]Item, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}
