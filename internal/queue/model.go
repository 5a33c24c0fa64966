package queue

import (
	"github.com/google/uuid"

	"github.com/carelink/hospital-booking/internal/booking"
)

type Status string

const (
	StatusScheduled      Status = "scheduled"
	StatusArrived        Status = "arrived"
	StatusWaiting        Status = "waiting"
	StatusInConsultation Status = "in_consultation"
	StatusCompleted      Status = "completed"
	StatusNoShow         Status = "no_show"
)

// legal transitions; completed and no_show are terminal.
var transitions = map[Status][]Status{
	StatusScheduled:      {StatusArrived, StatusNoShow},
	StatusArrived:        {StatusWaiting, StatusNoShow},
	StatusWaiting:        {StatusInConsultation, StatusNoShow},
	StatusInConsultation: {StatusCompleted},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusArrived, StatusWaiting,
		StatusInConsultation, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// isActive reports whether the item takes part in queue-position numbering.
func (s Status) isActive() bool {
	return s == StatusWaiting || s == StatusArrived
}

// displayBucket orders the board; lower comes first.
func (s Status) displayBucket() int {
	switch s {
	case StatusInConsultation:
		return 0
	case StatusWaiting:
		return 1
	case StatusArrived:
		return 2
	case StatusScheduled:
		return 3
	case StatusCompleted:
		return 4
	case StatusNoShow:
		return 5
	}
	return 6
}

// StatusLabel is the Vietnamese display vocabulary used in notifications.
func StatusLabel(s Status) string {
	switch s {
	case StatusScheduled:
		return "Đã đặt lịch"
	case StatusArrived:
		return "Đã đến"
	case StatusWaiting:
		return "Đang chờ"
	case StatusInConsultation:
		return "Đang khám"
	case StatusCompleted:
		return "Hoàn thành"
	case StatusNoShow:
		return "Vắng mặt"
	}
	return string(s)
}

type Item struct {
	ID            uuid.UUID
	AppointmentID *uuid.UUID
	PatientName   string
	PatientPhone  string
	DoctorID      uuid.UUID
	DoctorName    string
	ScheduledTime booking.ClockTime
	CheckInTime   *booking.ClockTime
	CheckOutTime  *booking.ClockTime
	Status        Status
	Priority      booking.Priority
	Type          booking.AppointmentType
	EstimatedMins int

	// Position is a dense 1-based rank over the waiting/arrived subset only.
	// Items outside that subset carry a stale or zero position.
	Position          int
	EstimatedCallTime *booking.ClockTime
	WaitMinutes       int
}
