package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusDeclined    Status = "declined"
	StatusRescheduled Status = "rescheduled"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusRescheduled,
		StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow_up"
	TypeRoutine      AppointmentType = "routine"
	TypeSpecialist   AppointmentType = "specialist"
	TypeEmergency    AppointmentType = "emergency"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for display, most urgent first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

type Source string

const (
	SourceOnline Source = "online"
	SourceWalkIn Source = "walk_in"
	SourceDoctor Source = "doctor"
	SourceStaff  Source = "staff"
)

type AppointmentRequest struct {
	ID              uuid.UUID
	PatientName     string
	PatientPhone    string
	PatientEmail    *string
	DoctorID        uuid.UUID
	DoctorName      string
	Date            Date
	StartTime       ClockTime
	DurationMinutes int
	Type            AppointmentType
	Status          Status
	Priority        Priority
	Symptoms        string
	Source          Source
	CreatedAt       time.Time
	ApprovedAt      *time.Time
	DeclineReason   *string

	// Set when the appointment has been moved; the original slot is kept
	// so staff can see what the patient initially asked for.
	OriginalDate        *Date
	OriginalTime        *ClockTime
	RescheduleRequested bool
}

// Interval returns the half-open [start, end) interval in minutes since midnight.
func (a *AppointmentRequest) Interval() (start, end int) {
	return a.StartTime.Minutes, a.StartTime.Minutes + a.DurationMinutes
}

type ConflictSeverity string

const SeverityHigh ConflictSeverity = "high"

// ConflictInfo describes one existing appointment overlapping a proposed slot.
// It is derived on demand and never persisted.
type ConflictInfo struct {
	Kind          string           `json:"kind"`
	AppointmentID uuid.UUID        `json:"appointment_id"`
	Description   string           `json:"description"`
	Severity      ConflictSeverity `json:"severity"`
}

// TimeSlotSuggestion is a ranked free-slot candidate. Confidence is a 0-100
// heuristic score, not a probability.
type TimeSlotSuggestion struct {
	Date            Date      `json:"date"`
	Time            ClockTime `json:"time"`
	Confidence      int       `json:"confidence"`
	Reason          string    `json:"reason"`
	DoctorAvailable bool      `json:"doctor_available"`
	EstimatedWait   int       `json:"estimated_wait_minutes"`
}
