package booking

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Candidate slot starts. The lunch break is excluded by omission.
var candidateTimes = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

const (
	suggestionDays = 7
	maxSuggestions = 10
)

// WaitEstimator supplies the estimated wait minutes attached to a suggested
// slot. Production wires RandomWaitEstimator; tests inject a fixed one.
type WaitEstimator func() int

// RandomWaitEstimator returns a placeholder wait between 5 and 19 minutes.
// It is not derived from actual clinic load.
func RandomWaitEstimator() int {
	return gofakeit.Number(5, 19)
}

// Advisor answers "is this slot free?" and "what slots should I suggest?"
// against the appointment collection of one doctor. It is stateless: every
// call recomputes from the repository.
type Advisor struct {
	repo         Repository
	estimateWait WaitEstimator
}

func NewAdvisor(repo Repository, estimator WaitEstimator) *Advisor {
	if estimator == nil {
		estimator = RandomWaitEstimator
	}
	return &Advisor{repo: repo, estimateWait: estimator}
}

// CheckConflicts reports every non-cancelled appointment of doctorID whose
// interval strictly overlaps the proposed [start, start+duration) interval.
// excludeID skips one record, used when validating a reschedule of that same
// appointment. Results follow collection order. Empty means the slot is free.
func (ad *Advisor) CheckConflicts(ctx context.Context, date Date, start ClockTime, durationMinutes int, doctorID uuid.UUID, excludeID uuid.UUID) ([]ConflictInfo, error) {
	existing, err := ad.repo.List(ctx, Filter{DoctorID: doctorID, Date: &date})
	if err != nil {
		return nil, fmt.Errorf("list appointments for conflict check: %w", err)
	}

	proposedStart := start.Minutes
	proposedEnd := proposedStart + durationMinutes

	var conflicts []ConflictInfo
	for i := range existing {
		other := &existing[i]
		if other.ID == excludeID || other.Status == StatusCancelled {
			continue
		}
		otherStart, otherEnd := other.Interval()
		// Strict overlap: back-to-back slots do not conflict.
		if proposedStart < otherEnd && proposedEnd > otherStart {
			conflicts = append(conflicts, ConflictInfo{
				Kind:          "appointment",
				AppointmentID: other.ID,
				Description: fmt.Sprintf("Trùng với lịch hẹn của %s (%s - %s)",
					other.PatientName, other.StartTime, other.StartTime.Add(other.DurationMinutes)),
				Severity: SeverityHigh,
			})
		}
	}

	return conflicts, nil
}

// SuggestSlots scans the 7 calendar days starting at fromDate, day-major and
// time-minor over the fixed candidate times, and returns up to 10 conflict-free
// slots. Same-day slots score 95; each further day costs 10 points down to a
// floor of 60. Output keeps scan order, it is not re-sorted by confidence.
func (ad *Advisor) SuggestSlots(ctx context.Context, fromDate Date, durationMinutes int, doctorID uuid.UUID) ([]TimeSlotSuggestion, error) {
	var suggestions []TimeSlotSuggestion

	for offset := 0; offset < suggestionDays; offset++ {
		day := fromDate.AddDays(offset)

		for _, raw := range candidateTimes {
			start, err := ParseClock(raw)
			if err != nil {
				return nil, err
			}

			conflicts, err := ad.CheckConflicts(ctx, day, start, durationMinutes, doctorID, uuid.Nil)
			if err != nil {
				return nil, err
			}
			if len(conflicts) > 0 {
				continue
			}

			suggestions = append(suggestions, TimeSlotSuggestion{
				Date:            day,
				Time:            start,
				Confidence:      confidenceFor(offset),
				Reason:          reasonFor(offset),
				DoctorAvailable: true,
				EstimatedWait:   ad.estimateWait(),
			})

			if len(suggestions) >= maxSuggestions {
				return suggestions, nil
			}
		}
	}

	return suggestions, nil
}

func confidenceFor(dayOffset int) int {
	if dayOffset == 0 {
		return 95
	}
	c := 95 - 10*dayOffset
	if c < 60 {
		return 60
	}
	return c
}

func reasonFor(dayOffset int) string {
	if dayOffset == 0 {
		return "Cùng ngày, khung giờ trống"
	}
	return fmt.Sprintf("%d ngày sau, khung giờ trống", dayOffset)
}
