package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-booking/internal/notification"
	"github.com/carelink/hospital-booking/internal/observability/metrics"
)

var (
	ErrTerminalStatus = errors.New("appointment is in a terminal status")
	ErrInvalidStatus  = errors.New("unknown appointment status")
)

// Service owns the appointment collection and its lifecycle transitions.
// Transitions do not re-validate conflicts; callers are expected to consult
// the Advisor before approving into a conflicting slot.
type Service struct {
	repo    Repository
	feed    notification.Feed
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(repo Repository, feed notification.Feed, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		feed:    feed,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the wall clock, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// NewRequest describes an incoming booking from the public flow.
type NewRequest struct {
	PatientName     string
	PatientPhone    string
	PatientEmail    *string
	DoctorID        uuid.UUID
	DoctorName      string
	Date            Date
	StartTime       ClockTime
	DurationMinutes int
	Type            AppointmentType
	Priority        Priority
	Symptoms        string
	Source          Source
}

func (s *Service) CreateRequest(ctx context.Context, req NewRequest) (*AppointmentRequest, error) {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}
	if req.Type == "" {
		req.Type = TypeConsultation
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if req.Source == "" {
		req.Source = SourceOnline
	}

	appt := &AppointmentRequest{
		ID:              uuid.New(),
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		PatientEmail:    req.PatientEmail,
		DoctorID:        req.DoctorID,
		DoctorName:      req.DoctorName,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Status:          StatusPending,
		Priority:        req.Priority,
		Symptoms:        req.Symptoms,
		Source:          req.Source,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create booking request: %w", err)
	}

	s.metrics.ObserveBooking(string(appt.Source))
	s.notify(ctx, notification.TypeNewBooking,
		fmt.Sprintf("Bệnh nhân %s đặt lịch khám ngày %s lúc %s", appt.PatientName, appt.Date, appt.StartTime),
		string(appt.Priority))

	return appt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AppointmentRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]AppointmentRequest, error) {
	return s.repo.List(ctx, f)
}

// Approve moves an appointment to approved and stamps the approval time.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*AppointmentRequest, error) {
	return s.transition(ctx, id, func(appt *AppointmentRequest) {
		appt.Status = StatusApproved
		now := s.now()
		appt.ApprovedAt = &now
	}, notification.TypeAppointmentApproved,
		func(appt *AppointmentRequest) string {
			return fmt.Sprintf("Lịch hẹn của %s ngày %s lúc %s đã được duyệt",
				appt.PatientName, appt.Date, appt.StartTime)
		})
}

func (s *Service) Decline(ctx context.Context, id uuid.UUID, reason string) (*AppointmentRequest, error) {
	return s.transition(ctx, id, func(appt *AppointmentRequest) {
		appt.Status = StatusDeclined
		appt.DeclineReason = &reason
	}, notification.TypeAppointmentDeclined,
		func(appt *AppointmentRequest) string {
			return fmt.Sprintf("Lịch hẹn của %s ngày %s đã bị từ chối: %s",
				appt.PatientName, appt.Date, reason)
		})
}

// Reschedule moves the appointment to a new slot and keeps the previous
// date/time as the original ones.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newDate Date, newTime ClockTime) (*AppointmentRequest, error) {
	return s.transition(ctx, id, func(appt *AppointmentRequest) {
		prevDate := appt.Date
		prevTime := appt.StartTime
		appt.OriginalDate = &prevDate
		appt.OriginalTime = &prevTime
		appt.Date = newDate
		appt.StartTime = newTime
		appt.Status = StatusRescheduled
		appt.RescheduleRequested = true
	}, notification.TypeAppointmentRescheduled,
		func(appt *AppointmentRequest) string {
			return fmt.Sprintf("Lịch hẹn của %s được dời sang ngày %s lúc %s",
				appt.PatientName, appt.Date, appt.StartTime)
		})
}

// SetStatus applies an arbitrary valid status. Terminal records are immutable.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*AppointmentRequest, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.transition(ctx, id, func(appt *AppointmentRequest) {
		appt.Status = status
	}, notification.TypeQueueUpdate,
		func(appt *AppointmentRequest) string {
			return fmt.Sprintf("Lịch hẹn của %s chuyển sang trạng thái %s",
				appt.PatientName, appt.Status)
		})
}

// BulkApprove approves every id it can. Missing and terminal records are
// skipped; the returned slice holds the records actually updated.
func (s *Service) BulkApprove(ctx context.Context, ids []uuid.UUID) ([]AppointmentRequest, error) {
	return s.bulk(ctx, ids, s.Approve)
}

func (s *Service) BulkDecline(ctx context.Context, ids []uuid.UUID, reason string) ([]AppointmentRequest, error) {
	return s.bulk(ctx, ids, func(ctx context.Context, id uuid.UUID) (*AppointmentRequest, error) {
		return s.Decline(ctx, id, reason)
	})
}

func (s *Service) bulk(ctx context.Context, ids []uuid.UUID, op func(context.Context, uuid.UUID) (*AppointmentRequest, error)) ([]AppointmentRequest, error) {
	var updated []AppointmentRequest
	for _, id := range ids {
		appt, err := op(ctx, id)
		if err != nil {
			if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrTerminalStatus) {
				continue
			}
			return updated, err
		}
		updated = append(updated, *appt)
	}
	return updated, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, mutate func(*AppointmentRequest), typ notification.Type, message func(*AppointmentRequest) string) (*AppointmentRequest, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}

	mutate(appt)

	ok, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if !ok {
		// Record vanished between read and write; treat as not found.
		return nil, ErrAppointmentNotFound
	}

	s.metrics.ObserveTransition(string(appt.Status))
	s.notify(ctx, typ, message(appt), string(appt.Priority))

	return appt, nil
}

// notify appends to the feed best-effort; a feed failure never fails the
// transition that caused it.
func (s *Service) notify(ctx context.Context, typ notification.Type, message, priority string) {
	item := notification.New(typ, message, priority, s.now())
	if err := s.feed.Append(ctx, item); err != nil {
		s.logger.Warn().Err(err).Str("type", string(typ)).Msg("notification append failed")
	}
}
