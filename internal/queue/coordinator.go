package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/notification"
	"github.com/carelink/hospital-booking/internal/observability/metrics"
)

var (
	ErrItemNotFound      = errors.New("queue item not found")
	ErrInvalidTransition = errors.New("invalid queue status transition")
	ErrTerminalStatus    = errors.New("queue item is in a terminal status")
)

const DefaultAvgConsultMinutes = 30

// Coordinator maintains the ordered same-day patient queue. The underlying
// slice order is the manual ordering; the display order is derived per call.
type Coordinator struct {
	mu      sync.RWMutex
	items   []*Item
	feed    notification.Feed
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
	avgMins int
}

func NewCoordinator(feed notification.Feed, m *metrics.Metrics, logger zerolog.Logger, avgConsultMinutes int) *Coordinator {
	if avgConsultMinutes <= 0 {
		avgConsultMinutes = DefaultAvgConsultMinutes
	}
	return &Coordinator{
		feed:    feed,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		avgMins: avgConsultMinutes,
	}
}

// WithClock overrides the wall clock, used by tests.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// AddItem describes a patient entering the queue, either from an approved
// appointment or as a walk-in.
type AddItem struct {
	AppointmentID *uuid.UUID
	PatientName   string
	PatientPhone  string
	DoctorID      uuid.UUID
	DoctorName    string
	ScheduledTime booking.ClockTime
	Priority      booking.Priority
	Type          booking.AppointmentType
	EstimatedMins int
}

func (c *Coordinator) Add(ctx context.Context, add AddItem) *Item {
	if add.EstimatedMins <= 0 {
		add.EstimatedMins = c.avgMins
	}
	if add.Priority == "" {
		add.Priority = booking.PriorityMedium
	}
	if add.Type == "" {
		add.Type = booking.TypeConsultation
	}

	item := &Item{
		ID:            uuid.New(),
		AppointmentID: add.AppointmentID,
		PatientName:   add.PatientName,
		PatientPhone:  add.PatientPhone,
		DoctorID:      add.DoctorID,
		DoctorName:    add.DoctorName,
		ScheduledTime: add.ScheduledTime,
		Status:        StatusScheduled,
		Priority:      add.Priority,
		Type:          add.Type,
		EstimatedMins: add.EstimatedMins,
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	snapshot := *item
	c.mu.Unlock()

	c.notify(ctx, fmt.Sprintf("Bệnh nhân %s vào hàng chờ của %s", item.PatientName, item.DoctorName), string(item.Priority))
	return &snapshot
}

// Transition moves an item to a new status, applying the stamping side
// effects and emitting exactly one notification.
func (c *Coordinator) Transition(ctx context.Context, id uuid.UUID, to Status) (*Item, error) {
	if !to.Valid() {
		return nil, ErrInvalidTransition
	}

	c.mu.Lock()
	item := c.find(id)
	if item == nil {
		c.mu.Unlock()
		return nil, ErrItemNotFound
	}
	if item.Status.IsTerminal() {
		c.mu.Unlock()
		return nil, ErrTerminalStatus
	}
	if !item.Status.CanTransitionTo(to) {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, to)
	}

	now := booking.ClockOf(c.now())

	switch to {
	case StatusArrived:
		if item.CheckInTime == nil {
			stamp := now
			item.CheckInTime = &stamp
		}
	case StatusWaiting:
		if item.Position == 0 {
			item.Position = c.countActiveExceptLocked(item.ID) + 1
		}
	case StatusCompleted:
		stamp := now
		item.CheckOutTime = &stamp
	}

	item.Status = to
	snapshot := *item
	c.mu.Unlock()

	c.metrics.ObserveQueueTransition(string(to))
	c.notify(ctx, fmt.Sprintf("Bệnh nhân %s: %s", snapshot.PatientName, StatusLabel(to)), string(snapshot.Priority))

	return &snapshot, nil
}

// MoveUp swaps the item with its earlier neighbour in the underlying order,
// then renumbers positions densely over the waiting/arrived subset. Moving
// the first item is a no-op.
func (c *Coordinator) MoveUp(ctx context.Context, id uuid.UUID) error {
	return c.move(ctx, id, -1)
}

// MoveDown is the mirror of MoveUp; moving the last item is a no-op.
func (c *Coordinator) MoveDown(ctx context.Context, id uuid.UUID) error {
	return c.move(ctx, id, +1)
}

func (c *Coordinator) move(ctx context.Context, id uuid.UUID, dir int) error {
	c.mu.Lock()

	idx := -1
	for i := range c.items {
		if c.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return ErrItemNotFound
	}

	j := idx + dir
	if j < 0 || j >= len(c.items) {
		c.mu.Unlock()
		return nil
	}

	c.items[idx], c.items[j] = c.items[j], c.items[idx]
	c.renumberLocked()
	name := c.items[j].PatientName
	c.mu.Unlock()

	c.notify(ctx, fmt.Sprintf("Thứ tự hàng chờ thay đổi: %s", name), string(booking.PriorityMedium))
	return nil
}

func (c *Coordinator) Remove(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			name := c.items[i].PatientName
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.renumberLocked()
			c.mu.Unlock()
			c.notify(ctx, fmt.Sprintf("Bệnh nhân %s rời hàng chờ", name), string(booking.PriorityMedium))
			return nil
		}
	}
	c.mu.Unlock()
	return ErrItemNotFound
}

func (c *Coordinator) Get(id uuid.UUID) (*Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item := c.find(id)
	if item == nil {
		return nil, ErrItemNotFound
	}
	snapshot := *item
	return &snapshot, nil
}

// Board returns the display ordering: status bucket, then queue position when
// both sides have one, then urgency. Wait minutes are computed against now.
func (c *Coordinator) Board() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		snapshot := *item
		if snapshot.CheckInTime != nil {
			snapshot.WaitMinutes = ElapsedWait(*snapshot.CheckInTime, now)
		}
		out = append(out, snapshot)
	}

	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i].Status.displayBucket(), out[j].Status.displayBucket()
		if bi != bj {
			return bi < bj
		}
		if out[i].Position > 0 && out[j].Position > 0 && out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})

	return out
}

// RefreshBoard recomputes estimated call times for the active subset:
// now + (position-1) * average consultation time.
func (c *Coordinator) RefreshBoard(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := booking.ClockOf(c.now())
	for _, item := range c.items {
		if !item.Status.isActive() || item.Position == 0 {
			continue
		}
		call := now.Add((item.Position - 1) * c.avgMins)
		item.EstimatedCallTime = &call
	}
}

// EstimateWait is the linear wait model: position times the average
// consultation length. No per-doctor or priority adjustment.
func (c *Coordinator) EstimateWait(position int) int {
	return EstimateWait(position, c.avgMins)
}

func EstimateWait(position, avgConsultMinutes int) int {
	if avgConsultMinutes <= 0 {
		avgConsultMinutes = DefaultAvgConsultMinutes
	}
	return position * avgConsultMinutes
}

// ElapsedWait subtracts minute-of-day values. A check-in before midnight with
// now after it yields a negative value; the day boundary is not modeled.
func ElapsedWait(checkIn booking.ClockTime, now time.Time) int {
	return booking.ClockOf(now).Minutes - checkIn.Minutes
}

func (c *Coordinator) find(id uuid.UUID) *Item {
	for _, item := range c.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (c *Coordinator) countActiveExceptLocked(id uuid.UUID) int {
	n := 0
	for _, item := range c.items {
		if item.ID != id && item.Status.isActive() {
			n++
		}
	}
	return n
}

// renumberLocked reassigns 1..K over the waiting/arrived items in underlying
// order. Other items keep whatever position they had.
func (c *Coordinator) renumberLocked() {
	pos := 0
	for _, item := range c.items {
		if item.Status.isActive() {
			pos++
			item.Position = pos
		}
	}
}

func (c *Coordinator) notify(ctx context.Context, message, priority string) {
	item := notification.New(notification.TypeQueueUpdate, message, priority, c.now())
	if err := c.feed.Append(ctx, item); err != nil {
		c.logger.Warn().Err(err).Msg("queue notification append failed")
	}
}
