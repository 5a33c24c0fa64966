package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/notification"
	"github.com/carelink/hospital-booking/internal/observability/metrics"
)

var testNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func newTestCoordinator(t *testing.T) (*Coordinator, *notification.MemoryFeed) {
	t.Helper()
	feed := notification.NewMemoryFeed()
	coord := NewCoordinator(feed, metrics.New(prometheus.NewRegistry()), zerolog.Nop(), 15)
	coord.WithClock(func() time.Time { return testNow })
	return coord, feed
}

func addPatient(t *testing.T, coord *Coordinator, name string, priority booking.Priority) *Item {
	t.Helper()
	return coord.Add(context.Background(), AddItem{
		PatientName:  name,
		PatientPhone: "0912345678",
		DoctorID:     uuid.New(),
		DoctorName:   "BS. Trần B",
		Priority:     priority,
	})
}

// advance walks an item through the transitions needed to reach the target.
func advance(t *testing.T, coord *Coordinator, id uuid.UUID, to Status) *Item {
	t.Helper()
	path := map[Status][]Status{
		StatusArrived:        {StatusArrived},
		StatusWaiting:        {StatusArrived, StatusWaiting},
		StatusInConsultation: {StatusArrived, StatusWaiting, StatusInConsultation},
		StatusCompleted:      {StatusArrived, StatusWaiting, StatusInConsultation, StatusCompleted},
		StatusNoShow:         {StatusNoShow},
	}
	var item *Item
	for _, step := range path[to] {
		var err error
		item, err = coord.Transition(context.Background(), id, step)
		if err != nil {
			t.Fatalf("transition to %s: %v", step, err)
		}
	}
	return item
}

func TestTransitionStampsCheckInOnce(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	item := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)

	arrived := advance(t, coord, item.ID, StatusArrived)
	if arrived.CheckInTime == nil || arrived.CheckInTime.String() != "09:00" {
		t.Fatalf("check-in = %v, want 09:00", arrived.CheckInTime)
	}
}

func TestTransitionAssignsPositionOnWaiting(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	first := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)
	second := addPatient(t, coord, "Trần Thị C", booking.PriorityMedium)

	w1 := advance(t, coord, first.ID, StatusWaiting)
	w2 := advance(t, coord, second.ID, StatusWaiting)

	if w1.Position != 1 || w2.Position != 2 {
		t.Errorf("positions = %d, %d, want 1, 2", w1.Position, w2.Position)
	}
}

func TestTransitionRejectsIllegalAndTerminal(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	item := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)

	// scheduled cannot jump straight into consultation.
	if _, err := coord.Transition(context.Background(), item.ID, StatusInConsultation); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}

	advance(t, coord, item.ID, StatusCompleted)
	if _, err := coord.Transition(context.Background(), item.ID, StatusArrived); !errors.Is(err, ErrTerminalStatus) {
		t.Errorf("err = %v, want ErrTerminalStatus", err)
	}
}

func TestNoShowAllowedFromEarlyStatuses(t *testing.T) {
	for _, from := range []Status{StatusScheduled, StatusArrived, StatusWaiting} {
		if !from.CanTransitionTo(StatusNoShow) {
			t.Errorf("%s -> no_show should be legal", from)
		}
	}
	if StatusInConsultation.CanTransitionTo(StatusNoShow) {
		t.Error("in_consultation -> no_show should be illegal")
	}
}

func TestCompletedStampsCheckOut(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	item := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)

	done := advance(t, coord, item.ID, StatusCompleted)
	if done.CheckOutTime == nil || done.CheckOutTime.String() != "09:00" {
		t.Errorf("check-out = %v", done.CheckOutTime)
	}
}

func TestMoveUpSwapsAndRenumbers(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	first := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)
	second := addPatient(t, coord, "Trần Thị C", booking.PriorityMedium)
	advance(t, coord, first.ID, StatusWaiting)
	advance(t, coord, second.ID, StatusWaiting)

	if err := coord.MoveUp(context.Background(), second.ID); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}

	a, _ := coord.Get(second.ID)
	b, _ := coord.Get(first.ID)
	if a.Position != 1 || b.Position != 2 {
		t.Errorf("positions = %d, %d after move, want 1, 2", a.Position, b.Position)
	}

	// Moving the first item up is a silent no-op.
	if err := coord.MoveUp(context.Background(), second.ID); err != nil {
		t.Fatalf("MoveUp at top: %v", err)
	}
	a, _ = coord.Get(second.ID)
	if a.Position != 1 {
		t.Errorf("position changed on boundary move: %d", a.Position)
	}
}

func TestMoveUnknownItem(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	if err := coord.MoveUp(context.Background(), uuid.New()); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestRemoveClosesPositionGap(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	first := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)
	second := addPatient(t, coord, "Trần Thị C", booking.PriorityMedium)
	third := addPatient(t, coord, "Lê Văn D", booking.PriorityMedium)
	advance(t, coord, first.ID, StatusWaiting)
	advance(t, coord, second.ID, StatusWaiting)
	advance(t, coord, third.ID, StatusWaiting)

	if err := coord.Remove(context.Background(), second.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	remaining, _ := coord.Get(third.ID)
	if remaining.Position != 2 {
		t.Errorf("position = %d after removal, want 2", remaining.Position)
	}
}

func TestBoardOrdering(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	scheduled := addPatient(t, coord, "Chưa đến", booking.PriorityMedium)
	waiting := addPatient(t, coord, "Đang chờ", booking.PriorityMedium)
	consulting := addPatient(t, coord, "Đang khám", booking.PriorityLow)
	advance(t, coord, waiting.ID, StatusWaiting)
	advance(t, coord, consulting.ID, StatusInConsultation)

	board := coord.Board()
	if len(board) != 3 {
		t.Fatalf("board size = %d", len(board))
	}
	if board[0].ID != consulting.ID {
		t.Errorf("in_consultation not first: %s", board[0].PatientName)
	}
	if board[1].ID != waiting.ID {
		t.Errorf("waiting not second: %s", board[1].PatientName)
	}
	if board[2].ID != scheduled.ID {
		t.Errorf("scheduled not last: %s", board[2].PatientName)
	}
}

func TestBoardTiesBreakOnPriority(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	low := addPatient(t, coord, "Thường", booking.PriorityLow)
	urgent := addPatient(t, coord, "Khẩn cấp", booking.PriorityUrgent)

	board := coord.Board()
	if board[0].ID != urgent.ID {
		t.Errorf("urgent not ahead of low within same bucket")
	}
	_ = low
}

func TestRefreshBoardEstimatesCallTimes(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	first := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)
	second := addPatient(t, coord, "Trần Thị C", booking.PriorityMedium)
	advance(t, coord, first.ID, StatusWaiting)
	advance(t, coord, second.ID, StatusWaiting)

	coord.RefreshBoard(context.Background())

	a, _ := coord.Get(first.ID)
	b, _ := coord.Get(second.ID)
	if a.EstimatedCallTime == nil || a.EstimatedCallTime.String() != "09:00" {
		t.Errorf("first call time = %v, want 09:00", a.EstimatedCallTime)
	}
	if b.EstimatedCallTime == nil || b.EstimatedCallTime.String() != "09:15" {
		t.Errorf("second call time = %v, want 09:15", b.EstimatedCallTime)
	}
}

func TestEstimateWait(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	if got := coord.EstimateWait(3); got != 45 {
		t.Errorf("EstimateWait(3) = %d, want 45", got)
	}
	if got := EstimateWait(2, 0); got != 2*DefaultAvgConsultMinutes {
		t.Errorf("EstimateWait fallback = %d", got)
	}
}

func TestElapsedWaitIgnoresDayBoundary(t *testing.T) {
	checkIn := booking.ClockTime{Minutes: 23*60 + 50}
	now := time.Date(2025, 6, 3, 0, 10, 0, 0, time.UTC)
	if got := ElapsedWait(checkIn, now); got != -1420 {
		t.Errorf("ElapsedWait across midnight = %d, want -1420", got)
	}
}

func TestTransitionEmitsOneNotification(t *testing.T) {
	coord, feed := newTestCoordinator(t)
	item := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)

	before, _ := feed.List(context.Background())
	advance(t, coord, item.ID, StatusArrived)
	after, _ := feed.List(context.Background())

	if len(after) != len(before)+1 {
		t.Fatalf("notifications went %d -> %d, want +1", len(before), len(after))
	}
	if after[0].Type != notification.TypeQueueUpdate {
		t.Errorf("type = %s", after[0].Type)
	}
	if after[0].Message != "Bệnh nhân Nguyễn Văn A: Đã đến" {
		t.Errorf("message = %q", after[0].Message)
	}
}
