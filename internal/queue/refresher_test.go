package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/carelink/hospital-booking/internal/booking"
)

func TestRefresherSetsCallTimes(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	first := addPatient(t, coord, "Nguyễn Văn A", booking.PriorityMedium)
	second := addPatient(t, coord, "Trần Thị C", booking.PriorityMedium)
	advance(t, coord, first.ID, StatusWaiting)
	advance(t, coord, second.ID, StatusWaiting)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := NewRefresher(coord, 20*time.Millisecond, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		item, err := coord.Get(second.ID)
		return err == nil && item.EstimatedCallTime != nil
	}, time.Second, 5*time.Millisecond, "call times never refreshed")

	item, err := coord.Get(second.ID)
	require.NoError(t, err)
	// Position 2 with a 15 minute average: called one slot after now.
	require.Equal(t, "09:15", item.EstimatedCallTime.String())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop on context cancel")
	}
}

func TestRefresherDefaultInterval(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	refresher := NewRefresher(coord, 0, zerolog.Nop())
	require.Equal(t, time.Minute, refresher.interval)
}
