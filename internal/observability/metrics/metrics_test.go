package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveBooking("online")
	m.ObserveBooking("online")
	m.ObserveTransition("approved")
	m.ObserveQueueTransition("waiting")
	m.ObserveOTP("verify", "ok")

	if got := testutil.ToFloat64(m.bookingsTotal.WithLabelValues("online")); got != 2 {
		t.Errorf("bookings online = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.transitionsTotal.WithLabelValues("approved")); got != 1 {
		t.Errorf("transitions approved = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.queueTotal.WithLabelValues("waiting")); got != 1 {
		t.Errorf("queue waiting = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.otpTotal.WithLabelValues("verify", "ok")); got != 1 {
		t.Errorf("otp verify ok = %v, want 1", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveBooking("online")
	m.ObserveTransition("approved")
	m.ObserveQueueTransition("waiting")
	m.ObserveOTP("request", "ok")
}
