package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the booking, queue and OTP flows.
type Metrics struct {
	bookingsTotal    *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	queueTotal       *prometheus.CounterVec
	otpTotal         *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Booking requests created, by source",
		}, []string{"source"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Appointment status transitions, by target status",
		}, []string{"status"}),
		queueTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "queue",
			Name:      "transitions_total",
			Help:      "Queue item status transitions, by target status",
		}, []string{"status"}),
		otpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "auth",
			Name:      "otp_total",
			Help:      "OTP requests and verifications, by operation and outcome",
		}, []string{"op", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.transitionsTotal, m.queueTotal, m.otpTotal)
	return m
}

func (m *Metrics) ObserveBooking(source string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveQueueTransition(status string) {
	if m == nil {
		return
	}
	m.queueTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveOTP(op, outcome string) {
	if m == nil {
		return
	}
	m.otpTotal.WithLabelValues(op, outcome).Inc()
}
