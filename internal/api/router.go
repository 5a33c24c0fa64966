package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-booking/internal/auth"
	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/directory"
	"github.com/carelink/hospital-booking/internal/notification"
	"github.com/carelink/hospital-booking/internal/queue"
)

type RouterConfig struct {
	Booking   *booking.Service
	Advisor   *booking.Advisor
	Queue     *queue.Coordinator
	Auth      *auth.Service
	Directory directory.Store
	Feed      notification.Feed
	PgPool    *pgxpool.Pool
	Redis     *redis.Client
	Logger    zerolog.Logger
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(cfg.Logger))

	// Health and metrics
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Login simulation
	r.Post("/auth/otp/request", requestOTPHandler(cfg.Auth))
	r.Post("/auth/otp/verify", verifyOTPHandler(cfg.Auth))

	// Hospital browsing
	r.Get("/hospitals", listHospitalsHandler(cfg.Directory))
	r.Get("/hospitals/{id}", getHospitalHandler(cfg.Directory))
	r.Get("/hospitals/{id}/doctors", listHospitalDoctorsHandler(cfg.Directory))
	r.Get("/hospitals/{id}/services", listHospitalServicesHandler(cfg.Directory))

	// Appointments and the scheduling advisor
	r.Post("/appointments", createAppointmentHandler(cfg.Booking))
	r.Get("/appointments", listAppointmentsHandler(cfg.Booking))
	r.Get("/appointments/conflicts", checkConflictsHandler(cfg.Advisor))
	r.Get("/appointments/suggestions", suggestSlotsHandler(cfg.Advisor))
	r.Post("/appointments/bulk/approve", bulkApproveHandler(cfg.Booking))
	r.Post("/appointments/bulk/decline", bulkDeclineHandler(cfg.Booking))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Booking))
	r.Post("/appointments/{id}/approve", approveAppointmentHandler(cfg.Booking))
	r.Post("/appointments/{id}/decline", declineAppointmentHandler(cfg.Booking))
	r.Post("/appointments/{id}/reschedule", rescheduleAppointmentHandler(cfg.Booking))
	r.Post("/appointments/{id}/status", setAppointmentStatusHandler(cfg.Booking))

	// Patient queue
	r.Get("/queue", queueBoardHandler(cfg.Queue))
	r.Post("/queue", addQueueItemHandler(cfg.Queue))
	r.Post("/queue/{id}/status", queueTransitionHandler(cfg.Queue))
	r.Post("/queue/{id}/move-up", queueMoveHandler(cfg.Queue, true))
	r.Post("/queue/{id}/move-down", queueMoveHandler(cfg.Queue, false))
	r.Delete("/queue/{id}", removeQueueItemHandler(cfg.Queue))

	// Notification feed
	r.Get("/notifications", listNotificationsHandler(cfg.Feed))
	r.Post("/notifications/read-all", markAllNotificationsReadHandler(cfg.Feed))
	r.Post("/notifications/{id}/read", markNotificationReadHandler(cfg.Feed))

	return r
}
