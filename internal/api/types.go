package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/queue"
)

type RequestOTPRequest struct {
	Phone string `json:"phone"`
}

type RequestOTPResponse struct {
	Sent bool `json:"sent"`
	// DemoCode is filled only in demo mode so the flow can be exercised
	// without SMS delivery.
	DemoCode string `json:"demo_code,omitempty"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type VerifyOTPResponse struct {
	Token string `json:"token"`
}

type CreateAppointmentRequest struct {
	PatientName     string  `json:"patient_name"`
	PatientPhone    string  `json:"patient_phone"`
	PatientEmail    *string `json:"patient_email,omitempty"`
	DoctorID        string  `json:"doctor_id"`
	DoctorName      string  `json:"doctor_name"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Type            string  `json:"type"`
	Priority        string  `json:"priority"`
	Symptoms        string  `json:"symptoms"`
	Source          string  `json:"source"`
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type BulkRequest struct {
	IDs    []string `json:"ids"`
	Reason string   `json:"reason,omitempty"`
}

type AppointmentResponse struct {
	ID                  uuid.UUID          `json:"id"`
	PatientName         string             `json:"patient_name"`
	PatientPhone        string             `json:"patient_phone"`
	PatientEmail        *string            `json:"patient_email,omitempty"`
	DoctorID            uuid.UUID          `json:"doctor_id"`
	DoctorName          string             `json:"doctor_name"`
	Date                booking.Date       `json:"date"`
	StartTime           booking.ClockTime  `json:"start_time"`
	DurationMinutes     int                `json:"duration_minutes"`
	Type                string             `json:"type"`
	Status              string             `json:"status"`
	Priority            string             `json:"priority"`
	Symptoms            string             `json:"symptoms,omitempty"`
	Source              string             `json:"source"`
	CreatedAt           time.Time          `json:"created_at"`
	ApprovedAt          *time.Time         `json:"approved_at,omitempty"`
	DeclineReason       *string            `json:"decline_reason,omitempty"`
	OriginalDate        *booking.Date      `json:"original_date,omitempty"`
	OriginalTime        *booking.ClockTime `json:"original_time,omitempty"`
	RescheduleRequested bool               `json:"reschedule_requested,omitempty"`
}

func toAppointmentResponse(a *booking.AppointmentRequest) AppointmentResponse {
	return AppointmentResponse{
		ID:                  a.ID,
		PatientName:         a.PatientName,
		PatientPhone:        a.PatientPhone,
		PatientEmail:        a.PatientEmail,
		DoctorID:            a.DoctorID,
		DoctorName:          a.DoctorName,
		Date:                a.Date,
		StartTime:           a.StartTime,
		DurationMinutes:     a.DurationMinutes,
		Type:                string(a.Type),
		Status:              string(a.Status),
		Priority:            string(a.Priority),
		Symptoms:            a.Symptoms,
		Source:              string(a.Source),
		CreatedAt:           a.CreatedAt,
		ApprovedAt:          a.ApprovedAt,
		DeclineReason:       a.DeclineReason,
		OriginalDate:        a.OriginalDate,
		OriginalTime:        a.OriginalTime,
		RescheduleRequested: a.RescheduleRequested,
	}
}

func toAppointmentResponses(appts []booking.AppointmentRequest) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i]))
	}
	return out
}

type AddQueueItemRequest struct {
	AppointmentID *string `json:"appointment_id,omitempty"`
	PatientName   string  `json:"patient_name"`
	PatientPhone  string  `json:"patient_phone"`
	DoctorID      string  `json:"doctor_id"`
	DoctorName    string  `json:"doctor_name"`
	ScheduledTime string  `json:"scheduled_time"`
	Priority      string  `json:"priority"`
	Type          string  `json:"type"`
	EstimatedMins int     `json:"estimated_minutes"`
}

type QueueStatusRequest struct {
	Status string `json:"status"`
}

type QueueItemResponse struct {
	ID                uuid.UUID          `json:"id"`
	AppointmentID     *uuid.UUID         `json:"appointment_id,omitempty"`
	PatientName       string             `json:"patient_name"`
	PatientPhone      string             `json:"patient_phone,omitempty"`
	DoctorID          uuid.UUID          `json:"doctor_id"`
	DoctorName        string             `json:"doctor_name"`
	ScheduledTime     booking.ClockTime  `json:"scheduled_time"`
	CheckInTime       *booking.ClockTime `json:"check_in_time,omitempty"`
	CheckOutTime      *booking.ClockTime `json:"check_out_time,omitempty"`
	Status            string             `json:"status"`
	Priority          string             `json:"priority"`
	Type              string             `json:"type"`
	EstimatedMins     int                `json:"estimated_minutes"`
	Position          int                `json:"position,omitempty"`
	EstimatedCallTime *booking.ClockTime `json:"estimated_call_time,omitempty"`
	WaitMinutes       int                `json:"wait_minutes"`
	EstimatedWait     int                `json:"estimated_wait_minutes"`
}

func toQueueItemResponse(item *queue.Item, estimatedWait int) QueueItemResponse {
	return QueueItemResponse{
		ID:                item.ID,
		AppointmentID:     item.AppointmentID,
		PatientName:       item.PatientName,
		PatientPhone:      item.PatientPhone,
		DoctorID:          item.DoctorID,
		DoctorName:        item.DoctorName,
		ScheduledTime:     item.ScheduledTime,
		CheckInTime:       item.CheckInTime,
		CheckOutTime:      item.CheckOutTime,
		Status:            string(item.Status),
		Priority:          string(item.Priority),
		Type:              string(item.Type),
		EstimatedMins:     item.EstimatedMins,
		Position:          item.Position,
		EstimatedCallTime: item.EstimatedCallTime,
		WaitMinutes:       item.WaitMinutes,
		EstimatedWait:     estimatedWait,
	}
}
