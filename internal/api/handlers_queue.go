package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/queue"
)

func queueBoardHandler(coord *queue.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := coord.Board()

		out := make([]QueueItemResponse, 0, len(board))
		for i := range board {
			out = append(out, toQueueItemResponse(&board[i], coord.EstimateWait(board[i].Position)))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func addQueueItemHandler(coord *queue.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddQueueItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
			return
		}
		scheduled, err := booking.ParseClock(req.ScheduledTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_scheduled_time", "scheduled_time must be HH:MM")
			return
		}
		if req.PatientName == "" {
			writeError(w, http.StatusBadRequest, "missing_patient", "patient_name is required")
			return
		}

		var apptID *uuid.UUID
		if req.AppointmentID != nil {
			id, err := uuid.Parse(*req.AppointmentID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_appointment_id", "appointment_id must be a valid UUID")
				return
			}
			apptID = &id
		}

		item := coord.Add(r.Context(), queue.AddItem{
			AppointmentID: apptID,
			PatientName:   req.PatientName,
			PatientPhone:  req.PatientPhone,
			DoctorID:      doctorID,
			DoctorName:    req.DoctorName,
			ScheduledTime: scheduled,
			Priority:      booking.Priority(req.Priority),
			Type:          booking.AppointmentType(req.Type),
			EstimatedMins: req.EstimatedMins,
		})

		writeJSON(w, http.StatusCreated, toQueueItemResponse(item, coord.EstimateWait(item.Position)))
	}
}

func queueTransitionHandler(coord *queue.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req QueueStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		item, err := coord.Transition(r.Context(), id, queue.Status(req.Status))
		if err != nil {
			handleQueueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toQueueItemResponse(item, coord.EstimateWait(item.Position)))
	}
}

func queueMoveHandler(coord *queue.Coordinator, up bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var err error
		if up {
			err = coord.MoveUp(r.Context(), id)
		} else {
			err = coord.MoveDown(r.Context(), id)
		}
		if err != nil {
			handleQueueError(w, err)
			return
		}

		item, err := coord.Get(id)
		if err != nil {
			handleQueueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toQueueItemResponse(item, coord.EstimateWait(item.Position)))
	}
}

func removeQueueItemHandler(coord *queue.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := coord.Remove(r.Context(), id); err != nil {
			handleQueueError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleQueueError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, queue.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "queue_item_not_found", err.Error())
	case errors.Is(err, queue.ErrTerminalStatus):
		writeError(w, http.StatusConflict, "terminal_status", err.Error())
	case errors.Is(err, queue.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
