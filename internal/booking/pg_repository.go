package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type dbPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgRepository struct {
	db dbPool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{db: pool}
}

// NewPgRepositoryWithDB injects any dbPool, used by tests.
func NewPgRepositoryWithDB(db dbPool) *PgRepository {
	return &PgRepository{db: db}
}

const appointmentColumns = `
	id, patient_name, patient_phone, patient_email,
	doctor_id, doctor_name, date, start_time, duration_minutes,
	type, status, priority, symptoms, source,
	created_at, approved_at, decline_reason,
	original_date, original_time, reschedule_requested`

func scanAppointment(row pgx.Row) (*AppointmentRequest, error) {
	var (
		a            AppointmentRequest
		date         time.Time
		startTime    string
		originalDate *time.Time
		originalTime *string
	)

	err := row.Scan(
		&a.ID,
		&a.PatientName,
		&a.PatientPhone,
		&a.PatientEmail,
		&a.DoctorID,
		&a.DoctorName,
		&date,
		&startTime,
		&a.DurationMinutes,
		&a.Type,
		&a.Status,
		&a.Priority,
		&a.Symptoms,
		&a.Source,
		&a.CreatedAt,
		&a.ApprovedAt,
		&a.DeclineReason,
		&originalDate,
		&originalTime,
		&a.RescheduleRequested,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Date = DateOf(date)
	start, err := ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	a.StartTime = start

	if originalDate != nil {
		d := DateOf(*originalDate)
		a.OriginalDate = &d
	}
	if originalTime != nil {
		c, err := ParseClock(*originalTime)
		if err != nil {
			return nil, err
		}
		a.OriginalTime = &c
	}

	return &a, nil
}

func (r *PgRepository) Create(ctx context.Context, appt *AppointmentRequest) error {
	var originalDate *time.Time
	if appt.OriginalDate != nil {
		originalDate = &appt.OriginalDate.Time
	}
	var originalTime *string
	if appt.OriginalTime != nil {
		s := appt.OriginalTime.String()
		originalTime = &s
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO appointment_requests (
			id, patient_name, patient_phone, patient_email,
			doctor_id, doctor_name, date, start_time, duration_minutes,
			type, status, priority, symptoms, source,
			created_at, approved_at, decline_reason,
			original_date, original_time, reschedule_requested
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`,
		appt.ID, appt.PatientName, appt.PatientPhone, appt.PatientEmail,
		appt.DoctorID, appt.DoctorName, appt.Date.Time, appt.StartTime.String(), appt.DurationMinutes,
		appt.Type, appt.Status, appt.Priority, appt.Symptoms, appt.Source,
		appt.CreatedAt, appt.ApprovedAt, appt.DeclineReason,
		originalDate, originalTime, appt.RescheduleRequested,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentRequest, error) {
	row := r.db.QueryRow(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointment_requests
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) List(ctx context.Context, f Filter) ([]AppointmentRequest, error) {
	// Insertion order is approximated by created_at, id for a stable scan order.
	query := `
		SELECT` + appointmentColumns + `
		FROM appointment_requests
		WHERE ($1 = '' OR status = $1)
		  AND ($2::uuid IS NULL OR doctor_id = $2)
		  AND ($3::date IS NULL OR date = $3)
		  AND ($4 = '' OR patient_name ILIKE '%' || $4 || '%'
		       OR patient_phone LIKE '%' || $4 || '%'
		       OR symptoms ILIKE '%' || $4 || '%'
		       OR id::text ILIKE '%' || $4 || '%')
		ORDER BY created_at, id
	`

	var doctorID *uuid.UUID
	if f.DoctorID != uuid.Nil {
		doctorID = &f.DoctorID
	}
	var date *time.Time
	if f.Date != nil {
		date = &f.Date.Time
	}

	rows, err := r.db.Query(ctx, query, string(f.Status), doctorID, date, f.Search)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var result []AppointmentRequest
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Update(ctx context.Context, appt *AppointmentRequest) (bool, error) {
	var originalDate *time.Time
	if appt.OriginalDate != nil {
		originalDate = &appt.OriginalDate.Time
	}
	var originalTime *string
	if appt.OriginalTime != nil {
		s := appt.OriginalTime.String()
		originalTime = &s
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE appointment_requests
		SET date = $2,
		    start_time = $3,
		    duration_minutes = $4,
		    status = $5,
		    priority = $6,
		    approved_at = $7,
		    decline_reason = $8,
		    original_date = $9,
		    original_time = $10,
		    reschedule_requested = $11
		WHERE id = $1
	`,
		appt.ID, appt.Date.Time, appt.StartTime.String(), appt.DurationMinutes,
		appt.Status, appt.Priority, appt.ApprovedAt, appt.DeclineReason,
		originalDate, originalTime, appt.RescheduleRequested,
	)
	if err != nil {
		return false, fmt.Errorf("update appointment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM appointment_requests WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
