package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// anyArgs builds n pgxmock.AnyArg matchers: pgxmock requires the expected
// argument count to match, so this keeps "don't check argument values" intact.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func appointmentRow(id, doctorID uuid.UUID, created time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "patient_name", "patient_phone", "patient_email",
		"doctor_id", "doctor_name", "date", "start_time", "duration_minutes",
		"type", "status", "priority", "symptoms", "source",
		"created_at", "approved_at", "decline_reason",
		"original_date", "original_time", "reschedule_requested",
	}).AddRow(
		id, "Nguyễn Văn A", "0912345678", nil,
		doctorID, "BS. Trần B", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "09:00", 30,
		TypeConsultation, StatusPending, PriorityMedium, "đau đầu", SourceOnline,
		created, nil, nil,
		nil, nil, false,
	)
}

func TestPgGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPgRepositoryWithDB(mock)
	id := uuid.New()
	doctorID := uuid.New()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM appointment_requests").WithArgs(id).
		WillReturnRows(appointmentRow(id, doctorID, created))

	appt, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if appt.Date.String() != "2025-06-02" {
		t.Errorf("date = %s", appt.Date)
	}
	if appt.StartTime.String() != "09:00" {
		t.Errorf("start time = %s", appt.StartTime)
	}
	if appt.Status != StatusPending {
		t.Errorf("status = %s", appt.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPgGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPgRepositoryWithDB(mock)
	id := uuid.New()

	mock.ExpectQuery("FROM appointment_requests").WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
	}
}

func TestPgCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPgRepositoryWithDB(mock)
	appt := seedAppointment(t, uuid.New(), "2025-06-02", "09:00", 30, StatusPending)

	mock.ExpectExec("INSERT INTO appointment_requests").
		WithArgs(anyArgs(20)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), &appt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPgUpdateReportsMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPgRepositoryWithDB(mock)
	appt := seedAppointment(t, uuid.New(), "2025-06-02", "09:00", 30, StatusApproved)

	mock.ExpectExec("UPDATE appointment_requests").
		WithArgs(anyArgs(11)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.Update(context.Background(), &appt)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing row")
	}
}

func TestPgDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPgRepositoryWithDB(mock)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM appointment_requests").WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	ok, err := repo.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Error("expected ok=true")
	}
}

func TestPgListScansRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPgRepositoryWithDB(mock)
	doctorID := uuid.New()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := appointmentRow(uuid.New(), doctorID, created).AddRow(
		uuid.New(), "Trần Thị C", "0351112222", nil,
		doctorID, "BS. Trần B", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "10:30", 30,
		TypeFollowUp, StatusApproved, PriorityHigh, "tái khám", SourceWalkIn,
		created.Add(time.Minute), nil, nil,
		nil, nil, false,
	)
	mock.ExpectQuery("FROM appointment_requests").WithArgs(anyArgs(4)...).WillReturnRows(rows)

	list, err := repo.List(context.Background(), Filter{DoctorID: doctorID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[1].StartTime.String() != "10:30" {
		t.Errorf("second row start = %s", list[1].StartTime)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
