package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	doctorIDs, err := seedDoctors(context.Background(), pool, 40)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, doctorIDs, 500); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d doctors", count)

	specialties := []string{
		"Nội tổng quát",
		"Tim mạch",
		"Da liễu",
		"Nhi",
		"Tai mũi họng",
		"Chấn thương chỉnh hình",
		"Thần kinh",
		"Sản phụ khoa",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := fmt.Sprintf("BS. %s", gofakeit.Name())
		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, specialty, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
		`, id, name, specialty)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("doctors seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, doctorIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d appointment requests", count)

	const batchSize = 100

	types := []booking.AppointmentType{
		booking.TypeConsultation, booking.TypeFollowUp, booking.TypeRoutine,
		booking.TypeSpecialist, booking.TypeEmergency,
	}
	priorities := []booking.Priority{
		booking.PriorityLow, booking.PriorityMedium, booking.PriorityHigh, booking.PriorityUrgent,
	}
	starts := []string{
		"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}

	today := booking.DateOf(time.Now())

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			doctor := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]
			date := today.AddDays(gofakeit.Number(0, 6))
			start := starts[gofakeit.Number(0, len(starts)-1)]

			_, err := tx.Exec(ctx, `
				INSERT INTO appointment_requests (
					id, patient_name, patient_phone, patient_email,
					doctor_id, doctor_name, date, start_time, duration_minutes,
					type, status, priority, symptoms, source,
					created_at, reschedule_requested
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				        'pending', $11, $12, 'online', now(), false)
			`,
				uuid.New(),
				gofakeit.Name(),
				fmt.Sprintf("09%08d", gofakeit.Number(0, 99999999)),
				gofakeit.Email(),
				doctor,
				fmt.Sprintf("BS. %s", gofakeit.Name()),
				date.Time,
				start,
				30,
				types[gofakeit.Number(0, len(types)-1)],
				priorities[gofakeit.Number(0, len(priorities)-1)],
				gofakeit.Sentence(8),
			)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("appointment requests seeded: %d/%d", end, count)
	}

	log.Println("appointment requests seeded")
	return nil
}
