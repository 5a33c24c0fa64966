// Package fixtures builds the deterministic demo dataset served when no
// Postgres backend is configured.
package fixtures

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/directory"
	"github.com/carelink/hospital-booking/internal/queue"
)

var specialties = []string{
	"Nội tổng quát",
	"Tim mạch",
	"Da liễu",
	"Nhi",
	"Tai mũi họng",
	"Chấn thương chỉnh hình",
	"Thần kinh",
	"Sản phụ khoa",
}

var cities = []string{"Hà Nội", "Hồ Chí Minh", "Đà Nẵng", "Cần Thơ"}

// Demo services offered by every hospital; prices in thousand VND.
var serviceCatalog = []struct {
	name     string
	price    int
	duration int
}{
	{"Khám tổng quát", 300, 30},
	{"Khám chuyên khoa", 500, 30},
	{"Xét nghiệm máu", 250, 15},
	{"Siêu âm tổng quát", 400, 20},
	{"Chụp X-quang", 350, 15},
}

type Demo struct {
	Hospitals    []directory.Hospital
	Doctors      []directory.Doctor
	Services     []directory.Service
	Appointments []booking.AppointmentRequest
	Queue        []queue.AddItem
}

// Build seeds gofakeit with a fixed value so every demo run serves the same
// catalog and the same pending bookings.
func Build(today booking.Date) Demo {
	gofakeit.Seed(42)

	var demo Demo

	for i := 0; i < 6; i++ {
		h := directory.Hospital{
			ID:      uuid.New(),
			Name:    fmt.Sprintf("Bệnh viện %s", gofakeit.LastName()),
			City:    cities[gofakeit.Number(0, len(cities)-1)],
			Address: gofakeit.Street(),
			Specialties: []string{
				specialties[gofakeit.Number(0, len(specialties)-1)],
				specialties[gofakeit.Number(0, len(specialties)-1)],
			},
			Rating: float64(gofakeit.Number(30, 50)) / 10,
			Beds:   gofakeit.Number(80, 600),
		}
		demo.Hospitals = append(demo.Hospitals, h)

		for j := 0; j < 4; j++ {
			demo.Doctors = append(demo.Doctors, directory.Doctor{
				ID:              uuid.New(),
				HospitalID:      h.ID,
				Name:            fmt.Sprintf("BS. %s", gofakeit.Name()),
				Title:           "Bác sĩ chuyên khoa",
				Specialty:       specialties[gofakeit.Number(0, len(specialties)-1)],
				YearsExperience: gofakeit.Number(3, 30),
			})
		}

		for _, svc := range serviceCatalog {
			demo.Services = append(demo.Services, directory.Service{
				ID:              uuid.New(),
				HospitalID:      h.ID,
				Name:            svc.name,
				Price:           svc.price,
				DurationMinutes: svc.duration,
			})
		}
	}

	// A handful of pending bookings spread over the morning so the approval
	// workflow and conflict checks have something to chew on.
	starts := []string{"08:00", "09:00", "09:30", "10:30"}
	for i, raw := range starts {
		start, _ := booking.ParseClock(raw)
		doctor := demo.Doctors[i%len(demo.Doctors)]
		demo.Appointments = append(demo.Appointments, booking.AppointmentRequest{
			ID:              uuid.New(),
			PatientName:     gofakeit.Name(),
			PatientPhone:    fmt.Sprintf("09%08d", gofakeit.Number(0, 99999999)),
			DoctorID:        doctor.ID,
			DoctorName:      doctor.Name,
			Date:            today,
			StartTime:       start,
			DurationMinutes: 30,
			Type:            booking.TypeConsultation,
			Status:          booking.StatusPending,
			Priority:        booking.PriorityMedium,
			Symptoms:        gofakeit.Sentence(6),
			Source:          booking.SourceOnline,
			CreatedAt:       time.Now(),
		})
	}

	// Two walk-ins so the queue board is not empty on first load.
	for i := 0; i < 2; i++ {
		doctor := demo.Doctors[i]
		scheduled, _ := booking.ParseClock(fmt.Sprintf("%02d:00", 8+i))
		demo.Queue = append(demo.Queue, queue.AddItem{
			PatientName:   gofakeit.Name(),
			PatientPhone:  fmt.Sprintf("09%08d", gofakeit.Number(0, 99999999)),
			DoctorID:      doctor.ID,
			DoctorName:    doctor.Name,
			ScheduledTime: scheduled,
			Priority:      booking.PriorityMedium,
			Type:          booking.TypeConsultation,
		})
	}

	return demo
}
