package fixtures

import (
	"testing"

	"github.com/carelink/hospital-booking/internal/booking"
)

func TestBuildShape(t *testing.T) {
	today, _ := booking.ParseDate("2025-06-02")
	demo := Build(today)

	if len(demo.Hospitals) != 6 {
		t.Errorf("hospitals = %d, want 6", len(demo.Hospitals))
	}
	if len(demo.Doctors) != 24 {
		t.Errorf("doctors = %d, want 24", len(demo.Doctors))
	}
	if len(demo.Services) != 6*len(serviceCatalog) {
		t.Errorf("services = %d, want %d", len(demo.Services), 6*len(serviceCatalog))
	}
	if len(demo.Appointments) != 4 {
		t.Errorf("appointments = %d, want 4", len(demo.Appointments))
	}
	if len(demo.Queue) != 2 {
		t.Errorf("queue seeds = %d, want 2", len(demo.Queue))
	}

	for _, a := range demo.Appointments {
		if a.Status != booking.StatusPending {
			t.Errorf("seed appointment %s status = %s, want pending", a.ID, a.Status)
		}
		if !a.Date.Equal(today) {
			t.Errorf("seed appointment %s date = %s", a.ID, a.Date)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	today, _ := booking.ParseDate("2025-06-02")
	a := Build(today)
	b := Build(today)

	for i := range a.Hospitals {
		if a.Hospitals[i].Name != b.Hospitals[i].Name || a.Hospitals[i].City != b.Hospitals[i].City {
			t.Fatalf("hospital %d differs between runs: %q vs %q", i, a.Hospitals[i].Name, b.Hospitals[i].Name)
		}
	}
	for i := range a.Doctors {
		if a.Doctors[i].Name != b.Doctors[i].Name {
			t.Fatalf("doctor %d differs between runs", i)
		}
	}
}
