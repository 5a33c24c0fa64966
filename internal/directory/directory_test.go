package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testCatalog() ([]Hospital, []Doctor, []Service) {
	bachMai := Hospital{
		ID:          uuid.New(),
		Name:        "Bệnh viện Bạch Mai",
		City:        "Hà Nội",
		Specialties: []string{"Tim mạch", "Nội tổng quát"},
	}
	choRay := Hospital{
		ID:          uuid.New(),
		Name:        "Bệnh viện Chợ Rẫy",
		City:        "TP. Hồ Chí Minh",
		Specialties: []string{"Ngoại khoa"},
	}
	doctors := []Doctor{
		{ID: uuid.New(), HospitalID: bachMai.ID, Name: "BS. Nguyễn Văn A", Specialty: "Tim mạch"},
		{ID: uuid.New(), HospitalID: bachMai.ID, Name: "BS. Trần Thị B", Specialty: "Nội tổng quát"},
		{ID: uuid.New(), HospitalID: choRay.ID, Name: "BS. Lê Văn C", Specialty: "Ngoại khoa"},
	}
	services := []Service{
		{ID: uuid.New(), HospitalID: bachMai.ID, Name: "Khám tổng quát", Price: 300, DurationMinutes: 30},
		{ID: uuid.New(), HospitalID: choRay.ID, Name: "Xét nghiệm máu", Price: 250, DurationMinutes: 15},
	}
	return []Hospital{bachMai, choRay}, doctors, services
}

func TestListHospitalsFilters(t *testing.T) {
	hospitals, doctors, services := testCatalog()
	store := NewMemoryStore(hospitals, doctors, services)
	ctx := context.Background()

	all, err := store.ListHospitals(ctx, Query{})
	if err != nil {
		t.Fatalf("ListHospitals: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	byCity, _ := store.ListHospitals(ctx, Query{City: "hà nội"})
	if len(byCity) != 1 || byCity[0].ID != hospitals[0].ID {
		t.Errorf("city filter returned %d hospitals", len(byCity))
	}

	bySpecialty, _ := store.ListHospitals(ctx, Query{Specialty: "tim mạch"})
	if len(bySpecialty) != 1 || bySpecialty[0].ID != hospitals[0].ID {
		t.Errorf("specialty filter returned %d hospitals", len(bySpecialty))
	}

	bySearch, _ := store.ListHospitals(ctx, Query{Search: "chợ rẫy"})
	if len(bySearch) != 1 || bySearch[0].ID != hospitals[1].ID {
		t.Errorf("search returned %d hospitals", len(bySearch))
	}

	none, _ := store.ListHospitals(ctx, Query{City: "Đà Nẵng"})
	if len(none) != 0 {
		t.Errorf("unexpected city match: %d", len(none))
	}
}

func TestGetHospital(t *testing.T) {
	hospitals, doctors, services := testCatalog()
	store := NewMemoryStore(hospitals, doctors, services)
	ctx := context.Background()

	h, err := store.GetHospital(ctx, hospitals[0].ID)
	if err != nil {
		t.Fatalf("GetHospital: %v", err)
	}
	if h.Name != hospitals[0].Name {
		t.Errorf("name = %q", h.Name)
	}

	if _, err := store.GetHospital(ctx, uuid.New()); !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("err = %v, want ErrHospitalNotFound", err)
	}
}

func TestListDoctorsByHospital(t *testing.T) {
	hospitals, doctors, services := testCatalog()
	store := NewMemoryStore(hospitals, doctors, services)
	ctx := context.Background()

	list, err := store.ListDoctors(ctx, hospitals[0].ID)
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len = %d, want 2", len(list))
	}

	all, _ := store.ListDoctors(ctx, uuid.Nil)
	if len(all) != 3 {
		t.Errorf("nil hospital should list all doctors, got %d", len(all))
	}
}

func TestListServicesByHospital(t *testing.T) {
	hospitals, doctors, services := testCatalog()
	store := NewMemoryStore(hospitals, doctors, services)
	ctx := context.Background()

	list, err := store.ListServices(ctx, hospitals[0].ID)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Khám tổng quát" {
		t.Errorf("services = %+v", list)
	}

	all, _ := store.ListServices(ctx, uuid.Nil)
	if len(all) != 2 {
		t.Errorf("nil hospital should list all services, got %d", len(all))
	}
}

func TestGetDoctor(t *testing.T) {
	hospitals, doctors, services := testCatalog()
	store := NewMemoryStore(hospitals, doctors, services)
	ctx := context.Background()

	d, err := store.GetDoctor(ctx, doctors[2].ID)
	if err != nil {
		t.Fatalf("GetDoctor: %v", err)
	}
	if d.Specialty != "Ngoại khoa" {
		t.Errorf("specialty = %q", d.Specialty)
	}

	if _, err := store.GetDoctor(ctx, uuid.New()); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("err = %v, want ErrDoctorNotFound", err)
	}
}
