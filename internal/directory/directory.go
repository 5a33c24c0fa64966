// Package directory is the read-only hospital/doctor catalog backing the
// public browsing flow.
package directory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
)

type Hospital struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Specialties []string  `json:"specialties"`
	Rating      float64   `json:"rating"`
	Beds        int       `json:"beds"`
}

type Doctor struct {
	ID              uuid.UUID `json:"id"`
	HospitalID      uuid.UUID `json:"hospital_id"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	Specialty       string    `json:"specialty"`
	YearsExperience int       `json:"years_experience"`
}

// Service is a bookable medical service offered by a hospital. Prices are in
// thousand VND.
type Service struct {
	ID              uuid.UUID `json:"id"`
	HospitalID      uuid.UUID `json:"hospital_id"`
	Name            string    `json:"name"`
	Price           int       `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Query narrows hospital searches; zero-value fields are ignored.
type Query struct {
	Search    string
	City      string
	Specialty string
}

type Store interface {
	ListHospitals(ctx context.Context, q Query) ([]Hospital, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error)
	ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]Doctor, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error)
	ListServices(ctx context.Context, hospitalID uuid.UUID) ([]Service, error)
}

// MemoryStore serves a fixed catalog loaded at startup.
type MemoryStore struct {
	mu        sync.RWMutex
	hospitals []Hospital
	doctors   []Doctor
	services  []Service
}

func NewMemoryStore(hospitals []Hospital, doctors []Doctor, services []Service) *MemoryStore {
	return &MemoryStore{hospitals: hospitals, doctors: doctors, services: services}
}

func (s *MemoryStore) ListHospitals(ctx context.Context, q Query) ([]Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Hospital
	for _, h := range s.hospitals {
		if q.City != "" && !strings.EqualFold(h.City, q.City) {
			continue
		}
		if q.Specialty != "" && !hasSpecialty(h.Specialties, q.Specialty) {
			continue
		}
		if q.Search != "" && !hospitalMatches(h, q.Search) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *MemoryStore) GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.hospitals {
		if s.hospitals[i].ID == id {
			h := s.hospitals[i]
			return &h, nil
		}
	}
	return nil, ErrHospitalNotFound
}

func (s *MemoryStore) ListDoctors(ctx context.Context, hospitalID uuid.UUID) ([]Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Doctor
	for _, d := range s.doctors {
		if hospitalID == uuid.Nil || d.HospitalID == hospitalID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.doctors {
		if s.doctors[i].ID == id {
			d := s.doctors[i]
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (s *MemoryStore) ListServices(ctx context.Context, hospitalID uuid.UUID) ([]Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Service
	for _, svc := range s.services {
		if hospitalID == uuid.Nil || svc.HospitalID == hospitalID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func hasSpecialty(specialties []string, want string) bool {
	for _, s := range specialties {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

func hospitalMatches(h Hospital, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(h.Name), q) ||
		strings.Contains(strings.ToLower(h.City), q) {
		return true
	}
	for _, s := range h.Specialties {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
