package api

import (
	"errors"
	"net/http"

	"github.com/carelink/hospital-booking/internal/directory"
)

func listHospitalsHandler(store directory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		hospitals, err := store.ListHospitals(r.Context(), directory.Query{
			Search:    q.Get("search"),
			City:      q.Get("city"),
			Specialty: q.Get("specialty"),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if hospitals == nil {
			hospitals = []directory.Hospital{}
		}

		writeJSON(w, http.StatusOK, hospitals)
	}
}

func getHospitalHandler(store directory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		hospital, err := store.GetHospital(r.Context(), id)
		if err != nil {
			if errors.Is(err, directory.ErrHospitalNotFound) {
				writeError(w, http.StatusNotFound, "hospital_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, hospital)
	}
}

func listHospitalDoctorsHandler(store directory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		doctors, err := store.ListDoctors(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if doctors == nil {
			doctors = []directory.Doctor{}
		}

		writeJSON(w, http.StatusOK, doctors)
	}
}

func listHospitalServicesHandler(store directory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		services, err := store.ListServices(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if services == nil {
			services = []directory.Service{}
		}

		writeJSON(w, http.StatusOK, services)
	}
}
