package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carelink/hospital-booking/internal/auth"
)

func requestOTPHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RequestOTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		code, err := svc.RequestCode(r.Context(), req.Phone)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RequestOTPResponse{Sent: true, DemoCode: code})
	}
}

func verifyOTPHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyOTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		token, err := svc.Verify(r.Context(), req.Phone, req.Code)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, VerifyOTPResponse{Token: token})
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidPhone):
		writeError(w, http.StatusBadRequest, "invalid_phone", err.Error())
	case errors.Is(err, auth.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "invalid_code", err.Error())
	case errors.Is(err, auth.ErrIncorrectCode):
		writeError(w, http.StatusUnauthorized, "incorrect_code", err.Error())
	case errors.Is(err, auth.ErrCodeExpired):
		writeError(w, http.StatusUnauthorized, "code_expired", err.Error())
	case errors.Is(err, auth.ErrResendCooldown):
		writeError(w, http.StatusTooManyRequests, "resend_cooldown", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
