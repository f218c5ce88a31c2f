package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"credauth/internal/domain"
	"credauth/internal/dto"
	"credauth/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func handleLogin(auth service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
			return
		}
		if err := dto.ValidateLogin(req); err != nil {
			writeError(w, err)
			return
		}
		res, err := auth.Login(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func handleRequestOtp(auth service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.OtpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
			return
		}
		if err := dto.ValidateOtpRequest(req); err != nil {
			writeError(w, err)
			return
		}
		res, err := auth.RequestOtp(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func handleRecoverPassword(auth service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PasswordRecoveryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
			return
		}
		if err := dto.ValidateRecovery(req); err != nil {
			writeError(w, err)
			return
		}
		updated, err := auth.RecoverPassword(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.PasswordRecoveryResponse{Updated: updated})
	}
}

func handleVerifyToken(tokens service.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.VerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
			return
		}
		subject, err := tokens.Verify(r.Context(), req.Token)
		if err != nil {
			writeJSON(w, statusFor(err), dto.VerifyResponse{Valid: false})
			return
		}
		writeJSON(w, http.StatusOK, dto.VerifyResponse{Valid: true, Subject: subject})
	}
}

// writeError maps the closed error taxonomy onto stable responses.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	var extErr *domain.ExternalServiceError
	if errors.As(err, &extErr) {
		if extErr.Transient {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIncorrectPassword):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrOtpNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOtpMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOtpExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrTokenBadSignature),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
