package dto

import (
	"net/mail"
	"unicode"

	"credauth/internal/domain"
)

// Boundary validation. Each function returns a *domain.ValidationError
// describing the first offending field, or nil. Requests only reach
// the services after passing here.

func ValidateLogin(r LoginRequest) error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword("password", r.Password)
}

func ValidateOtpRequest(r OtpRequest) error {
	return validateEmail(r.Email)
}

func ValidateRecovery(r PasswordRecoveryRequest) error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validateOtpCode(r.Otp); err != nil {
		return err
	}
	return validatePassword("password", r.NewPassword)
}

func validateEmail(email string) error {
	if len(email) < 8 || len(email) > 50 {
		return &domain.ValidationError{Field: "email", Reason: "must be between 8 and 50 characters"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &domain.ValidationError{Field: "email", Reason: "must be a well-formed address"}
	}
	return nil
}

func validatePassword(field, password string) error {
	if len(password) < 8 || len(password) > 50 {
		return &domain.ValidationError{Field: field, Reason: "must be between 8 and 50 characters"}
	}
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasDigit || !hasUpper || !hasLower {
		return &domain.ValidationError{Field: field, Reason: "must contain a digit, an uppercase and a lowercase letter"}
	}
	return nil
}

func validateOtpCode(code string) error {
	if len(code) != 6 {
		return &domain.ValidationError{Field: "otp", Reason: "must be exactly 6 digits"}
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return &domain.ValidationError{Field: "otp", Reason: "must be exactly 6 digits"}
		}
	}
	return nil
}
