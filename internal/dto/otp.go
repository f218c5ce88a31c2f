package dto

import "time"

type OtpRequest struct {
	Email string `json:"email"`
}

// OtpResponse describes an issued challenge. The code itself travels
// out-of-band through the delivery pipeline; Code is only populated
// when the service runs with EXPOSE_OTP for local development.
type OtpResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Status    string    `json:"status"`
	Code      string    `json:"code,omitempty"`
}

type PasswordRecoveryRequest struct {
	Email       string `json:"email"`
	Otp         string `json:"otp"`
	NewPassword string `json:"password"`
}

type PasswordRecoveryResponse struct {
	Updated bool `json:"updated"`
}
