package impl

import (
	"context"
	"log/slog"
	"time"

	"credauth/internal/delivery"
	"credauth/internal/domain"
	"credauth/internal/dto"
	"credauth/internal/observability/metrics"
	"credauth/internal/observability/middleware"
	"credauth/internal/service"
)

const defaultCallTimeout = 5 * time.Second

// AuthServiceImpl coordinates the three authentication use cases. It is
// stateless across calls; each invocation is one pass through its
// collaborators, and downstream calls run under a bounded timeout.
type AuthServiceImpl struct {
	Directory service.UserDirectory
	Passwords service.PasswordService
	Tokens    service.TokenService
	Otp       service.OtpService
	Delivery  delivery.Sender

	// ExposeOtp echoes the raw code in the OTP response. Dev only;
	// production deployments deliver the code out-of-band.
	ExposeOtp bool

	callTimeout time.Duration
}

func NewAuthServiceImpl(
	dir service.UserDirectory,
	passwords service.PasswordService,
	tokens service.TokenService,
	otp service.OtpService,
	sender delivery.Sender,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		Directory:   dir,
		Passwords:   passwords,
		Tokens:      tokens,
		Otp:         otp,
		Delivery:    sender,
		callTimeout: defaultCallTimeout,
	}
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	cred, err := a.Directory.GetByEmail(callCtx, r.Email)
	cancel()
	if err != nil {
		result = "failure"
		return nil, err
	}

	if !a.Passwords.Verify(r.Password, cred.PasswordHash) {
		result = "failure"
		return nil, domain.ErrIncorrectPassword
	}

	tokens, err := a.Tokens.Issue(ctx, cred.Email)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("login succeeded",
		"email", cred.Email,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)
	return tokens, nil
}

func (a *AuthServiceImpl) RequestOtp(ctx context.Context, r dto.OtpRequest) (*dto.OtpResponse, error) {
	ch, err := a.Otp.Issue(ctx, r.Email)
	if err != nil {
		return nil, err
	}

	// Delivery is fire-and-forget: a failed send is a warning, never a
	// reason to withhold the challenge descriptor.
	sendCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	if err := a.Delivery.Send(sendCtx, ch.Email, ch.Code); err != nil {
		slog.Warn("otp delivery failed",
			"email", ch.Email,
			"error", err,
			"request_id", middleware.RequestIDFromContext(ctx),
		)
	}
	cancel()

	resp := &dto.OtpResponse{
		ID:        ch.ID.String(),
		Email:     ch.Email,
		CreatedAt: ch.CreatedAt,
		ExpiresAt: ch.ExpiresAt,
		Status:    string(ch.Status),
	}
	if a.ExposeOtp {
		resp.Code = ch.Code
	}

	slog.Info("otp challenge issued",
		"email", ch.Email,
		"challenge_id", ch.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return resp, nil
}

func (a *AuthServiceImpl) RecoverPassword(ctx context.Context, r dto.PasswordRecoveryRequest) (bool, error) {
	result := "success"
	defer func() {
		metrics.RecoveriesTotal.WithLabelValues(result).Inc()
	}()

	// Validate first; a consumed challenge stays consumed even if the
	// directory update below fails. Restoring it would allow replay.
	if err := a.Otp.Validate(ctx, r.Email, r.Otp); err != nil {
		result = "failure"
		return false, err
	}

	newHash, err := a.Passwords.Hash(r.NewPassword)
	if err != nil {
		result = "failure"
		return false, err
	}

	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	cred, err := a.Directory.GetByEmail(callCtx, r.Email)
	if err != nil {
		result = "failure"
		return false, err
	}
	if err := a.Directory.UpdatePassword(callCtx, cred.ID, newHash); err != nil {
		result = "failure"
		return false, err
	}

	slog.Info("password recovered",
		"email", r.Email,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)
	return true, nil
}
