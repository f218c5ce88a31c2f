package delivery

import (
	"context"
	"log/slog"
)

// Sender hands an OTP code to the out-of-band delivery pipeline. The
// orchestrator treats failures as a warning, never a blocker.
type Sender interface {
	Send(ctx context.Context, email, code string) error
}

// LogSender is the dev fallback when no broker is configured. The code
// is only ever written at debug level.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, email, code string) error {
	slog.Debug("otp delivery (dev)", "email", email, "code", code)
	return nil
}
