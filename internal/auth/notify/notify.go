// Package notify delivers one-time passcodes to users. Production wires the
// SMTP sender; dev and tests use the log sender so codes show up on stdout.
package notify

import (
	"context"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// Notifier delivers an OTP challenge to its email address.
type Notifier interface {
	SendOTP(ctx context.Context, challenge domain.OTPChallenge) error
}

// LogNotifier writes the code to the structured log instead of sending mail.
type LogNotifier struct{}

func (LogNotifier) SendOTP(ctx context.Context, c domain.OTPChallenge) error {
	slogx.FromContext(ctx).Info("otp issued",
		"email", c.Email,
		"code", c.Code,
		"purpose", string(c.Purpose),
		"expires_at", c.ExpiresAt,
	)
	return nil
}

// RecorderNotifier captures challenges for tests.
type RecorderNotifier struct {
	Sent []domain.OTPChallenge
}

func (r *RecorderNotifier) SendOTP(_ context.Context, c domain.OTPChallenge) error {
	r.Sent = append(r.Sent, c)
	return nil
}

// Last returns the most recently delivered challenge, if any.
func (r *RecorderNotifier) Last() (domain.OTPChallenge, bool) {
	if len(r.Sent) == 0 {
		return domain.OTPChallenge{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}
