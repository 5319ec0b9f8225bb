package domain

import "time"

// OTPPurpose distinguishes why a one-time passcode was issued.
type OTPPurpose string

const (
	OTPPurposeLogin         OTPPurpose = "login"
	OTPPurposeSignup        OTPPurpose = "signup"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTPChallenge is a pending emailed passcode awaiting verification.
type OTPChallenge struct {
	Email   string
	Code    string // exactly 6 decimal digits
	Purpose OTPPurpose

	// Generation increments on every resend so a verify or expiry racing
	// against a resend can tell whether it is acting on a stale code.
	Generation uint64

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
