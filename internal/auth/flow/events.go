package flow

import (
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

// Event is anything that can drive a transition: user input arriving over
// HTTP, or the outcome of an executed effect.
type Event interface{ isEvent() }

// User-driven events.

type EvSubmitLogin struct {
	Email    string
	Password string
	Remember bool
}

type EvSubmitSignup struct {
	Name     string
	Email    string
	Password string
}

type EvSubmitForgot struct{ Email string }

type EvSubmitOTP struct{ Code string }

type EvResendOTP struct{}

type EvSubmitNewPassword struct{ Password string }

type EvGoSignup struct{}
type EvGoForgot struct{}
type EvBack struct{}
type EvLogout struct{}

// Effect-outcome events, fed back by the Manager.

type EvAuthenticated struct {
	User    domain.User
	Profile domain.Profile
}

type AuthFailReason string

const (
	AuthFailUnknownEmail AuthFailReason = "unknown_email"
	AuthFailBadPassword  AuthFailReason = "bad_password"
)

type EvAuthFailed struct{ Reason AuthFailReason }

type EvSignupRejected struct{}

type EvUserCreated struct {
	User    domain.User
	Profile domain.Profile
}

type EvOTPIssued struct{ Generation uint64 }

type EvOTPVerified struct{ Generation uint64 }

type OTPRejectReason string

const (
	OTPRejectMismatch    OTPRejectReason = "mismatch"
	OTPRejectExpired     OTPRejectReason = "expired"
	OTPRejectNoChallenge OTPRejectReason = "no_challenge"
)

type EvOTPRejected struct {
	Generation uint64
	Reason     OTPRejectReason
}

type EvResetStarted struct{ Generation uint64 }

type EvResetFailed struct{}

type EvPasswordUpdated struct{}

type EvPasswordUpdateFailed struct{}

// EvSSOCompleted arrives from the OAuth callback handler after the provider
// leg finished. TTL mirrors the provider token expiry when it sent one.
type EvSSOCompleted struct {
	User     domain.User
	Profile  domain.Profile
	Remember bool
	TTL      time.Duration
}

func (EvSubmitLogin) isEvent()          {}
func (EvSubmitSignup) isEvent()         {}
func (EvSubmitForgot) isEvent()         {}
func (EvSubmitOTP) isEvent()            {}
func (EvResendOTP) isEvent()            {}
func (EvSubmitNewPassword) isEvent()    {}
func (EvGoSignup) isEvent()             {}
func (EvGoForgot) isEvent()             {}
func (EvBack) isEvent()                 {}
func (EvLogout) isEvent()               {}
func (EvAuthenticated) isEvent()        {}
func (EvAuthFailed) isEvent()           {}
func (EvSignupRejected) isEvent()       {}
func (EvUserCreated) isEvent()          {}
func (EvOTPIssued) isEvent()            {}
func (EvOTPVerified) isEvent()          {}
func (EvOTPRejected) isEvent()          {}
func (EvResetStarted) isEvent()         {}
func (EvResetFailed) isEvent()          {}
func (EvPasswordUpdated) isEvent()      {}
func (EvPasswordUpdateFailed) isEvent() {}
func (EvSSOCompleted) isEvent()         {}
