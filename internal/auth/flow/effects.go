package flow

import (
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

// Effect is a side effect requested by a transition. Apply never performs
// them; the Manager does, then feeds the outcomes back in as events.
type Effect interface{ isEffect() }

// FxAuthenticate checks an email/password pair against the credential store.
// Outcome: EvAuthenticated or EvAuthFailed.
type FxAuthenticate struct {
	Email    string
	Password string
}

// FxCreateUser commits a verified signup. Outcome: EvUserCreated or
// EvSignupRejected (duplicate email).
type FxCreateUser struct {
	Data    SignupData
	Persist bool
}

// FxIssueOTP mints and delivers a fresh code. Outcome: EvOTPIssued.
type FxIssueOTP struct {
	Email   string
	Purpose domain.OTPPurpose
}

// FxVerifyOTP checks a submitted code. Outcome: EvOTPVerified or
// EvOTPRejected, both tagged with Generation.
type FxVerifyOTP struct {
	Email      string
	Purpose    domain.OTPPurpose
	Code       string
	Generation uint64
}

// FxDropOTP abandons any pending challenge for the email.
type FxDropOTP struct{ Email string }

// FxBeginReset verifies the account exists and issues a reset code.
// Outcome: EvResetStarted or EvResetFailed.
type FxBeginReset struct{ Email string }

// FxUpdatePassword commits a verified password reset. Outcome:
// EvPasswordUpdated or EvPasswordUpdateFailed.
type FxUpdatePassword struct {
	Email    string
	Password string
}

// FxIssueSession mints and stores the session token.
type FxIssueSession struct {
	User     domain.User
	Provider string
	Persist  bool
	TTL      time.Duration
}

// FxClearSession drops the session token from both stores.
type FxClearSession struct{}

func (FxAuthenticate) isEffect()   {}
func (FxCreateUser) isEffect()     {}
func (FxIssueOTP) isEffect()       {}
func (FxVerifyOTP) isEffect()      {}
func (FxDropOTP) isEffect()        {}
func (FxBeginReset) isEffect()     {}
func (FxUpdatePassword) isEffect() {}
func (FxIssueSession) isEffect()   {}
func (FxClearSession) isEffect()   {}
