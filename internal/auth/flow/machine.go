// Package flow is the per-session authentication orchestrator. The screens a
// user moves through are modeled as an explicit state machine: Apply is a
// pure function from (state, event) to (state, effects) and performs no I/O,
// which keeps every transition unit-testable. The Manager executes the
// returned effects against the services and feeds their outcomes back in as
// events.
package flow

import (
	"net/mail"
	"strings"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/service"
)

type Screen string

const (
	ScreenLogin          Screen = "login"
	ScreenSignup         Screen = "signup"
	ScreenForgotPassword Screen = "forgot_password"
	ScreenLoginOTP       Screen = "login_otp"
	ScreenResetOTP       Screen = "reset_otp"
	ScreenNewPassword    Screen = "new_password"
	ScreenDashboard      Screen = "dashboard"
)

// SignupData is held in flow state until the OTP is verified. No user record
// exists until then.
type SignupData struct {
	Name     string
	Email    string
	Password string
}

// LoginData holds the already-authenticated user while the login code is
// pending. The session is only issued once the code verifies.
type LoginData struct {
	User    domain.User
	Profile domain.Profile
}

// State is the full orchestrator state for one session. It is a value;
// Apply returns a new one.
type State struct {
	Screen Screen

	// Email is the subject of the pending OTP or reset.
	Email string

	// PendingSignup holds the submitted form until verification completes.
	PendingSignup *SignupData

	// PendingLogin holds the authenticated user until the login code verifies.
	PendingLogin *LoginData

	// Generation is the OTP generation this screen is waiting on. Outcome
	// events from a superseded generation are discarded.
	Generation uint64

	// Persist is the remember-me choice carried to session issuance.
	Persist bool

	// Profile is set once the user reaches the dashboard.
	Profile *domain.Profile

	// FieldErrors and Notice are transient view state, reset on each event.
	FieldErrors map[string]string
	Notice      string
}

func NewState() State {
	return State{Screen: ScreenLogin}
}

func (s State) withError(field, msg string) State {
	s.FieldErrors = map[string]string{field: msg}
	return s
}

// Apply is the pure transition function. Unknown (state, event) pairs leave
// the state untouched with no effects, so stray or stale events are harmless.
func Apply(s State, ev Event) (State, []Effect) {
	// View state never outlives the event that set it.
	s.FieldErrors = nil
	s.Notice = ""

	// Logout is honored from any screen.
	if _, ok := ev.(EvLogout); ok {
		next := NewState()
		return next, []Effect{FxClearSession{}, FxDropOTP{Email: s.Email}}
	}

	switch s.Screen {
	case ScreenLogin:
		return applyLogin(s, ev)
	case ScreenSignup:
		return applySignup(s, ev)
	case ScreenForgotPassword:
		return applyForgot(s, ev)
	case ScreenLoginOTP:
		return applyLoginOTP(s, ev)
	case ScreenResetOTP:
		return applyResetOTP(s, ev)
	case ScreenNewPassword:
		return applyNewPassword(s, ev)
	case ScreenDashboard:
		return applyDashboard(s, ev)
	}
	return s, nil
}

func applyLogin(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case EvGoSignup:
		s.Screen = ScreenSignup
		return s, nil

	case EvGoForgot:
		s.Screen = ScreenForgotPassword
		return s, nil

	case EvSubmitLogin:
		email := normalizeEmail(e.Email)
		if !validEmail(email) {
			return s.withError("email", "enter a valid email address"), nil
		}
		if e.Password == "" {
			return s.withError("password", "password is required"), nil
		}
		s.Email = email
		s.Persist = e.Remember
		return s, []Effect{FxAuthenticate{Email: email, Password: e.Password}}

	case EvAuthenticated:
		// Valid credentials are not enough; a login code goes out and the
		// session waits on it.
		s.Screen = ScreenLoginOTP
		s.PendingLogin = &LoginData{User: e.User, Profile: e.Profile}
		return s, []Effect{FxIssueOTP{Email: s.Email, Purpose: domain.OTPPurposeLogin}}

	case EvAuthFailed:
		if e.Reason == AuthFailUnknownEmail {
			return s.withError("email", "no account found for this email"), nil
		}
		return s.withError("password", "incorrect password"), nil

	case EvSSOCompleted:
		// SSO lands straight on the dashboard; no OTP step.
		s.Screen = ScreenDashboard
		s.Profile = &e.Profile
		s.Persist = e.Remember
		return s, []Effect{FxIssueSession{User: e.User, Provider: e.Profile.Provider, Persist: e.Remember, TTL: e.TTL}}
	}
	return s, nil
}

func applySignup(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case EvBack:
		return NewState(), nil

	case EvSubmitSignup:
		email := normalizeEmail(e.Email)
		if strings.TrimSpace(e.Name) == "" {
			return s.withError("name", "name is required"), nil
		}
		if !validEmail(email) {
			return s.withError("email", "enter a valid email address"), nil
		}
		if err := service.ValidatePasswordPolicy(e.Password); err != nil {
			return s.withError("password", passwordPolicyMessage), nil
		}
		s.Email = email
		s.PendingSignup = &SignupData{Name: strings.TrimSpace(e.Name), Email: email, Password: e.Password}
		s.Screen = ScreenLoginOTP
		return s, []Effect{FxIssueOTP{Email: email, Purpose: domain.OTPPurposeSignup}}

	case EvSignupRejected:
		// Duplicate email discovered when the verified signup was committed.
		s.Screen = ScreenSignup
		return s.withError("email", "an account with this email already exists"), nil
	}
	return s, nil
}

func applyForgot(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case EvBack:
		return NewState(), nil

	case EvSubmitForgot:
		email := normalizeEmail(e.Email)
		if !validEmail(email) {
			return s.withError("email", "enter a valid email address"), nil
		}
		s.Email = email
		return s, []Effect{FxBeginReset{Email: email}}

	case EvResetStarted:
		s.Screen = ScreenResetOTP
		s.Generation = e.Generation
		return s, nil

	case EvResetFailed:
		return s.withError("email", "no account found for this email"), nil
	}
	return s, nil
}

// loginOTPPurpose tells the signup and login uses of the OTP screen apart.
func loginOTPPurpose(s State) domain.OTPPurpose {
	if s.PendingSignup != nil {
		return domain.OTPPurposeSignup
	}
	return domain.OTPPurposeLogin
}

func applyLoginOTP(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case EvBack:
		return NewState(), []Effect{FxDropOTP{Email: s.Email}}

	case EvOTPIssued:
		s.Generation = e.Generation
		return s, nil

	case EvSubmitOTP:
		if len(e.Code) != 6 {
			return s.withError("code", "enter the 6-digit code"), nil
		}
		return s, []Effect{FxVerifyOTP{
			Email: s.Email, Purpose: loginOTPPurpose(s),
			Code: e.Code, Generation: s.Generation,
		}}

	case EvResendOTP:
		return s, []Effect{FxIssueOTP{Email: s.Email, Purpose: loginOTPPurpose(s)}}

	case EvOTPVerified:
		if e.Generation != s.Generation {
			return s, nil // outcome of a superseded code
		}
		if s.PendingSignup != nil {
			return s, []Effect{FxCreateUser{Data: *s.PendingSignup, Persist: s.Persist}}
		}
		if s.PendingLogin == nil {
			return NewState(), nil
		}
		user := s.PendingLogin.User
		s.Screen = ScreenDashboard
		s.Profile = &s.PendingLogin.Profile
		s.PendingLogin = nil
		return s, []Effect{FxIssueSession{User: user, Provider: "password", Persist: s.Persist}}

	case EvOTPRejected:
		if e.Generation != s.Generation {
			return s, nil
		}
		return s.withError("code", otpRejectionMessage(e.Reason)), nil

	case EvUserCreated:
		s.Screen = ScreenDashboard
		s.Profile = &e.Profile
		s.PendingSignup = nil
		return s, []Effect{FxIssueSession{User: e.User, Provider: "password", Persist: s.Persist}}
	}
	return s, nil
}

func applyResetOTP(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case EvBack:
		return NewState(), []Effect{FxDropOTP{Email: s.Email}}

	case EvOTPIssued:
		s.Generation = e.Generation
		return s, nil

	case EvSubmitOTP:
		if len(e.Code) != 6 {
			return s.withError("code", "enter the 6-digit code"), nil
		}
		return s, []Effect{FxVerifyOTP{
			Email: s.Email, Purpose: domain.OTPPurposePasswordReset,
			Code: e.Code, Generation: s.Generation,
		}}

	case EvResendOTP:
		return s, []Effect{FxIssueOTP{Email: s.Email, Purpose: domain.OTPPurposePasswordReset}}

	case EvOTPVerified:
		if e.Generation != s.Generation {
			return s, nil
		}
		s.Screen = ScreenNewPassword
		return s, nil

	case EvOTPRejected:
		if e.Generation != s.Generation {
			return s, nil
		}
		return s.withError("code", otpRejectionMessage(e.Reason)), nil
	}
	return s, nil
}

func applyNewPassword(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case EvBack:
		return NewState(), nil

	case EvSubmitNewPassword:
		if err := service.ValidatePasswordPolicy(e.Password); err != nil {
			return s.withError("password", passwordPolicyMessage), nil
		}
		return s, []Effect{FxUpdatePassword{Email: s.Email, Password: e.Password}}

	case EvPasswordUpdated:
		next := NewState()
		next.Notice = "password updated, sign in with your new password"
		return next, nil

	case EvPasswordUpdateFailed:
		return s.withError("password", "could not update password, start over"), nil
	}
	return s, nil
}

func applyDashboard(s State, ev Event) (State, []Effect) {
	// Logout is handled globally; nothing else moves the dashboard.
	return s, nil
}

const passwordPolicyMessage = "password needs 6+ characters with a lowercase letter, an uppercase letter and a digit"

func otpRejectionMessage(reason OTPRejectReason) string {
	switch reason {
	case OTPRejectExpired:
		return "this code has expired, request a new one"
	case OTPRejectNoChallenge:
		return "no code is pending, request a new one"
	default:
		return "that code is not correct"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
