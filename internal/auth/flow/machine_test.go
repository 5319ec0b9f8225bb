package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

func TestLoginScreenNavigation(t *testing.T) {
	s := NewState()

	s, fx := Apply(s, EvGoSignup{})
	assert.Equal(t, ScreenSignup, s.Screen)
	assert.Empty(t, fx)

	s, fx = Apply(s, EvBack{})
	assert.Equal(t, ScreenLogin, s.Screen)
	assert.Empty(t, fx)

	s, fx = Apply(s, EvGoForgot{})
	assert.Equal(t, ScreenForgotPassword, s.Screen)
	assert.Empty(t, fx)
}

func TestSubmitLoginRequestsAuthentication(t *testing.T) {
	s, fx := Apply(NewState(), EvSubmitLogin{Email: " Jane@X.com ", Password: "Abc123", Remember: true})

	require.Len(t, fx, 1)
	auth, ok := fx[0].(FxAuthenticate)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", auth.Email)
	assert.True(t, s.Persist)
	assert.Equal(t, ScreenLogin, s.Screen, "stays on login until the outcome arrives")
}

func TestSubmitLoginValidation(t *testing.T) {
	s, fx := Apply(NewState(), EvSubmitLogin{Email: "not-an-email", Password: "x"})
	assert.Empty(t, fx)
	assert.Contains(t, s.FieldErrors, "email")

	s, fx = Apply(NewState(), EvSubmitLogin{Email: "jane@x.com", Password: ""})
	assert.Empty(t, fx)
	assert.Contains(t, s.FieldErrors, "password")
}

func TestAuthFailureFieldMapping(t *testing.T) {
	s, _ := Apply(NewState(), EvSubmitLogin{Email: "jane@x.com", Password: "Abc123"})

	failed, fx := Apply(s, EvAuthFailed{Reason: AuthFailUnknownEmail})
	assert.Empty(t, fx)
	assert.Equal(t, ScreenLogin, failed.Screen)
	assert.Contains(t, failed.FieldErrors, "email")

	failed, fx = Apply(s, EvAuthFailed{Reason: AuthFailBadPassword})
	assert.Empty(t, fx)
	assert.Equal(t, ScreenLogin, failed.Screen)
	assert.Contains(t, failed.FieldErrors, "password")
}

func TestValidLoginMovesToOTP(t *testing.T) {
	s, _ := Apply(NewState(), EvSubmitLogin{Email: "jane@x.com", Password: "Abc123", Remember: true})

	u := domain.User{ID: "u1", Email: "jane@x.com"}
	s, fx := Apply(s, EvAuthenticated{User: u, Profile: domain.Profile{ProviderID: "u1", Provider: "password"}})
	assert.Equal(t, ScreenLoginOTP, s.Screen, "valid credentials still need the login code")
	require.NotNil(t, s.PendingLogin)
	assert.Nil(t, s.Profile)

	require.Len(t, fx, 1)
	issue, ok := fx[0].(FxIssueOTP)
	require.True(t, ok)
	assert.Equal(t, domain.OTPPurposeLogin, issue.Purpose)
	assert.Equal(t, "jane@x.com", issue.Email)
}

func TestLoginOTPVerifiedIssuesSession(t *testing.T) {
	u := domain.User{ID: "u1", Email: "jane@x.com"}
	s, _ := Apply(NewState(), EvSubmitLogin{Email: "jane@x.com", Password: "Abc123", Remember: true})
	s, _ = Apply(s, EvAuthenticated{User: u, Profile: domain.Profile{ProviderID: "u1", Provider: "password"}})
	s, _ = Apply(s, EvOTPIssued{Generation: 1})

	s, fx := Apply(s, EvSubmitOTP{Code: "123456"})
	require.Len(t, fx, 1)
	check, ok := fx[0].(FxVerifyOTP)
	require.True(t, ok)
	assert.Equal(t, domain.OTPPurposeLogin, check.Purpose)

	s, fx = Apply(s, EvOTPVerified{Generation: 1})
	assert.Equal(t, ScreenDashboard, s.Screen)
	assert.Nil(t, s.PendingLogin)
	require.NotNil(t, s.Profile)

	require.Len(t, fx, 1)
	issue, ok := fx[0].(FxIssueSession)
	require.True(t, ok)
	assert.Equal(t, "password", issue.Provider)
	assert.Equal(t, "u1", issue.User.ID)
	assert.True(t, issue.Persist)
}

func TestSignupPolicyViolationHasNoEffects(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})

	// "abc123" has no uppercase letter; the transition must not request a
	// single effect, so no store is touched.
	s, fx := Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "abc123"})
	assert.Empty(t, fx)
	assert.Equal(t, ScreenSignup, s.Screen)
	assert.Contains(t, s.FieldErrors, "password")
	assert.Nil(t, s.PendingSignup)
}

func TestSignupMovesToOTP(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})
	s, fx := Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "Abc123"})

	assert.Equal(t, ScreenLoginOTP, s.Screen)
	require.NotNil(t, s.PendingSignup)
	assert.Equal(t, "jane@x.com", s.PendingSignup.Email)

	require.Len(t, fx, 1)
	issue, ok := fx[0].(FxIssueOTP)
	require.True(t, ok)
	assert.Equal(t, domain.OTPPurposeSignup, issue.Purpose)
}

func TestOTPVerifiedCommitsSignup(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})
	s, _ = Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "Abc123"})
	s, _ = Apply(s, EvOTPIssued{Generation: 1})

	s, fx := Apply(s, EvOTPVerified{Generation: 1})
	require.Len(t, fx, 1)
	_, ok := fx[0].(FxCreateUser)
	assert.True(t, ok)

	u := domain.User{ID: "u1", Email: "jane@x.com"}
	s, fx = Apply(s, EvUserCreated{User: u, Profile: domain.Profile{ProviderID: "u1"}})
	assert.Equal(t, ScreenDashboard, s.Screen)
	assert.Nil(t, s.PendingSignup)
	require.Len(t, fx, 1)
	_, ok = fx[0].(FxIssueSession)
	assert.True(t, ok)
}

func TestStaleOTPOutcomeIsDiscarded(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})
	s, _ = Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "Abc123"})
	s, _ = Apply(s, EvOTPIssued{Generation: 1})

	// A resend bumped the generation while a verify was in flight.
	s, _ = Apply(s, EvOTPIssued{Generation: 2})

	next, fx := Apply(s, EvOTPVerified{Generation: 1})
	assert.Empty(t, fx, "stale verification must not commit anything")
	assert.Equal(t, ScreenLoginOTP, next.Screen)

	next, fx = Apply(s, EvOTPRejected{Generation: 1, Reason: OTPRejectMismatch})
	assert.Empty(t, fx)
	assert.Empty(t, next.FieldErrors, "stale rejection must not surface an error")
}

func TestOTPRejectionMessages(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})
	s, _ = Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "Abc123"})
	s, _ = Apply(s, EvOTPIssued{Generation: 1})

	rejected, _ := Apply(s, EvOTPRejected{Generation: 1, Reason: OTPRejectExpired})
	assert.Contains(t, rejected.FieldErrors["code"], "expired")

	rejected, _ = Apply(s, EvOTPRejected{Generation: 1, Reason: OTPRejectMismatch})
	assert.Contains(t, rejected.FieldErrors["code"], "not correct")
}

func TestDuplicateEmailReturnsToSignup(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})
	s, _ = Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "Abc123"})
	s, _ = Apply(s, EvOTPIssued{Generation: 1})
	s, _ = Apply(s, EvOTPVerified{Generation: 1})

	s, fx := Apply(s, EvSignupRejected{})
	assert.Empty(t, fx)
	assert.Equal(t, ScreenSignup, s.Screen)
	assert.Contains(t, s.FieldErrors, "email")
}

func TestResetFlowTransitions(t *testing.T) {
	s, _ := Apply(NewState(), EvGoForgot{})

	s, fx := Apply(s, EvSubmitForgot{Email: "jane@x.com"})
	require.Len(t, fx, 1)
	_, ok := fx[0].(FxBeginReset)
	require.True(t, ok)

	s, _ = Apply(s, EvResetStarted{Generation: 1})
	assert.Equal(t, ScreenResetOTP, s.Screen)

	s, _ = Apply(s, EvOTPVerified{Generation: 1})
	assert.Equal(t, ScreenNewPassword, s.Screen)

	s, fx = Apply(s, EvSubmitNewPassword{Password: "Newpass1"})
	require.Len(t, fx, 1)
	upd, ok := fx[0].(FxUpdatePassword)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", upd.Email)

	s, _ = Apply(s, EvPasswordUpdated{})
	assert.Equal(t, ScreenLogin, s.Screen)
	assert.NotEmpty(t, s.Notice)
}

func TestResetUnknownEmail(t *testing.T) {
	s, _ := Apply(NewState(), EvGoForgot{})
	s, _ = Apply(s, EvSubmitForgot{Email: "nobody@x.com"})

	s, fx := Apply(s, EvResetFailed{})
	assert.Empty(t, fx)
	assert.Equal(t, ScreenForgotPassword, s.Screen)
	assert.Contains(t, s.FieldErrors, "email")
}

func TestNewPasswordPolicyRejection(t *testing.T) {
	s := State{Screen: ScreenNewPassword, Email: "jane@x.com"}

	s, fx := Apply(s, EvSubmitNewPassword{Password: "weak"})
	assert.Empty(t, fx)
	assert.Equal(t, ScreenNewPassword, s.Screen)
	assert.Contains(t, s.FieldErrors, "password")
}

func TestBackFromOTPDropsChallenge(t *testing.T) {
	s, _ := Apply(NewState(), EvGoSignup{})
	s, _ = Apply(s, EvSubmitSignup{Name: "Jane", Email: "jane@x.com", Password: "Abc123"})

	s, fx := Apply(s, EvBack{})
	assert.Equal(t, ScreenLogin, s.Screen)
	require.Len(t, fx, 1)
	drop, ok := fx[0].(FxDropOTP)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", drop.Email)
}

func TestBackFromResetOTPReturnsToLogin(t *testing.T) {
	s, _ := Apply(NewState(), EvGoForgot{})
	s, _ = Apply(s, EvSubmitForgot{Email: "jane@x.com"})
	s, _ = Apply(s, EvResetStarted{Generation: 1})

	s, fx := Apply(s, EvBack{})
	assert.Equal(t, ScreenLogin, s.Screen)
	require.Len(t, fx, 1)
	_, ok := fx[0].(FxDropOTP)
	assert.True(t, ok)
}

func TestSSOCompletedSkipsOTP(t *testing.T) {
	u := domain.User{ID: "u1", Email: "jane@x.com"}
	p := domain.Profile{ProviderID: "google_1", Provider: "google", Email: "jane@x.com"}

	s, fx := Apply(NewState(), EvSSOCompleted{User: u, Profile: p, Remember: true})
	assert.Equal(t, ScreenDashboard, s.Screen)
	require.NotNil(t, s.Profile)
	assert.Equal(t, "google", s.Profile.Provider)

	require.Len(t, fx, 1)
	issue, ok := fx[0].(FxIssueSession)
	require.True(t, ok)
	assert.Equal(t, "google", issue.Provider)
	assert.True(t, issue.Persist)
}

func TestLogoutFromAnyScreen(t *testing.T) {
	s := State{Screen: ScreenDashboard, Email: "jane@x.com", Profile: &domain.Profile{}}

	s, fx := Apply(s, EvLogout{})
	assert.Equal(t, ScreenLogin, s.Screen)
	assert.Nil(t, s.Profile)

	require.Len(t, fx, 2)
	_, clearOK := fx[0].(FxClearSession)
	assert.True(t, clearOK)
}
