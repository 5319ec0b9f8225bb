package flow_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/flow"
	"github.com/quickplate/quickplate/internal/auth/notify"
	"github.com/quickplate/quickplate/internal/auth/service"
	"github.com/quickplate/quickplate/internal/auth/store/drivers/sqlite"
	"github.com/quickplate/quickplate/pkg/cryptox"
	"github.com/quickplate/quickplate/pkg/jwtx"
)

type fixture struct {
	manager  *flow.Manager
	store    *sqlite.Store
	notifier *notify.RecorderNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	db, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	signer, err := jwtx.NewSigner("test-key", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	require.NoError(t, err)

	rec := &notify.RecorderNotifier{}
	creds := &service.CredentialService{Store: db}
	otp := service.NewOTPService(rec)
	sessions := &service.SessionService{Store: db, Signer: signer, Issuer: "auth.test"}

	return &fixture{
		manager:  flow.NewManager(creds, otp, sessions),
		store:    db,
		notifier: rec,
	}
}

func (f *fixture) lastCode(t *testing.T) string {
	t.Helper()
	c, ok := f.notifier.Last()
	require.True(t, ok, "expected an OTP to have been sent")
	return c.Code
}

func TestSignupVerifyLoginScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Signup up to the OTP screen.
	_, err := f.manager.Dispatch(ctx, "sess", flow.EvGoSignup{})
	require.NoError(t, err)
	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitSignup{
		Name: "Jane", Email: "jane@x.com", Password: "Abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLoginOTP, s.Screen)

	// Verify with the delivered code; lands on the dashboard with a user
	// record and a live session.
	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitOTP{Code: f.lastCode(t)})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenDashboard, s.Screen)
	require.NotNil(t, s.Profile)
	assert.Equal(t, "jane@x.com", s.Profile.Email)

	u, err := f.store.Users().GetUserByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)

	// Logout, then authenticate with the very same credentials. A fresh
	// login code gates the dashboard.
	s, err = f.manager.Dispatch(ctx, "sess", flow.EvLogout{})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLogin, s.Screen)

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitLogin{Email: "jane@x.com", Password: "Abc123"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLoginOTP, s.Screen)

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitOTP{Code: f.lastCode(t)})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenDashboard, s.Screen)
}

func TestLoginBadPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Credentials.CreateUser(ctx, "jane@x.com", "Jane", "Abc123")
	require.NoError(t, err)

	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitLogin{Email: "jane@x.com", Password: "Wrong123"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLogin, s.Screen)
	assert.Contains(t, s.FieldErrors, "password")
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitLogin{Email: "nobody@x.com", Password: "Abc123"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLogin, s.Screen)
	assert.Contains(t, s.FieldErrors, "email")
	assert.Empty(t, f.notifier.Sent, "no login code for an unknown account")
}

func TestSignupWeakPasswordTouchesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Dispatch(ctx, "sess", flow.EvGoSignup{})
	require.NoError(t, err)
	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitSignup{
		Name: "Jane", Email: "jane@x.com", Password: "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenSignup, s.Screen)
	assert.Contains(t, s.FieldErrors, "password")
	assert.Empty(t, f.notifier.Sent, "no OTP on a rejected form")

	empty, err := f.store.Users().IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty, "no user row on a rejected form")
}

func TestWrongOTPThenResendThenVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Dispatch(ctx, "sess", flow.EvGoSignup{})
	require.NoError(t, err)
	_, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitSignup{
		Name: "Jane", Email: "jane@x.com", Password: "Abc123",
	})
	require.NoError(t, err)

	first := f.lastCode(t)
	wrong := "000000"
	if first == wrong {
		wrong = "000001"
	}
	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitOTP{Code: wrong})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLoginOTP, s.Screen)
	assert.Contains(t, s.FieldErrors, "code")

	// Resend supersedes the first code.
	s, err = f.manager.Dispatch(ctx, "sess", flow.EvResendOTP{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.Generation)

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitOTP{Code: f.lastCode(t)})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenDashboard, s.Screen)
}

func TestPasswordResetScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Credentials.CreateUser(ctx, "jane@x.com", "Jane", "Abc123")
	require.NoError(t, err)

	_, err = f.manager.Dispatch(ctx, "sess", flow.EvGoForgot{})
	require.NoError(t, err)

	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitForgot{Email: "jane@x.com"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenResetOTP, s.Screen)

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitOTP{Code: f.lastCode(t)})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenNewPassword, s.Screen)

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitNewPassword{Password: "Newpass1"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLogin, s.Screen)
	assert.NotEmpty(t, s.Notice)

	// Old password dead, new one works through the login code.
	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitLogin{Email: "jane@x.com", Password: "Abc123"})
	require.NoError(t, err)
	assert.Contains(t, s.FieldErrors, "password")

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitLogin{Email: "jane@x.com", Password: "Newpass1"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenLoginOTP, s.Screen)

	s, err = f.manager.Dispatch(ctx, "sess", flow.EvSubmitOTP{Code: f.lastCode(t)})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenDashboard, s.Screen)
}

func TestResetForUnknownEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Dispatch(ctx, "sess", flow.EvGoForgot{})
	require.NoError(t, err)

	s, err := f.manager.Dispatch(ctx, "sess", flow.EvSubmitForgot{Email: "nobody@x.com"})
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenForgotPassword, s.Screen)
	assert.Contains(t, s.FieldErrors, "email")
	assert.Empty(t, f.notifier.Sent)
}

func TestCompleteSSOCreatesLocalUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile := domain.Profile{
		ProviderID: "google_12345", Provider: "google",
		Email: "jane@x.com", Name: "Jane Doe", EmailVerified: true,
	}
	tokens := domain.TokenSet{AccessToken: "at", ExpiresIn: 3600}

	s, err := f.manager.CompleteSSO(ctx, "sess", profile, tokens, true)
	require.NoError(t, err)
	assert.Equal(t, flow.ScreenDashboard, s.Screen)
	require.NotNil(t, s.Profile)
	assert.Equal(t, "google_12345", s.Profile.ProviderID)

	u, err := f.store.Users().GetUserByEmail(ctx, "jane@x.com")
	require.NoError(t, err)

	// Remembered SSO session is durable.
	tok, err := f.store.Tokens().GetTokenBySession(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, u.ID, tok.UserID)
	assert.Equal(t, "google", tok.Provider)

	// Second SSO login reuses the same local record.
	_, err = f.manager.CompleteSSO(ctx, "sess", profile, tokens, false)
	require.NoError(t, err)
	again, err := f.store.Users().GetUserByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Dispatch(ctx, "sess-a", flow.EvGoSignup{})
	require.NoError(t, err)

	sb := f.manager.State("sess-b")
	assert.Equal(t, flow.ScreenLogin, sb.Screen)
}
