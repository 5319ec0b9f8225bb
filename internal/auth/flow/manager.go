package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/quickplate/quickplate/internal/auth/domain"
	"github.com/quickplate/quickplate/internal/auth/service"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// Manager holds one orchestrator state per session and executes the effects
// transitions ask for. Dispatch serializes per manager; the services it calls
// are concurrency-safe on their own.
type Manager struct {
	Credentials *service.CredentialService
	OTP         *service.OTPService
	Sessions    *service.SessionService

	mu     sync.Mutex
	states map[string]State
}

func NewManager(creds *service.CredentialService, otp *service.OTPService, sessions *service.SessionService) *Manager {
	return &Manager{
		Credentials: creds,
		OTP:         otp,
		Sessions:    sessions,
		states:      make(map[string]State),
	}
}

// State returns the current orchestrator state for a session, a fresh login
// screen for sessions never seen before.
func (m *Manager) State(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[sessionID]; ok {
		return s
	}
	return NewState()
}

// Dispatch feeds an event through the machine, executing effects until the
// transition settles, and returns the resulting state.
func (m *Manager) Dispatch(ctx context.Context, sessionID string, ev Event) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[sessionID]
	if !ok {
		s = NewState()
	}

	queue := []Event{ev}
	// An effect outcome can itself queue effects (verify then create user
	// then issue session); the chain is short and bounded.
	for depth := 0; len(queue) > 0; depth++ {
		if depth > 16 {
			return s, fmt.Errorf("flow: transition did not settle")
		}

		next := queue[0]
		queue = queue[1:]

		var effects []Effect
		s, effects = Apply(s, next)

		for _, fx := range effects {
			out, err := m.execute(ctx, sessionID, fx)
			if err != nil {
				m.states[sessionID] = s
				return s, err
			}
			if out != nil {
				queue = append(queue, out)
			}
		}
	}

	m.states[sessionID] = s
	return s, nil
}

// CompleteSSO lands a finished provider flow on the dashboard: it backs the
// profile with a local user record and dispatches the completion event.
func (m *Manager) CompleteSSO(ctx context.Context, sessionID string, profile domain.Profile, tokens domain.TokenSet, remember bool) (State, error) {
	user, err := m.Credentials.EnsureSSOUser(ctx, profile)
	if err != nil {
		return m.State(sessionID), err
	}

	ev := EvSSOCompleted{
		User:     user,
		Profile:  profile,
		Remember: remember,
	}
	if tokens.ExpiresIn > 0 {
		ev.TTL = tokens.TTL()
	}
	return m.Dispatch(ctx, sessionID, ev)
}

// Drop forgets the orchestrator state for a session.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
}

// execute runs one effect and returns the outcome event, if the effect has
// one. Service failures that are part of the flow (wrong password, duplicate
// email) become events; infrastructure failures are returned as errors.
func (m *Manager) execute(ctx context.Context, sessionID string, fx Effect) (Event, error) {
	log := slogx.FromContext(ctx)

	switch fx := fx.(type) {
	case FxAuthenticate:
		u, err := m.Credentials.Authenticate(ctx, fx.Email, fx.Password)
		switch {
		case err == nil:
			return EvAuthenticated{User: u, Profile: profileForUser(u)}, nil
		case errors.Is(err, service.ErrUserNotFound):
			return EvAuthFailed{Reason: AuthFailUnknownEmail}, nil
		case errors.Is(err, service.ErrInvalidCredentials):
			return EvAuthFailed{Reason: AuthFailBadPassword}, nil
		default:
			return nil, err
		}

	case FxCreateUser:
		u, err := m.Credentials.CreateUser(ctx, fx.Data.Email, fx.Data.Name, fx.Data.Password)
		if err != nil {
			if errors.Is(err, service.ErrDuplicateEmail) {
				return EvSignupRejected{}, nil
			}
			return nil, err
		}
		return EvUserCreated{User: u, Profile: profileForUser(u)}, nil

	case FxIssueOTP:
		c, err := m.OTP.Issue(ctx, fx.Email, fx.Purpose)
		if err != nil {
			return nil, err
		}
		return EvOTPIssued{Generation: c.Generation}, nil

	case FxVerifyOTP:
		err := m.OTP.Verify(ctx, fx.Email, fx.Purpose, fx.Code)
		switch {
		case err == nil:
			return EvOTPVerified{Generation: fx.Generation}, nil
		case errors.Is(err, service.ErrOTPExpired):
			return EvOTPRejected{Generation: fx.Generation, Reason: OTPRejectExpired}, nil
		case errors.Is(err, service.ErrNoChallenge):
			return EvOTPRejected{Generation: fx.Generation, Reason: OTPRejectNoChallenge}, nil
		case errors.Is(err, service.ErrOTPMismatch):
			return EvOTPRejected{Generation: fx.Generation, Reason: OTPRejectMismatch}, nil
		default:
			return nil, err
		}

	case FxDropOTP:
		if fx.Email != "" {
			m.OTP.Drop(fx.Email, domain.OTPPurposeLogin)
			m.OTP.Drop(fx.Email, domain.OTPPurposeSignup)
			m.OTP.Drop(fx.Email, domain.OTPPurposePasswordReset)
		}
		return nil, nil

	case FxBeginReset:
		if _, err := m.Credentials.GetByEmail(ctx, fx.Email); err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return EvResetFailed{}, nil
			}
			return nil, err
		}
		c, err := m.OTP.Issue(ctx, fx.Email, domain.OTPPurposePasswordReset)
		if err != nil {
			return nil, err
		}
		return EvResetStarted{Generation: c.Generation}, nil

	case FxUpdatePassword:
		if err := m.Credentials.UpdatePassword(ctx, fx.Email, fx.Password); err != nil {
			if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWeakPassword) {
				return EvPasswordUpdateFailed{}, nil
			}
			return nil, err
		}
		return EvPasswordUpdated{}, nil

	case FxIssueSession:
		_, err := m.Sessions.Issue(ctx, sessionID, fx.User, fx.Provider, fx.TTL, fx.Persist)
		return nil, err

	case FxClearSession:
		return nil, m.Sessions.Clear(ctx, sessionID)
	}

	log.Warn("unhandled flow effect", "effect", fmt.Sprintf("%T", fx))
	return nil, nil
}

// profileForUser is the password-path identity: the local record presented
// the same way an SSO profile would be.
func profileForUser(u domain.User) domain.Profile {
	return domain.Profile{
		ProviderID:    u.ID,
		Provider:      "password",
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: true,
	}
}
