package authsdk

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// SignupRequest is the payload for POST /v1/auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OTPVerifyRequest is the payload for POST /v1/auth/otp/verify.
type OTPVerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

// ForgotRequest is the payload for POST /v1/auth/forgot.
type ForgotRequest struct {
	Email string `json:"email" validate:"required"`
}

// NewPasswordRequest is the payload for POST /v1/auth/password.
type NewPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// GotoRequest is the payload for POST /v1/auth/goto. Target is the screen
// to jump to from the login screen: "signup" or "forgot_password".
type GotoRequest struct {
	Target string `json:"target" validate:"required,oneof=signup forgot_password"`
}

// ProfilePayload is the authenticated identity rendered to clients.
type ProfilePayload struct {
	ProviderID string `json:"provider_id"`
	Provider   string `json:"provider"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// FlowStateResponse is the view of the login flow returned by every flow
// endpoint and by GET /v1/auth/state.
type FlowStateResponse struct {
	Screen        string            `json:"screen"`
	Email         string            `json:"email,omitempty"`
	FieldErrors   map[string]string `json:"field_errors,omitempty"`
	Notice        string            `json:"notice,omitempty"`
	Authenticated bool              `json:"authenticated"`
	Profile       *ProfilePayload   `json:"profile,omitempty"`
}

// SessionResponse is returned by GET /v1/session for an authenticated
// flow session. Token is the signed JWT for Bearer use against other
// Quickplate services.
type SessionResponse struct {
	Token     string `json:"token"`
	Provider  string `json:"provider"`
	ExpiresAt int64  `json:"expires_at"`
}

// SSOInitiateResponse is returned by GET /v1/sso/{provider}. The client
// should navigate the browser to AuthorizationURL.
type SSOInitiateResponse struct {
	Provider         string `json:"provider"`
	AuthorizationURL string `json:"authorization_url"`
}

// UserInfoResponse is returned by GET /v1/userinfo for a valid bearer
// session token.
type UserInfoResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// HealthChecks reports the status of critical dependencies in readiness
// responses.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}

// HealthResponse is returned by the /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
