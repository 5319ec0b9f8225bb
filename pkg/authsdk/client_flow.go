package authsdk

import (
	"context"
	"net/http"
)

// Login submits password credentials on the login screen.
func (c *SDKClient) Login(ctx context.Context, email, password string, remember bool) (*FlowStateResponse, error) {
	var state FlowStateResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login",
		LoginRequest{Email: email, Password: password, Remember: remember}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Signup submits the signup form. On success the flow advances to the OTP
// screen and a verification code is emailed to the address.
func (c *SDKClient) Signup(ctx context.Context, name, email, password string) (*FlowStateResponse, error) {
	var state FlowStateResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/signup",
		SignupRequest{Name: name, Email: email, Password: password}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// VerifyOTP submits a verification code on either OTP screen.
func (c *SDKClient) VerifyOTP(ctx context.Context, code string) (*FlowStateResponse, error) {
	var state FlowStateResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/otp/verify", OTPVerifyRequest{Code: code}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// ResendOTP requests a fresh verification code, superseding the previous one.
func (c *SDKClient) ResendOTP(ctx context.Context) (*FlowStateResponse, error) {
	var state FlowStateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/otp/resend", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Forgot begins a password reset for the given email.
func (c *SDKClient) Forgot(ctx context.Context, email string) (*FlowStateResponse, error) {
	var state FlowStateResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/forgot", ForgotRequest{Email: email}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// NewPassword submits the replacement password after a verified reset.
func (c *SDKClient) NewPassword(ctx context.Context, password string) (*FlowStateResponse, error) {
	var state FlowStateResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/password", NewPasswordRequest{Password: password}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Back returns to the previous screen in the flow.
func (c *SDKClient) Back(ctx context.Context) (*FlowStateResponse, error) {
	var state FlowStateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/back", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Goto jumps from the login screen to the signup or forgot-password screen.
func (c *SDKClient) Goto(ctx context.Context, target string) (*FlowStateResponse, error) {
	var state FlowStateResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/goto", GotoRequest{Target: target}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Logout ends the authenticated session and resets the flow to the login
// screen.
func (c *SDKClient) Logout(ctx context.Context) (*FlowStateResponse, error) {
	var state FlowStateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// State fetches the current flow state without driving a transition.
func (c *SDKClient) State(ctx context.Context) (*FlowStateResponse, error) {
	var state FlowStateResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
