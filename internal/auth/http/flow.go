package http

import (
	"net/http"

	"github.com/quickplate/quickplate/internal/auth/flow"
	"github.com/quickplate/quickplate/pkg/authsdk"
	"github.com/quickplate/quickplate/pkg/httpx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// FlowHandler exposes the login flow over HTTP. Every endpoint responds
// with the resulting flow state; validation failures inside the flow
// (wrong password, weak password, bad OTP) come back as field errors in
// a 200 state, not as HTTP errors. Only malformed requests and
// infrastructure failures use error statuses.
type FlowHandler struct {
	Flow *flow.Manager
}

func renderState(s flow.State) authsdk.FlowStateResponse {
	resp := authsdk.FlowStateResponse{
		Screen:        string(s.Screen),
		Email:         s.Email,
		FieldErrors:   s.FieldErrors,
		Notice:        s.Notice,
		Authenticated: s.Screen == flow.ScreenDashboard,
	}
	if s.Profile != nil {
		resp.Profile = &authsdk.ProfilePayload{
			ProviderID: s.Profile.ProviderID,
			Provider:   s.Profile.Provider,
			Email:      s.Profile.Email,
			Name:       s.Profile.Name,
			AvatarURL:  s.Profile.AvatarURL,
		}
	}
	return resp
}

// dispatch runs one event through the flow and writes the resulting state.
func (h *FlowHandler) dispatch(w http.ResponseWriter, r *http.Request, ev flow.Event) {
	ctx := r.Context()
	sessionID := ensureSession(w, r)

	state, err := h.Flow.Dispatch(ctx, sessionID, ev)
	if err != nil {
		slogx.FromContext(ctx).Error("flow dispatch failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to process request",
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, renderState(state))
}

// HandleLogin godoc
//
//	@Summary		Password Login Endpoint
//	@Description	Submit email and password on the login screen. Valid credentials
//	@Description	email a login code and move the flow to the verification screen;
//	@Description	wrong ones return the login screen with a field error, not a 401
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest			true	"email, password, remember"
//	@Success		200		{object}	authsdk.FlowStateResponse		"resulting flow state"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *FlowHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decodeValid(w, r, &req) {
		return
	}
	h.dispatch(w, r, flow.EvSubmitLogin{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
}

// HandleSignup godoc
//
//	@Summary		Signup Endpoint
//	@Description	Submit the signup form. On success an OTP is emailed and the flow
//	@Description	moves to the verification screen. No account exists until the code
//	@Description	is verified
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest			true	"name, email, password"
//	@Success		200		{object}	authsdk.FlowStateResponse		"resulting flow state"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/signup [post].
func (h *FlowHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if !decodeValid(w, r, &req) {
		return
	}
	h.dispatch(w, r, flow.EvSubmitSignup{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}

// HandleOTPVerify godoc
//
//	@Summary		OTP Verification Endpoint
//	@Description	Submit the emailed verification code on a login, signup or reset OTP screen
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.OTPVerifyRequest		true	"code"
//	@Success		200		{object}	authsdk.FlowStateResponse		"resulting flow state"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/otp/verify [post].
func (h *FlowHandler) HandleOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req authsdk.OTPVerifyRequest
	if !decodeValid(w, r, &req) {
		return
	}
	h.dispatch(w, r, flow.EvSubmitOTP{Code: req.Code})
}

// HandleOTPResend godoc
//
//	@Summary		OTP Resend Endpoint
//	@Description	Email a fresh verification code. The previous code stops working
//	@Tags			Flow
//	@Produce		json
//	@Success		200	{object}	authsdk.FlowStateResponse	"resulting flow state"
//	@Failure		500	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/otp/resend [post].
func (h *FlowHandler) HandleOTPResend(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, flow.EvResendOTP{})
}

// HandleForgot godoc
//
//	@Summary		Forgot Password Endpoint
//	@Description	Begin a password reset for the given email. A verification code is
//	@Description	emailed when the account exists
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ForgotRequest			true	"email"
//	@Success		200		{object}	authsdk.FlowStateResponse		"resulting flow state"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/forgot [post].
func (h *FlowHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotRequest
	if !decodeValid(w, r, &req) {
		return
	}
	h.dispatch(w, r, flow.EvSubmitForgot{Email: req.Email})
}

// HandleNewPassword godoc
//
//	@Summary		New Password Endpoint
//	@Description	Set the replacement password after a verified reset. Existing
//	@Description	remembered sessions for the account are revoked
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.NewPasswordRequest		true	"password"
//	@Success		200		{object}	authsdk.FlowStateResponse		"resulting flow state"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/password [post].
func (h *FlowHandler) HandleNewPassword(w http.ResponseWriter, r *http.Request) {
	var req authsdk.NewPasswordRequest
	if !decodeValid(w, r, &req) {
		return
	}
	h.dispatch(w, r, flow.EvSubmitNewPassword{Password: req.Password})
}

// HandleBack godoc
//
//	@Summary		Back Navigation Endpoint
//	@Description	Return to the previous screen, abandoning any pending OTP
//	@Tags			Flow
//	@Produce		json
//	@Success		200	{object}	authsdk.FlowStateResponse	"resulting flow state"
//	@Failure		500	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/back [post].
func (h *FlowHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, flow.EvBack{})
}

// HandleGoto godoc
//
//	@Summary		Screen Navigation Endpoint
//	@Description	Jump from the login screen to the signup or forgot-password screen
//	@Tags			Flow
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.GotoRequest				true	"target: signup or forgot_password"
//	@Success		200		{object}	authsdk.FlowStateResponse		"resulting flow state"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/goto [post].
func (h *FlowHandler) HandleGoto(w http.ResponseWriter, r *http.Request) {
	var req authsdk.GotoRequest
	if !decodeValid(w, r, &req) {
		return
	}

	var ev flow.Event
	switch req.Target {
	case string(flow.ScreenSignup):
		ev = flow.EvGoSignup{}
	case string(flow.ScreenForgotPassword):
		ev = flow.EvGoForgot{}
	default:
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Unknown navigation target",
		})
		return
	}
	h.dispatch(w, r, ev)
}

// HandleLogout godoc
//
//	@Summary		Logout Endpoint
//	@Description	End the session and reset the flow to the login screen
//	@Tags			Flow
//	@Produce		json
//	@Success		200	{object}	authsdk.FlowStateResponse	"resulting flow state"
//	@Failure		500	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/logout [post].
func (h *FlowHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, flow.EvLogout{})
}

// HandleState godoc
//
//	@Summary		Flow State Endpoint
//	@Description	Return the current flow state without driving a transition
//	@Tags			Flow
//	@Produce		json
//	@Success		200	{object}	authsdk.FlowStateResponse	"current flow state"
//	@Router			/v1/auth/state [get].
func (h *FlowHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSession(w, r)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, renderState(h.Flow.State(sessionID)))
}
