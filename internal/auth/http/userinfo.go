package http

import (
	"errors"
	"net/http"

	"github.com/quickplate/quickplate/internal/auth/store"
	"github.com/quickplate/quickplate/pkg/authsdk"
	"github.com/quickplate/quickplate/pkg/httpx"
	"github.com/quickplate/quickplate/pkg/jwtx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

// UserInfoHandler serves identity information for a bearer session token.
// This is the endpoint downstream Quickplate services call to resolve a
// token they received.
type UserInfoHandler struct {
	Store store.Store
}

// ServeHTTP handles the userinfo endpoint.
//
//	@Summary		Get user information
//	@Description	Returns the identity behind a bearer session token
//	@Tags			Session
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserInfoResponse	"user_id, email, name, provider"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            "invalid_token",
			ErrorDescription: "Missing token subject",
		})
		return
	}

	claims, _ := ctx.Value(httpx.CtxKeyClaims).(jwtx.Claims)

	user, err := h.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            "invalid_token",
				ErrorDescription: "Unknown token subject",
			})
			return
		}
		log.Warn("failed to load user", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to load user",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Provider: claims.Provider,
	})
}
