package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quickplate/quickplate/pkg/authsdk"
	"github.com/quickplate/quickplate/pkg/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeValid decodes a JSON request body into target and checks its
// validate tags. On failure it writes a 400 and returns false; the
// handler should return immediately.
func decodeValid(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return false
	}

	if err := validate.Struct(target); err != nil {
		var verrs validator.ValidationErrors
		desc := "Invalid request"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			desc = strings.ToLower(verrs[0].Field()) + " is " + tagMessage(verrs[0].Tag())
		}
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: desc,
		})
		return false
	}
	return true
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "oneof":
		return "not an accepted value"
	default:
		return "invalid"
	}
}
