package oauth

import (
	"fmt"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

// normalizeProfile flattens the provider-specific userinfo payload into a
// domain.Profile. Providers disagree on field names:
//
//	google:   sub, name, email, picture, email_verified
//	facebook: id, name, email, picture.data.url
//	github:   id (number), name/login, email, avatar_url
func normalizeProfile(provider string, raw map[string]any) (domain.Profile, error) {
	rawID := firstString(raw, "sub", "id")
	if rawID == "" {
		// github sends a numeric id
		if n, ok := raw["id"].(float64); ok {
			rawID = fmt.Sprintf("%.0f", n)
		}
	}
	if rawID == "" {
		return domain.Profile{}, fmt.Errorf("%w: no subject id in userinfo", ErrUserInfoFetchFailed)
	}

	name := firstString(raw, "name", "login")

	avatar := firstString(raw, "picture", "avatar_url")
	if avatar == "" {
		// facebook nests it under picture.data.url
		if pic, ok := raw["picture"].(map[string]any); ok {
			if data, ok := pic["data"].(map[string]any); ok {
				avatar = firstString(data, "url")
			}
		}
	}

	verified := false
	if v, ok := raw["email_verified"].(bool); ok {
		verified = v
	} else if v, ok := raw["verified_email"].(bool); ok {
		verified = v
	}

	return domain.Profile{
		ProviderID:    provider + "_" + rawID,
		Provider:      provider,
		Email:         firstString(raw, "email"),
		Name:          name,
		AvatarURL:     avatar,
		EmailVerified: verified,
	}, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
