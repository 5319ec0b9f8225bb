package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProfileGoogle(t *testing.T) {
	p, err := normalizeProfile("google", map[string]any{
		"sub":            "999",
		"email":          "jane@x.com",
		"name":           "Jane Doe",
		"picture":        "https://cdn.example/jane.png",
		"email_verified": true,
	})
	require.NoError(t, err)

	assert.Equal(t, "google_999", p.ProviderID)
	assert.Equal(t, "https://cdn.example/jane.png", p.AvatarURL)
	assert.True(t, p.EmailVerified)
}

func TestNormalizeProfileGithub(t *testing.T) {
	p, err := normalizeProfile("github", map[string]any{
		"id":         float64(42),
		"login":      "janedoe",
		"email":      "jane@x.com",
		"avatar_url": "https://avatars.example/42",
	})
	require.NoError(t, err)

	assert.Equal(t, "github_42", p.ProviderID)
	assert.Equal(t, "janedoe", p.Name)
	assert.Equal(t, "https://avatars.example/42", p.AvatarURL)
	assert.False(t, p.EmailVerified)
}

func TestNormalizeProfileFacebook(t *testing.T) {
	p, err := normalizeProfile("facebook", map[string]any{
		"id":    "777",
		"name":  "Jane Doe",
		"email": "jane@x.com",
		"picture": map[string]any{
			"data": map[string]any{"url": "https://graph.example/777/pic"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "facebook_777", p.ProviderID)
	assert.Equal(t, "https://graph.example/777/pic", p.AvatarURL)
}

func TestNormalizeProfileMissingID(t *testing.T) {
	_, err := normalizeProfile("google", map[string]any{"email": "jane@x.com"})
	assert.Error(t, err)
}
