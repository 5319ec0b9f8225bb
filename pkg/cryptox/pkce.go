package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// GeneratePKCEVerifier creates a PKCE code verifier with 256 bits of source
// entropy (43 base64url chars, within the RFC 7636 length bounds).
func GeneratePKCEVerifier() (string, error) {
	return GenerateToken(TokenSize256)
}

// DerivePKCEChallenge computes the S256 code challenge for a verifier:
// base64url(SHA-256(verifier)) with padding stripped. The "plain" method is
// deliberately unsupported.
func DerivePKCEChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
