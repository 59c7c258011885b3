package pubdesk

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSessionTTL = 12 * time.Hour

// sessionMaxAge returns the session cookie lifetime in seconds for token.
// When the token is a JWT with an exp claim the cookie expires with it;
// otherwise it lasts defaultSessionTTL. The signature is not checked:
// the upstream API verifies its own tokens on every call.
func sessionMaxAge(token string, now time.Time) int {
	fallback := int(defaultSessionTTL / time.Second)
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fallback
	}
	if claims.ExpiresAt == nil {
		return fallback
	}
	left := claims.ExpiresAt.Sub(now)
	if left <= 0 {
		// Already expired; keep the cookie just long enough for the
		// next call to come back 401 and send the user to login.
		return 60
	}
	if left > 30*24*time.Hour {
		left = 30 * 24 * time.Hour
	}
	return int(left / time.Second)
}
