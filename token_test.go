package pubdesk

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "7"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestSessionMaxAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"opaque token", "tok-1", int(defaultSessionTTL / time.Second)},
		{"no exp claim", signedToken(t, nil), int(defaultSessionTTL / time.Second)},
		{"expires in an hour", signedToken(t, at(time.Hour)), 3600},
		{"already expired", signedToken(t, at(-time.Minute)), 60},
		{"capped at thirty days", signedToken(t, at(90*24*time.Hour)), 30 * 24 * 3600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionMaxAge(tt.token, now); got != tt.want {
				t.Errorf("sessionMaxAge = %d, want %d", got, tt.want)
			}
		})
	}
}
