package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the console can tell about a token without the
// signing key
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect decodes the claims of a JWT without verifying its signature.
// Opaque tokens report ok=false. The result is for display only and is
// never used to decide whether a request is sent
func Inspect(token string) (TokenInfo, bool) {
	if token == "" {
		return TokenInfo{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}

// Expired reports whether the token carried an expiry that has passed
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// ExpiryLabel renders the expiry for headers, e.g. "expires in 42m"
func (i TokenInfo) ExpiryLabel(now time.Time) string {
	if i.ExpiresAt.IsZero() {
		return ""
	}
	if i.Expired(now) {
		return "token expired"
	}
	left := i.ExpiresAt.Sub(now).Round(time.Minute)
	if left < time.Minute {
		return "expires in <1m"
	}
	return "expires in " + shortDuration(left)
}

func shortDuration(d time.Duration) string {
	s := d.String()
	// 1h30m0s -> 1h30m
	if len(s) > 2 && s[len(s)-2:] == "0s" {
		s = s[:len(s)-2]
	}
	return s
}
