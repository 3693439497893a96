// Package authtoken decodes bearer token payloads without verifying the
// signature. Issuance and verification live in the backend; the client only
// reads the expiry for UX decisions (expired-session banners, preemptive
// logout), so an unverified decode is sufficient here.
package authtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiry = errors.New("token has no expiry claim")

var parser = jwt.NewParser()

// ExpirationTime returns the exp claim of a JWT-like token.
func ExpirationTime(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// IsExpired reports whether the token's exp claim is in the past. Tokens
// that cannot be decoded count as expired.
func IsExpired(token string) bool {
	exp, err := ExpirationTime(token)
	if err != nil {
		return true
	}
	return exp.Before(time.Now())
}

// IsExpiringSoon reports whether the token expires within five minutes.
func IsExpiringSoon(token string) bool {
	exp, err := ExpirationTime(token)
	if err != nil {
		return true
	}
	return exp.Before(time.Now().Add(5 * time.Minute))
}
