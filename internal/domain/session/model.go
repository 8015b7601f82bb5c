package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys and cookie names shared with the rest of the application.
const (
	// TokenNamespace prefixes the persisted token pair of every browser session.
	TokenNamespace = "laganacoach.tokens"

	// WizardNamespace prefixes the invoice wizard state of every browser session.
	WizardNamespace = "laganacoach.invoiceWizard"

	// MarkerCookieName is the session marker cookie.
	MarkerCookieName = "lagana_session"

	// MarkerMaxAge is how long the session marker lives after login.
	MarkerMaxAge = 7 * 24 * time.Hour
)

// TokenPair is the access/refresh credential pair issued by the coaching API.
// An empty string stands for "absent".
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IsZero reports whether neither token is present.
func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// HasRefresh reports whether a refresh is possible.
func (p TokenPair) HasRefresh() bool {
	return p.RefreshToken != ""
}

// Key returns the storage key for a namespace and session id.
// PRE: sessionID is non-empty
// POST: returns "<namespace>:<sessionID>"
func Key(namespace, sessionID string) string {
	return namespace + ":" + sessionID
}

// TTL returns how long a token pair should be kept in storage.
// It is the marker lifetime, shortened to the refresh token's expiry when the
// refresh token is a JWT carrying an earlier "exp" claim.
// The token is parsed without signature verification: the API owns the key,
// this only reads the advertised expiry.
// PRE: now is the current time
// POST: returns a duration in (0, MarkerMaxAge]; never below one minute
func (p TokenPair) TTL(now time.Time) time.Duration {
	ttl := MarkerMaxAge
	exp, ok := Expiry(p.RefreshToken)
	if !ok {
		return ttl
	}
	if remaining := exp.Sub(now); remaining < ttl {
		ttl = remaining
	}
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}

// Expiry extracts the "exp" claim of a JWT without verifying it.
// Returns false for opaque tokens or tokens without an expiry.
func Expiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
