package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes a bearer token without verifying it. The server
// remains the authority on validity; introspection only lets a client
// report who it believes it is and whether the token has already lapsed.
type TokenInfo struct {
	// Subject is the sub claim, usually the account identifier.
	Subject string

	// IssuedAt is the iat claim, zero when absent.
	IssuedAt time.Time

	// ExpiresAt is the exp claim, zero when absent.
	ExpiresAt time.Time

	// Claims holds all claims as decoded.
	Claims map[string]any
}

// Expired reports whether the token had lapsed at the given instant.
// Tokens without an exp claim never report expired.
func (i *TokenInfo) Expired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return now.After(i.ExpiresAt)
}

// Introspect parses a JWT-shaped bearer token without signature
// verification. Returns ErrTokenMalformed when the token is not a JWT.
func Introspect(token string) (*TokenInfo, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	info := &TokenInfo{
		Claims: make(map[string]any, len(claims)),
	}
	for k, v := range claims {
		info.Claims[k] = v
	}

	if sub, ok := claims["sub"].(string); ok {
		info.Subject = sub
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := claims["iat"].(float64); ok {
		info.IssuedAt = time.Unix(int64(iat), 0)
	}

	return info, nil
}
