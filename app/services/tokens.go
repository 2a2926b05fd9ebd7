package services

import (
	"errors"
	"time"

	"inkwell/app/models"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims are the claims carried by a bearer credential.
type tokenClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer credentials.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer. Tokens expire ttl after issue.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for user.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", storageError(err)
	}
	return signed, nil
}

// Parse verifies token and returns the identity it was issued for. The
// role in the token is advisory; AuthService.Authenticate reloads it.
func (t *TokenIssuer) Parse(token string) (Identity, error) {
	if token == "" {
		return Identity{}, unauthenticatedError("Not authorized to access this route")
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return Identity{}, &Error{Kind: KindUnauthenticated, Message: "Not authorized to access this route", Err: err}
	}
	if claims.Subject == "" {
		return Identity{}, unauthenticatedError("Not authorized to access this route")
	}
	return Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
