// Package token issues and verifies signed session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
// Signature failure, malformed structure and expiry all collapse into this
// single error so callers cannot distinguish why a token was rejected.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded payload of a verified session token.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies compact, self-contained session tokens.
// Tokens are stateless: validity is fully determined by the signed contents
// plus current time, with no server-side session store.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec with the provided signing secret and token lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed HS256 token carrying the subject id, email,
// issued-at and expiry claims.
func (c *Codec) Issue(userID, email string) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns the decoded
// claims only if both pass. Every failure mode returns ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; rejects "none" and asymmetric algorithm confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}
	iat, err := mapClaims.GetIssuedAt()
	if err != nil || iat == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    sub,
		Email:     email,
		IssuedAt:  iat.Time,
		ExpiresAt: exp.Time,
	}, nil
}
