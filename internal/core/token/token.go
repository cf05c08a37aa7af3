// Package token implements the portal's bearer credential: a signed, time-boxed
// JWT carrying the subset of the user needed for authorization decisions.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

const defaultTTL = 7 * 24 * time.Hour

// Claims is the identity fragment embedded in every token. It is exactly what
// the token asserts; authorization against the store happens elsewhere.
type Claims struct {
	UserID string
	Email  string
	Role   domain.Role
}

// Codec mints and verifies HS256 bearer tokens with a fixed TTL.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. A non-positive ttl falls back to 7 days.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// SetNowFunc overrides the codec's clock. Test hook.
func (c *Codec) SetNowFunc(now func() time.Time) {
	c.now = now
}

// Issue signs a token asserting the user's id, email, and role, expiring
// ttl from now.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := c.now().UTC()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify validates the signature and expiry and returns the embedded claims.
// It fails closed: any parse error, signature mismatch, unexpected signing
// method, missing claim, or past expiry yields domain.ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(c.now))
	if err != nil || !tkn.Valid {
		return Claims{}, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if id == "" || email == "" || !domain.Role(role).Valid() {
		return Claims{}, domain.ErrInvalidToken
	}

	return Claims{UserID: id, Email: email, Role: domain.Role(role)}, nil
}
