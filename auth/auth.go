// Package auth issues and verifies the bearer tokens that identify API callers.
package auth

import (
	"net/http"
	"strings"
	"time"

	"career-guide/errors"
	"career-guide/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.E(errors.Unauthorized, "Token is not valid")

// Identity is what an authenticated request carries to the handlers.
type Identity struct {
	UserID string
	Role   models.Role
}

// Authenticator turns a request into an Identity or rejects it with an
// Unauthorized error.
type Authenticator interface {
	Authenticate(r *http.Request) (Identity, error)
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies HS256 bearer tokens.
type JWTAuthenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTAuthenticator(secret string, ttl time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), ttl: ttl}
}

func (a *JWTAuthenticator) MakeToken(id Identity) (string, error) {
	now := time.Now()
	c := Claims{
		UserID: id.UserID,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
}

func (a *JWTAuthenticator) ParseToken(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, errors.E(errors.Unauthorized, "Token is not valid", err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.UserID == "" {
		return nil, ErrBadToken
	}
	return c, nil
}

// Authenticate reads "Authorization: Bearer <jwt>".
func (a *JWTAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if raw == "" {
		return Identity{}, errors.E(errors.Unauthorized, "No token, authorization denied")
	}
	c, err := a.ParseToken(raw)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: c.UserID, Role: c.Role}, nil
}
