package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apilab/users-api/internal/apierr"
	"github.com/apilab/users-api/internal/models"
)

// Claims defines the JWT claims structure. The role claim is a snapshot taken
// at login: a role change on the user record does not take effect for an
// outstanding token until the holder logs in again or the token expires.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim as the numeric user id.
func (c *Claims) UserID() int {
	id, _ := strconv.Atoi(c.Subject)
	return id
}

// IsAdmin reports whether the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Service issues and verifies signed access tokens. It is stateless; no
// session record is kept server-side.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service signing with secret, issuing tokens that
// expire after ttl.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue creates a new signed token for the given user.
func (s *Service) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:  user.Role,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string. It fails with
// apierr.TokenExpired for expired tokens and apierr.InvalidToken for anything
// else wrong with the signature or structure.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierr.TokenExpired()
		}
		return nil, apierr.InvalidToken()
	}
	if !token.Valid {
		return nil, apierr.InvalidToken()
	}
	return claims, nil
}
