// Package token issues and verifies the signed access tokens that carry a
// user's identity between requests. Tokens are self-contained: subject and
// roles are embedded, so verification needs no directory read.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL bounds how long an issued token is honored. Role changes
// only take effect once the token expires and is reissued.
const AccessTokenTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("token is invalid or expired")

type Claims struct {
	jwt.RegisteredClaims
	Roles []domain.Role `json:"roles"`
}

// Principal is the authenticated identity for one request, derived from a
// verified token and discarded when the request ends.
type Principal struct {
	SubjectID string
	Roles     []domain.Role
	RawToken  string
}

// HasAnyRole reports whether the principal holds at least one required role.
func (p *Principal) HasAnyRole(required []domain.Role) bool {
	return domain.HasAnyRole(p.Roles, required)
}

// Service signs and verifies access tokens with a process-wide HS256 secret,
// loaded once at startup and immutable afterwards.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte) *Service {
	return &Service{secret: secret, ttl: AccessTokenTTL, now: time.Now}
}

// Issue signs a token embedding the user's id and roles.
func (s *Service) Issue(userID string, roles []domain.Role) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Roles: roles,
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and builds the request principal.
// Every failure mode collapses to ErrInvalidToken.
func (s *Service) Verify(rawToken string) (*Principal, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{
		SubjectID: claims.Subject,
		Roles:     claims.Roles,
		RawToken:  rawToken,
	}, nil
}
