package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"edudash/internal/model"
)

// DefaultTTL is the fixed validity window of an identity token.
const DefaultTTL = 24 * time.Hour

// Service mints and verifies HS256-signed identity tokens. It keeps no
// per-token state: validity is decided purely by signature and expiry, so
// Verify is safe for concurrent use and rotating the secret invalidates
// every outstanding token at once.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token asserting subject and role, valid from now for the
// service's TTL.
func (s *Service) Issue(subject string, role model.Role) (string, error) {
	now := s.now().UTC()

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// TTL reports the validity window tokens are issued with.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Verify checks signature and expiry. Expired tokens fail with
// ErrTokenExpired; everything else (bad signature, wrong algorithm,
// garbage input, missing subject) fails with ErrTokenInvalid.
func (s *Service) Verify(tokenString string) (model.TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, model.ErrTokenInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, model.ErrTokenExpired
		}
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	subject, _ := claimsMap["sub"].(string)
	roleRaw, _ := claimsMap["role"].(string)
	if subject == "" || !model.ValidRole(model.Role(roleRaw)) {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	claims := model.TokenClaims{
		Subject: subject,
		Role:    model.Role(roleRaw),
	}
	if issuedAt, err := claimsMap.GetIssuedAt(); err == nil && issuedAt != nil {
		claims.IssuedAt = issuedAt.Time
	}
	if expiresAt, err := claimsMap.GetExpirationTime(); err == nil && expiresAt != nil {
		claims.ExpiresAt = expiresAt.Time
	}

	return claims, nil
}
