// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	authModel "reflectify_backend/internals/features/users/auth/model"
)

var (
	ErrMissingSecret = errors.New("missing JWT secret")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

// toleransi jam server beda sedikit
const expirySkew = 30 * time.Second

// Claims access token admin.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"user_name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenService{secret: []byte(secret), TTL: ttl, Issuer: "reflectify", Now: time.Now}
}

// Issue menandatangani access token HS256 untuk user.
func (s *TokenService) Issue(u *authModel.AdminUserModel) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}
	now := s.Now().UTC()
	exp := now.Add(s.TTL)
	claims := Claims{
		UserID: u.AdminUserID.String(),
		Email:  u.AdminUserEmail,
		Name:   u.AdminUserName,
		Role:   u.AdminUserRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   u.AdminUserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse memverifikasi signature lalu exp (pakai s.Now supaya bisa dites).
func (s *TokenService) Parse(raw string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: no exp", ErrTokenInvalid)
	}
	if s.Now().UTC().After(claims.ExpiresAt.Time.Add(expirySkew)) {
		return nil, ErrTokenExpired
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrTokenInvalid)
	}
	return claims, nil
}

// Hash: HMAC-SHA256(raw) hex, yang disimpan di token_blacklist.
func (s *TokenService) Hash(raw string) string {
	m := hmac.New(sha256.New, s.secret)
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}
