package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of both token kinds.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type tokenKind struct {
	secret []byte
	ttl    time.Duration
}

// JWTService issues and validates access and refresh tokens. Each kind has
// its own secret so one can never be accepted as the other.
type JWTService struct {
	access  tokenKind
	refresh tokenKind
	now     func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		access:  tokenKind{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessExpiration},
		refresh: tokenKind{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshExpiration},
		now:     time.Now,
	}
}

func (s *JWTService) AccessTTL() time.Duration  { return s.access.ttl }
func (s *JWTService) RefreshTTL() time.Duration { return s.refresh.ttl }

func (s *JWTService) GenerateAccessToken(userID string) (string, error) {
	return s.sign(s.access, userID)
}

func (s *JWTService) GenerateRefreshToken(userID string) (string, error) {
	return s.sign(s.refresh, userID)
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.parse(s.access, tokenString)
}

func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.parse(s.refresh, tokenString)
}

func (s *JWTService) sign(kind tokenKind, userID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kind.ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(kind.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) parse(kind tokenKind, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return kind.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// HashToken is the digest stored for the live refresh token. bcrypt is not
// usable here because it truncates input at 72 bytes.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenMatches compares a presented token against a stored digest in
// constant time. An empty digest never matches.
func TokenMatches(token, digest string) bool {
	if digest == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(digest)) == 1
}
