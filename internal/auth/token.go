package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/budgetwise/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of a token when none is configured.
const DefaultTokenTTL = 24 * time.Hour

var (
	ErrNotConfigured = errors.New("token signing is not configured")
	ErrTokenInvalid  = errors.New("the token is invalid or expired")
	ErrSecretMissing = errors.New("the token secret must not be empty")
)

// Claims are the claims of a session token.
type Claims struct {
	UserID       uuid.UUID   `json:"uid"`
	Role         models.Role `json:"role"`
	TokenVersion int         `json:"tv"`
	jwt.RegisteredClaims
}

type issuer struct {
	secret []byte
	ttl    time.Duration
}

var (
	mu      sync.RWMutex
	current *issuer
)

// Configure sets the secret and lifetime for all tokens issued and parsed afterwards.
func Configure(secret string, ttl time.Duration) error {
	if secret == "" {
		return ErrSecretMissing
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	mu.Lock()
	defer mu.Unlock()
	current = &issuer{secret: []byte(secret), ttl: ttl}
	return nil
}

func get() (*issuer, error) {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil, ErrNotConfigured
	}
	return current, nil
}

// Issue returns a signed token for the user and its expiry.
func Issue(u models.User) (string, time.Time, error) {
	i, err := get()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expires := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:       u.ID,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies the signature and expiry of the token and returns its claims.
func Parse(token string) (*Claims, error) {
	i, err := get()
	if err != nil {
		return nil, err
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &claims, nil
}
