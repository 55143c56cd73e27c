package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/store"
	"github.com/aussiebroadwan/idbadge/pkg/cryptox"
	"github.com/aussiebroadwan/idbadge/pkg/idx"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrEmployeeNotFound   = errors.New("employee_not_found")
)

// DefaultTokenTTL bounds how long a minted badge token stays valid.
const DefaultTokenTTL = 12 * time.Hour

// AuthService authenticates employees and mints the bearer tokens the
// badge client carries.
type AuthService struct {
	Store    store.Store
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration
}

// Login verifies the credential pair and returns a signed token plus the
// employee record. Unknown employees and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, userID, password string) (string, domain.Employee, error) {
	emp, err := s.Store.Employees().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Employee{}, ErrInvalidCredentials
		}
		return "", domain.Employee{}, fmt.Errorf("look up employee: %w", err)
	}

	if cryptox.VerifyPassword(password, emp.PasswordHash) != nil {
		return "", domain.Employee{}, ErrInvalidCredentials
	}

	token, err := s.mintToken(emp.UserID)
	if err != nil {
		return "", domain.Employee{}, fmt.Errorf("mint token: %w", err)
	}
	return token, emp, nil
}

// VerifyToken validates a bearer token and returns its subject (the
// employee's login identifier).
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// QrProfile returns the directory record used for the QR badge.
func (s *AuthService) QrProfile(ctx context.Context, userID string) (domain.Employee, error) {
	emp, err := s.Store.Employees().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Employee{}, ErrEmployeeNotFound
		}
		return domain.Employee{}, fmt.Errorf("look up employee: %w", err)
	}
	return emp, nil
}

func (s *AuthService) mintToken(subject string) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        idx.New().String(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
