// Package usecase implements the auth feature's business logic.
package usecase

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"ashare_analyst/internal/feature/auth/domain"
)

// Credentials holds the single service credential that may call the
// analysis tools: a client id and the bcrypt hash of its secret.
type Credentials struct {
	ClientID   string
	SecretHash string
}

// LoadCredentials loads the service credentials from environment
// variables AUTH_CLIENT_ID and AUTH_SECRET_BCRYPT.
func LoadCredentials() Credentials {
	return Credentials{
		ClientID:   os.Getenv("AUTH_CLIENT_ID"),
		SecretHash: os.Getenv("AUTH_SECRET_BCRYPT"),
	}
}

// JWTGenerator generates signed tokens.
// Following Go convention: interfaces are defined by the consumer.
type JWTGenerator interface {
	GenerateToken(clientID string) (string, error)
}

// authUsecase validates the service credential and issues tokens.
type authUsecase struct {
	creds        Credentials
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(creds Credentials, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{creds: creds, jwtGenerator: jwtGenerator}
}

// dummyHash keeps the bcrypt comparison on the failure path so a wrong
// client id costs the same time as a wrong secret.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login authenticates the client and returns a signed JWT.
func (u *authUsecase) Login(_ context.Context, clientID, secret string) (string, error) {
	if u.creds.ClientID == "" || u.creds.SecretHash == "" {
		return "", fmt.Errorf("auth credentials not configured")
	}

	hash := dummyHash
	if clientID == u.creds.ClientID {
		hash = u.creds.SecretHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))

	if clientID != u.creds.ClientID || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(clientID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
