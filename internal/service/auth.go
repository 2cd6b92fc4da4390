package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/careerforge/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthService is the built-in identity provider. It issues and validates
// HS256 tokens and resolves token subjects to application users.
type AuthService struct {
	users      domain.UserRepository
	accounts   domain.LocalAccountRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, accounts domain.LocalAccountRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		accounts:   accounts,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a local account and its application user.
func (s *AuthService) Register(ctx context.Context, email, displayName, password, confirmPassword string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)

	if email == "" || displayName == "" || password == "" {
		return nil, fmt.Errorf("%w: email, display name, and password are required", domain.ErrInvalidInput)
	}

	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.LocalAccount{
		SubjectID:    uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.EnsureUser(ctx, accountIdentity(account))
}

// Login verifies credentials and returns a signed token for the account's subject.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.IssueToken(accountIdentity(account))
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}

	return token, nil
}

// IssueToken signs a token carrying the identity claims.
func (s *AuthService) IssueToken(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     identity.Subject,
		"email":   identity.Email,
		"name":    identity.Name,
		"picture": identity.ImageURL,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a token string and returns its identity claims.
func (s *AuthService) ValidateToken(tokenString string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	identity := domain.Identity{Subject: sub}
	identity.Email, _ = claims["email"].(string)
	identity.Name, _ = claims["name"].(string)
	identity.ImageURL, _ = claims["picture"].(string)
	return identity, nil
}

// EnsureUser returns the application user for identity, creating it on the
// first authenticated request.
func (s *AuthService) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.EnsureBySubject(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func accountIdentity(a *domain.LocalAccount) domain.Identity {
	return domain.Identity{Subject: a.SubjectID, Email: a.Email, Name: a.DisplayName}
}
