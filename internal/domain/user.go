package domain

import (
	"context"
	"time"
)

// User is the application record for an identity-provider subject.
// It is created on the first authenticated request and never deleted.
type User struct {
	ID          int64
	SubjectID   string // "sub" claim issued by the identity provider
	DisplayName string
	Email       string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Identity is the verified claim set carried by an auth token.
type Identity struct {
	Subject  string
	Email    string
	Name     string
	ImageURL string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetBySubject(ctx context.Context, subject string) (*User, error)
	// EnsureBySubject returns the user for identity.Subject, creating it from
	// the identity claims when absent. Safe under concurrent first requests.
	EnsureBySubject(ctx context.Context, identity Identity) (*User, error)
}

// LocalAccount holds credentials for the built-in identity provider.
type LocalAccount struct {
	ID           int64
	SubjectID    string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// LocalAccountRepository defines persistence operations for local accounts.
type LocalAccountRepository interface {
	Create(ctx context.Context, account *LocalAccount) error
	GetByEmail(ctx context.Context, email string) (*LocalAccount, error)
}
