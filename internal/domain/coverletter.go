package domain

import (
	"context"
	"time"
)

const CoverLetterStatusCompleted = "completed"

// CoverLetter is the single current cover letter draft of a user.
type CoverLetter struct {
	ID             int64
	UserID         int64
	Content        string // markdown
	CompanyName    string
	JobTitle       string
	JobDescription string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CoverLetterRepository defines persistence operations for cover letters.
type CoverLetterRepository interface {
	// Upsert writes letter as the user's draft. An existing draft keeps its
	// ID and CreatedAt; the letter is updated in place with the stored values.
	Upsert(ctx context.Context, letter *CoverLetter) error
	GetByUser(ctx context.Context, userID int64) (*CoverLetter, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}
