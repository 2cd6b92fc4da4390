package domain

import (
	"context"
	"time"
)

// GithubRoast is one generated roast of a GitHub profile. Rows accumulate;
// the most recent one is the user's current roast.
type GithubRoast struct {
	ID        int64
	UserID    int64
	Username  string
	Content   string // markdown
	CreatedAt time.Time
}

type GithubRoastRepository interface {
	Create(ctx context.Context, roast *GithubRoast) error
	LatestByUser(ctx context.Context, userID int64) (*GithubRoast, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]GithubRoast, error)
}
