package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/careerforge/internal/domain"
)

func TestCoverLetterRepository_UpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := db.CoverLetters()
	ctx := context.Background()
	user := createTestUser(t, db, "sub-cl")

	first := &domain.CoverLetter{
		UserID:         user.ID,
		Content:        "Dear Acme",
		CompanyName:    "Acme",
		JobTitle:       "Engineer",
		JobDescription: "Build things",
		Status:         domain.CoverLetterStatusCompleted,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second := &domain.CoverLetter{
		UserID:         user.ID,
		Content:        "Dear Globex",
		CompanyName:    "Globex",
		JobTitle:       "Staff Engineer",
		JobDescription: "Build more things",
		Status:         domain.CoverLetterStatusCompleted,
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected ID %d to be kept, got %d", first.ID, second.ID)
	}

	count, err := repo.CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cover letter, got %d", count)
	}

	got, err := repo.GetByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if got.CompanyName != "Globex" || got.Content != "Dear Globex" {
		t.Fatalf("expected latest content, got %+v", got)
	}
}

func TestCoverLetterRepository_GetByUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "sub-none")

	_, err := db.CoverLetters().GetByUser(context.Background(), user.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
