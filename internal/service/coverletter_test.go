package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/service"
)

func TestCoverLetterService_GenerateTwiceKeepsOneDraft(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "sub-letter")
	gen := &fakeGenerator{replies: []string{"Dear Acme,\n\nFirst.", "Dear Globex,\n\nSecond."}}
	svc := service.NewCoverLetterService(gen, db.CoverLetters())
	ctx := context.Background()

	first, err := svc.Generate(ctx, user.ID, service.CoverLetterRequest{
		CompanyName: "Acme", JobTitle: "Engineer", JobDescription: "Build APIs",
	})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	second, err := svc.Generate(ctx, user.ID, service.CoverLetterRequest{
		Name: "Jane", CompanyName: "Globex", JobTitle: "Staff Engineer", JobDescription: "Lead platform work",
	})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected the draft ID %d to be kept, got %d", first.ID, second.ID)
	}

	count, err := db.CoverLetters().CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cover letter, got %d", count)
	}

	current, err := svc.Current(ctx, user.ID)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.CompanyName != "Globex" || current.Content != "Dear Globex,\n\nSecond." {
		t.Fatalf("unexpected draft: %+v", current)
	}

	if !strings.Contains(gen.prompts[0], "Candidate") {
		t.Fatal("first prompt should fall back to Candidate for the name")
	}
	if !strings.Contains(gen.prompts[1], "Jane") {
		t.Fatal("second prompt should embed the name")
	}
}

func TestCoverLetterService_RequiredFields(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "sub-required")
	gen := &fakeGenerator{replies: []string{"letter"}}
	svc := service.NewCoverLetterService(gen, db.CoverLetters())

	_, err := svc.Generate(context.Background(), user.ID, service.CoverLetterRequest{CompanyName: "Acme", JobTitle: "Engineer"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gen.calls() != 0 {
		t.Fatal("model must not be called")
	}
}

func TestCoverLetterService_ModelFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "sub-fail")
	svc := service.NewCoverLetterService(&fakeGenerator{err: errors.New("boom")}, db.CoverLetters())
	ctx := context.Background()

	_, err := svc.Generate(ctx, user.ID, service.CoverLetterRequest{CompanyName: "Acme", JobTitle: "Eng", JobDescription: "JD"})
	if !errors.Is(err, domain.ErrUpstreamModel) {
		t.Fatalf("expected ErrUpstreamModel, got %v", err)
	}

	if _, err := svc.Current(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no draft, got %v", err)
	}
}
