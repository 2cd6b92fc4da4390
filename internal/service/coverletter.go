package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/llm"
	"github.com/msomdec/careerforge/internal/prompt"
)

// CoverLetterRequest is the form input for a cover letter. Name and Email
// come from the user's profile; Skills is optional.
type CoverLetterRequest struct {
	Name           string
	Email          string
	Skills         string
	CompanyName    string
	JobTitle       string
	JobDescription string
}

// CoverLetterService generates and keeps each user's current cover letter draft.
type CoverLetterService struct {
	gen     llm.Generator
	letters domain.CoverLetterRepository
}

func NewCoverLetterService(gen llm.Generator, letters domain.CoverLetterRepository) *CoverLetterService {
	return &CoverLetterService{gen: gen, letters: letters}
}

// Generate writes a new letter and stores it as the user's draft,
// replacing any previous one.
func (s *CoverLetterService) Generate(ctx context.Context, userID int64, req CoverLetterRequest) (*domain.CoverLetter, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.JobDescription = strings.TrimSpace(req.JobDescription)
	if req.CompanyName == "" || req.JobTitle == "" || req.JobDescription == "" {
		return nil, fmt.Errorf("%w: company name, job title, and job description are required", domain.ErrInvalidInput)
	}

	p, err := prompt.CoverLetter(prompt.CoverLetterInput(req))
	if err != nil {
		return nil, err
	}

	content, err := generate(ctx, s.gen, p)
	if err != nil {
		return nil, err
	}

	letter := &domain.CoverLetter{
		UserID:         userID,
		Content:        content,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Status:         domain.CoverLetterStatusCompleted,
	}
	if err := s.letters.Upsert(ctx, letter); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return letter, nil
}

// Current returns the user's draft or domain.ErrNotFound.
func (s *CoverLetterService) Current(ctx context.Context, userID int64) (*domain.CoverLetter, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.letters.GetByUser(ctx, userID)
}
