package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/msomdec/careerforge/internal/document"
	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/llm"
	"github.com/msomdec/careerforge/internal/prompt"
)

// MinJobDescriptionLength is the shortest job description the scanner accepts.
const MinJobDescriptionLength = 10

// ResumeUpload is a resume file received from a form.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ATSService scores resumes against job descriptions.
type ATSService struct {
	gen   llm.Generator
	scans domain.ATSScanRepository
	files domain.FileStore
}

func NewATSService(gen llm.Generator, scans domain.ATSScanRepository, files domain.FileStore) *ATSService {
	return &ATSService{gen: gen, scans: scans, files: files}
}

// Analyze asks the model for an ATS analysis of resumeText against
// jobDescription. Nothing is persisted.
func (s *ATSService) Analyze(ctx context.Context, userID int64, resumeText, jobDescription string) (*domain.ATSAnalysis, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: resume text and job description are required", domain.ErrInvalidInput)
	}

	p, err := prompt.ATS(resumeText, jobDescription)
	if err != nil {
		return nil, err
	}

	raw, err := generate(ctx, s.gen, p)
	if err != nil {
		return nil, err
	}

	var analysis domain.ATSAnalysis
	if err := llm.DecodeJSON(raw, &analysis); err != nil {
		return nil, err
	}
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// ScanResume extracts the text of an uploaded resume, analyzes it and
// records the scan together with the stored file.
func (s *ATSService) ScanResume(ctx context.Context, userID int64, upload ResumeUpload, jobDescription string) (*domain.ATSScan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	jobDescription = strings.TrimSpace(jobDescription)
	if utf8.RuneCountInString(jobDescription) < MinJobDescriptionLength {
		return nil, fmt.Errorf("%w: job description must be at least %d characters", domain.ErrInvalidInput, MinJobDescriptionLength)
	}

	mime := document.DetectMime(upload.ContentType, upload.Filename)
	text, err := document.ExtractResumeText(mime, upload.Data)
	if err != nil {
		return nil, err
	}

	analysis, err := s.Analyze(ctx, userID, text, jobDescription)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("resumes/%d/%s%s", userID, uuid.NewString(), strings.ToLower(filepath.Ext(upload.Filename)))
	if err := s.files.Save(ctx, key, upload.Data); err != nil {
		return nil, fmt.Errorf("%w: save resume: %w", domain.ErrPersistence, err)
	}

	scan := &domain.ATSScan{
		UserID:         userID,
		JobDescription: jobDescription,
		ResumeFilename: filepath.Base(upload.Filename),
		ResumeKey:      key,
		Analysis:       *analysis,
	}
	if err := s.scans.Create(ctx, scan); err != nil {
		// The file is orphaned without its scan row.
		_ = s.files.Delete(ctx, key)
		return nil, fmt.Errorf("%w: create scan: %w", domain.ErrPersistence, err)
	}
	return scan, nil
}

// History returns the user's most recent scans, newest first.
func (s *ATSService) History(ctx context.Context, userID int64, limit int) ([]domain.ATSScan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.scans.ListByUser(ctx, userID, limit)
}
