package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Match statuses returned by the ATS analysis.
const (
	MatchStatusHigh   = "High"
	MatchStatusMedium = "Medium"
	MatchStatusLow    = "Low"
)

// ATSBreakdown holds the five sub-scores of an ATS analysis, each 0-100.
type ATSBreakdown struct {
	TechnicalSkills int `json:"technicalSkills"`
	SoftSkills      int `json:"softSkills"`
	Experience      int `json:"experience"`
	Education       int `json:"education"`
	Communication   int `json:"communication"`
}

// ATSAnalysis is the structured result of matching a resume to a job description.
type ATSAnalysis struct {
	ATSScore        int          `json:"atsScore"`
	MatchStatus     string       `json:"matchStatus"`
	Breakdown       ATSBreakdown `json:"breakdown"`
	MissingKeywords []string     `json:"missingKeywords"`
	Summary         string       `json:"summary"`
	Strengths       []string     `json:"strengths"`
	Weaknesses      []string     `json:"weaknesses"`
	ImprovementPlan string       `json:"improvementPlan"`
}

// UnmarshalJSON accepts fractional scores and rounds them to the nearest integer.
func (b *ATSBreakdown) UnmarshalJSON(data []byte) error {
	var raw struct {
		TechnicalSkills float64 `json:"technicalSkills"`
		SoftSkills      float64 `json:"softSkills"`
		Experience      float64 `json:"experience"`
		Education       float64 `json:"education"`
		Communication   float64 `json:"communication"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = ATSBreakdown{
		TechnicalSkills: roundScore(raw.TechnicalSkills),
		SoftSkills:      roundScore(raw.SoftSkills),
		Experience:      roundScore(raw.Experience),
		Education:       roundScore(raw.Education),
		Communication:   roundScore(raw.Communication),
	}
	return nil
}

// UnmarshalJSON accepts a fractional atsScore and rounds it.
func (a *ATSAnalysis) UnmarshalJSON(data []byte) error {
	type plain ATSAnalysis
	raw := struct {
		*plain
		ATSScore float64 `json:"atsScore"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.ATSScore = roundScore(raw.ATSScore)
	return nil
}

// roundScore rounds half away from zero. Values far outside 0..100 are
// clamped just past the range so Validate still rejects them.
func roundScore(v float64) int {
	return int(math.Round(math.Max(-1, math.Min(101, v))))
}

// Validate checks the analysis against its documented shape.
func (a *ATSAnalysis) Validate() error {
	scores := []struct {
		name  string
		value int
	}{
		{"atsScore", a.ATSScore},
		{"breakdown.technicalSkills", a.Breakdown.TechnicalSkills},
		{"breakdown.softSkills", a.Breakdown.SoftSkills},
		{"breakdown.experience", a.Breakdown.Experience},
		{"breakdown.education", a.Breakdown.Education},
		{"breakdown.communication", a.Breakdown.Communication},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("%w: %s out of range: %d", ErrParse, s.name, s.value)
		}
	}

	switch a.MatchStatus {
	case MatchStatusHigh, MatchStatusMedium, MatchStatusLow:
	default:
		return fmt.Errorf("%w: unknown matchStatus %q", ErrParse, a.MatchStatus)
	}

	if a.Summary == "" {
		return fmt.Errorf("%w: summary is empty", ErrParse)
	}
	return nil
}

// ATSScan records one ATS analysis run by a user.
type ATSScan struct {
	ID             int64
	UserID         int64
	JobDescription string
	ResumeFilename string
	ResumeKey      string // FileStore key of the uploaded resume, empty for pasted text
	Analysis       ATSAnalysis
	CreatedAt      time.Time
}

type ATSScanRepository interface {
	Create(ctx context.Context, scan *ATSScan) error
	GetByID(ctx context.Context, id int64) (*ATSScan, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]ATSScan, error)
}

// FileStore abstracts raw file byte storage.
// The database implementations store BLOBs; the s3 package stores
// objects in an S3-compatible bucket.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
