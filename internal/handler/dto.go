package handler

import (
	"time"

	"github.com/msomdec/careerforge/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		ImageURL:    u.ImageURL,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// CoverLetterDTO is the JSON representation of a cover letter draft.
type CoverLetterDTO struct {
	ID             int64  `json:"id"`
	Content        string `json:"content"`
	CompanyName    string `json:"companyName"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

func toCoverLetterDTO(l *domain.CoverLetter) CoverLetterDTO {
	return CoverLetterDTO{
		ID:             l.ID,
		Content:        l.Content,
		CompanyName:    l.CompanyName,
		JobTitle:       l.JobTitle,
		JobDescription: l.JobDescription,
		Status:         l.Status,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
}

// RoastDTO is the JSON representation of a GitHub roast.
type RoastDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func toRoastDTO(r *domain.GithubRoast) RoastDTO {
	return RoastDTO{
		ID:        r.ID,
		Username:  r.Username,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// NegotiationDTO is the session state returned after each turn.
type NegotiationDTO struct {
	Offer   int                      `json:"offer"`
	History []domain.Turn            `json:"history"`
	Status  domain.NegotiationStatus `json:"status"`
}

func toNegotiationDTO(s *domain.NegotiationSession) NegotiationDTO {
	return NegotiationDTO{Offer: s.Offer, History: s.History, Status: s.Status()}
}
