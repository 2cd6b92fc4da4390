package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/llm"
	"github.com/msomdec/careerforge/internal/prompt"
)

const (
	minThoughtLength = 5
	imageBaseURL     = "https://pollinations.ai/p/"
	imageStyle       = ", corporate, professional photography, 4k, linkedin style"
)

// LinkedInPost is a generated post and the URL of its illustration.
type LinkedInPost struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// LinkedInService turns a short thought into a post. Posts are not stored.
type LinkedInService struct {
	gen  llm.Generator
	seed func() int
}

func NewLinkedInService(gen llm.Generator) *LinkedInService {
	return &LinkedInService{gen: gen, seed: func() int { return rand.IntN(1000) }}
}

func (s *LinkedInService) Generate(ctx context.Context, userID int64, thought string) (*LinkedInPost, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	thought = strings.TrimSpace(thought)
	if utf8.RuneCountInString(thought) < minThoughtLength {
		return nil, fmt.Errorf("%w: please input something substantial", domain.ErrInvalidInput)
	}

	p, err := prompt.LinkedInPost(thought)
	if err != nil {
		return nil, err
	}

	content, err := generate(ctx, s.gen, p)
	if err != nil {
		return nil, err
	}

	return &LinkedInPost{Content: content, ImageURL: ImageURL(thought, s.seed())}, nil
}

// ImageURL returns the image generation URL for a thought.
func ImageURL(thought string, seed int) string {
	return fmt.Sprintf("%s%s?width=1024&height=1024&seed=%d&model=flux",
		imageBaseURL, url.PathEscape(thought+imageStyle), seed)
}
