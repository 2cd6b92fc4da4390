package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/github"
	"github.com/msomdec/careerforge/internal/llm"
	"github.com/msomdec/careerforge/internal/prompt"
)

// ProfileFetcher loads a public GitHub profile and its recent repositories.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*github.Profile, []github.Repo, error)
}

// RoastService roasts GitHub profiles and keeps every roast.
type RoastService struct {
	gen      llm.Generator
	profiles ProfileFetcher
	roasts   domain.GithubRoastRepository
}

func NewRoastService(gen llm.Generator, profiles ProfileFetcher, roasts domain.GithubRoastRepository) *RoastService {
	return &RoastService{gen: gen, profiles: profiles, roasts: roasts}
}

// Roast fetches the profile, generates a roast and stores it. Nothing is
// written when the profile cannot be fetched or the model fails.
func (s *RoastService) Roast(ctx context.Context, userID int64, username string) (*domain.GithubRoast, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	profile, repos, err := s.profiles.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	p, err := prompt.Roast(summarize(username, profile, repos))
	if err != nil {
		return nil, err
	}

	content, err := generate(ctx, s.gen, p)
	if err != nil {
		return nil, err
	}

	roast := &domain.GithubRoast{UserID: userID, Username: username, Content: content}
	if err := s.roasts.Create(ctx, roast); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return roast, nil
}

// Latest returns the user's most recent roast or domain.ErrNotFound.
func (s *RoastService) Latest(ctx context.Context, userID int64) (*domain.GithubRoast, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.roasts.LatestByUser(ctx, userID)
}

func summarize(username string, profile *github.Profile, repos []github.Repo) prompt.GithubSummary {
	summary := prompt.GithubSummary{
		Name:        profile.Name,
		Bio:         profile.Bio,
		Followers:   profile.Followers,
		PublicRepos: profile.PublicRepos,
		Repos:       make([]prompt.RepoSummary, 0, len(repos)),
	}
	if summary.Name == "" {
		summary.Name = username
	}
	if summary.Bio == "" {
		summary.Bio = "No bio"
	}
	for _, r := range repos {
		summary.Repos = append(summary.Repos, prompt.RepoSummary{Name: r.Name, Stars: r.StargazersCount})
	}
	return summary
}
