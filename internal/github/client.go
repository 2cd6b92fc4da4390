// Package github reads public profile data from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://api.github.com"

// usernamePattern follows GitHub's rules: alphanumerics and single hyphens,
// at most 39 characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// ValidUsername reports whether name is a syntactically valid GitHub login.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// HTTPError wraps a non-2xx status from the API.
type HTTPError struct {
	StatusCode  int
	RateLimited bool
	RetryAfter  time.Duration // from Retry-After or X-RateLimit-Reset, zero if absent
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("github api: HTTP %d", e.StatusCode)
}

// Is reports a rate-limited response as domain.ErrRateLimited.
func (e *HTTPError) Is(target error) bool {
	return target == domain.ErrRateLimited && e.RateLimited
}

// Profile is the subset of the user resource the roast uses.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	PublicRepos int    `json:"public_repos"`
}

// Repo is the subset of a repository resource the roast uses.
type Repo struct {
	Name            string `json:"name"`
	StargazersCount int    `json:"stargazers_count"`
}

// Client fetches public profiles. It is unauthenticated unless a token is set.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a Client. An empty baseURL selects the public API.
func NewClient(baseURL, token string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, client: client}
}

// FetchProfile retrieves the profile and its ten most recently updated
// repositories concurrently. A missing profile returns domain.ErrProfileNotFound.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, []Repo, error) {
	if !ValidUsername(username) {
		return nil, nil, fmt.Errorf("%w: invalid github username %q", domain.ErrInvalidInput, username)
	}

	var (
		profile    Profile
		repos      []Repo
		profileErr error
		reposErr   error
	)
	escaped := url.PathEscape(username)

	// Both requests run to completion so a missing profile is reported
	// as such even when the repos request fails first.
	var g errgroup.Group
	g.Go(func() error {
		profileErr = c.getJSON(ctx, "/users/"+escaped, &profile)
		return nil
	})
	g.Go(func() error {
		reposErr = c.getJSON(ctx, "/users/"+escaped+"/repos?sort=updated&per_page=10", &repos)
		return nil
	})
	g.Wait()

	if profileErr != nil {
		var httpErr *HTTPError
		if errors.As(profileErr, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, username)
		}
		return nil, nil, fmt.Errorf("fetch profile: %w", profileErr)
	}
	if reposErr != nil {
		return nil, nil, fmt.Errorf("fetch repos: %w", reposErr)
	}

	return &profile, repos, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "careerforge")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp, time.Now())
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// newHTTPError classifies a failed response. GitHub signals an exhausted
// quota with 429, or with 403 and X-RateLimit-Remaining: 0.
func newHTTPError(resp *http.Response, now time.Time) *HTTPError {
	e := &HTTPError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		e.RateLimited = true
	case http.StatusForbidden:
		e.RateLimited = resp.Header.Get("X-RateLimit-Remaining") == "0" || e.RetryAfter > 0
	}
	if e.RateLimited && e.RetryAfter == 0 {
		e.RetryAfter = parseRateLimitReset(resp.Header.Get("X-RateLimit-Reset"), now)
	}
	return e
}

// parseRateLimitReset converts an X-RateLimit-Reset epoch into a wait from now.
func parseRateLimitReset(value string, now time.Time) time.Duration {
	epoch, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	wait := time.Unix(epoch, 0).Sub(now)
	if wait <= 0 {
		return 0
	}
	return wait.Round(time.Second)
}

// parseRetryAfter parses a Retry-After header in seconds. Returns zero if
// absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
