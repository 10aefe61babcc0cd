package detect

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"
)

// DefaultGitHubRateLimit is the number of GitHub API requests allowed per second.
const DefaultGitHubRateLimit = 5

// GitHubProbe queries the GitHub API for settings that are not visible in the repository tree.
type GitHubProbe struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	owner       string
	name        string
}

var _ BranchProtectionProbe = (*GitHubProbe)(nil)

// NewGitHubProbe creates a rate limited probe for the "owner/name" repository.
// An empty token uses unauthenticated requests.
func NewGitHubProbe(token, ownerRepo string, rateLimit int) (*GitHubProbe, error) {
	owner, name, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("github repo must be in owner/name form, got %q", ownerRepo)
	}
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if rateLimit <= 0 {
		rateLimit = DefaultGitHubRateLimit
	}
	return &GitHubProbe{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		owner:       owner,
		name:        name,
	}, nil
}

// WithBaseURL points the probe at another API endpoint, such as GitHub Enterprise.
func (p *GitHubProbe) WithBaseURL(baseURL string) (*GitHubProbe, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
	}
	p.client.BaseURL = u
	return p, nil
}

// BranchProtected reports whether the default branch has protection rules.
func (p *GitHubProbe) BranchProtected(ctx context.Context) (bool, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limiter: %w", err)
	}
	repo, _, err := p.client.Repositories.Get(ctx, p.owner, p.name)
	if err != nil {
		return false, fmt.Errorf("fetch repository: %w", err)
	}
	branch := repo.GetDefaultBranch()
	if branch == "" {
		return false, nil
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limiter: %w", err)
	}
	_, _, err = p.client.Repositories.GetBranchProtection(ctx, p.owner, p.name, branch)
	if errors.Is(err, github.ErrBranchNotProtected) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch branch protection: %w", err)
	}
	return true, nil
}
