// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/naka-gawa/self-reposcope/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchViewerLogin returns the login of the account the token belongs to.
	FetchViewerLogin(ctx context.Context) (string, error)
	// FetchRepositories lists every repository the account can see, across all pages.
	FetchRepositories(ctx context.Context) ([]domain.RepositoryRecord, error)
	// FetchLanguages returns the language byte counts of one repository
	// in the order GitHub reports them.
	FetchLanguages(ctx context.Context, owner, repo string) (*domain.LanguageBytes, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	limiter       *rate.Limiter
	logger        *log.Logger
}

// viewerQuery asks GraphQL who the token belongs to.
type viewerQuery struct {
	Viewer struct {
		Login githubv4.String
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// requestsPerSecond paces REST calls on top of GitHub's own rate limiting.
func NewGitHubGateway(token string, requestsPerSecond float64, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		limiter:       rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchViewerLogin(ctx context.Context) (string, error) {
	var q viewerQuery
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return "", fmt.Errorf("failed to query authenticated user: %w", err)
	}
	login := string(q.Viewer.Login)
	if login == "" {
		return "", fmt.Errorf("failed to query authenticated user: empty login")
	}
	g.logger.Debug("Resolved authenticated user", "login", login)
	return login, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context) ([]domain.RepositoryRecord, error) {
	g.logger.Debug("Fetching repositories using REST API...")
	opts := &github.RepositoryListByAuthenticatedUserOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var records []domain.RepositoryRecord
	for {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		repos, resp, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
		}
		for _, r := range repos {
			records = append(records, toRecord(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of repositories...", "page", opts.Page)
	}
	g.logger.Debug("Completed fetching repositories.", "count", len(records))
	return records, nil
}

func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, repo string) (*domain.LanguageBytes, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	// Repositories.ListLanguages decodes into a Go map and loses GitHub's ordering.
	u := fmt.Sprintf("repos/%v/%v/languages", owner, repo)
	req, err := g.restClient.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build languages request for %s/%s: %w", owner, repo, err)
	}
	langs := orderedmap.New[string, int64]()
	if _, err := g.restClient.Do(ctx, req, langs); err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s/%s: %w", owner, repo, err)
	}
	for pair := langs.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value < 0 {
			return nil, fmt.Errorf("negative byte count for %s in %s/%s", pair.Key, owner, repo)
		}
	}
	return langs, nil
}

func toRecord(r *github.Repository) domain.RepositoryRecord {
	return domain.RepositoryRecord{
		Name:       r.GetName(),
		OwnerLogin: r.GetOwner().GetLogin(),
		OwnerKind:  domain.OwnerKind(r.GetOwner().GetType()),
		Fork:       r.GetFork(),
		Private:    r.GetPrivate(),
		Language:   r.GetLanguage(),
	}
}
