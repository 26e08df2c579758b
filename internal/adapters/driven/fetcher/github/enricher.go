package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// Ensure Enricher implements the interface.
var _ driven.PreviewFetcher = (*Enricher)(nil)

const (
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 10 * time.Second

	// DefaultRate keeps unauthenticated use inside 60 requests per hour.
	DefaultRate = 1.0 / 60

	// AuthenticatedRate is ~1.2 req/sec, below the 5000/hour quota.
	AuthenticatedRate = 1.2
)

// reservedOwners are top-level paths on github.com that are not users.
var reservedOwners = map[string]bool{
	"about": true, "apps": true, "collections": true, "explore": true,
	"features": true, "login": true, "marketplace": true, "notifications": true,
	"orgs": true, "pricing": true, "settings": true, "site": true,
	"sponsors": true, "topics": true, "trending": true,
}

// Config configures an Enricher.
type Config struct {
	// Token authenticates API calls. Optional.
	Token string

	// BaseURL overrides the API endpoint. Optional.
	BaseURL string

	// Client overrides the HTTP client. Optional; ignored when Token is set.
	Client *http.Client
}

// Enricher replaces scraped repository metadata with API data.
type Enricher struct {
	next    driven.PreviewFetcher
	client  *gh.Client
	limiter *rate.Limiter
}

// NewEnricher wraps next.
func NewEnricher(next driven.PreviewFetcher, cfg Config) (*Enricher, error) {
	httpClient := cfg.Client
	limit := rate.Limit(DefaultRate)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		limit = rate.Limit(AuthenticatedRate)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = DefaultTimeout
	}

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = base
	}

	return &Enricher{
		next:    next,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Fetch runs the wrapped fetcher, then refines repository previews.
func (e *Enricher) Fetch(ctx context.Context, text string, timeout time.Duration) domain.PreviewData {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data := e.next.Fetch(ctx, text, timeout)

	owner, repo, ok := RepoFromLink(data.Link)
	if !ok {
		return data
	}

	// Lookups over quota are skipped, not delayed.
	if !e.limiter.Allow() {
		logger.Debug("GitHub lookup for %s/%s skipped: rate limited", owner, repo)
		return data
	}

	r, _, err := e.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		logger.Debug("GitHub lookup for %s/%s failed: %v", owner, repo, err)
		return data
	}

	data.Title = r.GetFullName()
	data.Description = describe(r)
	logger.Debug("GitHub lookup for %s/%s succeeded", owner, repo)
	return data
}

// describe summarises a repository on one line.
func describe(r *gh.Repository) string {
	parts := make([]string, 0, 3)
	if d := strings.TrimSpace(r.GetDescription()); d != "" {
		parts = append(parts, d)
	}
	if lang := r.GetLanguage(); lang != "" {
		parts = append(parts, lang)
	}
	parts = append(parts, fmt.Sprintf("★ %d", r.GetStargazersCount()))
	return strings.Join(parts, " · ")
}

// RepoFromLink returns the owner and repository of a github.com repository
// link, including links to pages inside the repository.
func RepoFromLink(link string) (owner, repo string, ok bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" {
		return "", "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", false
	}
	if reservedOwners[strings.ToLower(segments[0])] {
		return "", "", false
	}
	return segments[0], strings.TrimSuffix(segments[1], ".git"), true
}
