// Package gateway provides a gateway to the GitHub REST API,
// turning its responses into domain values.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"

	"github.com/naka-gawa/github-dashboard/internal/config"
	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// commitActivityWeeks is how many trailing weeks of commit activity are kept.
const commitActivityWeeks = 4

// Fetcher defines the behavior of a gateway for fetching dashboard data from GitHub.
type Fetcher interface {
	// ResolveRepository turns a search term into one repository. It returns
	// ErrRepositoryNotFound when nothing matches and a *TransportError when
	// GitHub could not be reached or answered badly.
	ResolveRepository(ctx context.Context, term string) (*domain.Repository, error)
	// FetchLanguages never fails; on error the mix is empty and degraded.
	FetchLanguages(ctx context.Context, owner, name string) domain.Enrichment[domain.LanguageMix]
	// FetchCommitActivity never fails; on error the sequence is empty and degraded.
	FetchCommitActivity(ctx context.Context, owner, name string) domain.Enrichment[[]domain.WeeklyCommitActivity]
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient   *github.Client
	defaultOwner string
	defaultName  string
	logger       zerolog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Requests are unauthenticated. Secondary rate limits are detected and logged
// but never waited out.
func NewGitHubGateway(cfg *config.Config, logger zerolog.Logger) (Fetcher, error) {
	owner, name, err := config.ParseRepository(cfg.DefaultRepository)
	if err != nil {
		return nil, fmt.Errorf("invalid default repository: %w", err)
	}

	baseURL, err := parseBaseURL(cfg.APIURL)
	if err != nil {
		return nil, err
	}

	onLimit := func(cbCtx *github_ratelimit.CallbackContext) {
		event := logger.Warn()
		if cbCtx.Request != nil {
			event = event.Str("url", cbCtx.Request.URL.String())
		}
		if cbCtx.SleepUntil != nil {
			event = event.Time("until", *cbCtx.SleepUntil)
		}
		event.Msg("GitHub secondary rate limit reached")
	}
	rateLimitDetector, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(0, onLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit detector: %w", err)
	}
	httpClient := &http.Client{
		Transport: rateLimitDetector,
		Timeout:   cfg.Timeout,
	}

	restClient := github.NewClient(httpClient)
	restClient.BaseURL = baseURL

	return &GitHubGateway{
		restClient:   restClient,
		defaultOwner: owner,
		defaultName:  name,
		logger:       logger,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", raw)
	}
	return u, nil
}

// ResolveRepository returns the default repository for an empty term.
// Otherwise it searches by stars, takes the best match and fetches its details
// again, since search results carry no subscriber count.
func (g *GitHubGateway) ResolveRepository(ctx context.Context, term string) (*domain.Repository, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		g.logger.Debug().Str("repository", g.defaultOwner+"/"+g.defaultName).Msg("Resolving default repository")
		return g.getRepository(ctx, g.defaultOwner, g.defaultName)
	}

	g.logger.Debug().Str("term", term).Msg("Searching repositories")
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: 1},
	}
	result, _, err := g.restClient.Search.Repositories(ctx, term, opts)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("searching repositories for %q", term), err)
	}
	if result == nil || len(result.Repositories) == 0 {
		g.logger.Debug().Str("term", term).Msg("No repository matched")
		return nil, ErrRepositoryNotFound
	}

	top := result.Repositories[0]
	return g.getRepository(ctx, top.GetOwner().GetLogin(), top.GetName())
}

func (g *GitHubGateway) getRepository(ctx context.Context, owner, name string) (*domain.Repository, error) {
	repo, _, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("getting repository %s/%s", owner, name), err)
	}
	g.logger.Debug().Str("repository", repo.GetFullName()).Msg("Resolved repository")
	return toDomainRepository(repo), nil
}

func toDomainRepository(r *github.Repository) *domain.Repository {
	repo := &domain.Repository{
		ID:               r.GetID(),
		Name:             r.GetName(),
		FullName:         r.GetFullName(),
		StargazersCount:  r.GetStargazersCount(),
		ForksCount:       r.GetForksCount(),
		WatchersCount:    r.GetWatchersCount(),
		SubscribersCount: r.GetSubscribersCount(),
		Language:         r.GetLanguage(),
		HTMLURL:          r.GetHTMLURL(),
		Owner: domain.Owner{
			Login:     r.GetOwner().GetLogin(),
			AvatarURL: r.GetOwner().GetAvatarURL(),
		},
	}
	if r.Description != nil {
		desc := *r.Description
		repo.Description = &desc
	}
	return repo
}

// FetchLanguages returns the bytes-per-language mix of a repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, name string) domain.Enrichment[domain.LanguageMix] {
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		cause := newTransportError(fmt.Sprintf("listing languages for %s/%s", owner, name), err)
		g.logger.Warn().Err(cause).Msg("Language data unavailable, using empty mix")
		return domain.Defaulted(domain.LanguageMix{}, cause)
	}
	if languages == nil {
		languages = map[string]int{}
	}
	return domain.Fetched(domain.LanguageMix(languages))
}

// FetchCommitActivity returns the last four weeks of commit totals, oldest first.
// GitHub answers 202 while it is still computing the statistics; that is
// treated like any other failure.
func (g *GitHubGateway) FetchCommitActivity(ctx context.Context, owner, name string) domain.Enrichment[[]domain.WeeklyCommitActivity] {
	weeks, _, err := g.restClient.Repositories.ListCommitActivity(ctx, owner, name)
	if err != nil {
		cause := newTransportError(fmt.Sprintf("listing commit activity for %s/%s", owner, name), err)
		g.logger.Warn().Err(cause).Msg("Commit activity unavailable, using empty sequence")
		return domain.Defaulted([]domain.WeeklyCommitActivity{}, cause)
	}
	return domain.Fetched(lastWeeks(weeks, commitActivityWeeks))
}

// lastWeeks keeps the trailing n entries and drops the per-day breakdown.
func lastWeeks(weeks []*github.WeeklyCommitActivity, n int) []domain.WeeklyCommitActivity {
	if len(weeks) > n {
		weeks = weeks[len(weeks)-n:]
	}
	projected := make([]domain.WeeklyCommitActivity, 0, len(weeks))
	for _, w := range weeks {
		var week int64
		if w != nil && w.Week != nil {
			week = w.Week.Unix()
		}
		projected = append(projected, domain.WeeklyCommitActivity{
			Week:  week,
			Total: w.GetTotal(),
		})
	}
	return projected
}
