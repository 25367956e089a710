// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/gateway"
	"github.com/naka-gawa/github-dashboard/internal/locale"
)

// Dashboard is the use case behind one dashboard session.
// It orchestrates the fetching of a repository and its enrichments and
// owns the session state they are merged into.
type Dashboard struct {
	fetcher  gateway.Fetcher
	logger   zerolog.Logger
	messages locale.Catalog

	mu     sync.RWMutex
	seq    uint64
	cancel context.CancelFunc
	state  domain.DashboardState
}

// NewDashboard creates a new Dashboard in the idle state.
func NewDashboard(fetcher gateway.Fetcher, logger zerolog.Logger, messages locale.Catalog) *Dashboard {
	return &Dashboard{
		fetcher:  fetcher,
		logger:   logger,
		messages: messages,
		state:    domain.DashboardState{Status: domain.StatusIdle},
	}
}

// Start runs the initial search for the default repository.
func (d *Dashboard) Start(ctx context.Context) domain.DashboardState {
	return d.Search(ctx, "")
}

// Snapshot returns the current session state. The returned value must be
// treated as read-only; it is shared with other readers.
func (d *Dashboard) Snapshot() domain.DashboardState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Search resolves term and, when a repository is found, fetches its language
// mix and commit activity concurrently before publishing the merged state.
//
// Starting a search cancels any search still in flight. If this search is
// superseded before it finishes, its results are dropped and the newer
// snapshot is returned instead.
func (d *Dashboard) Search(ctx context.Context, term string) domain.DashboardState {
	ctx, seq := d.begin(ctx, term)
	log := d.logger.With().Uint64("search", seq).Str("term", term).Logger()
	log.Info().Msg("Usecase: Starting dashboard search...")

	repo, err := d.fetcher.ResolveRepository(ctx, term)
	if errors.Is(err, gateway.ErrRepositoryNotFound) {
		log.Info().Msg("Usecase: Repository not found.")
		return d.commit(seq, domain.DashboardState{
			Term:           term,
			Status:         domain.StatusNotFound,
			Languages:      domain.LanguageMix{},
			CommitActivity: []domain.WeeklyCommitActivity{},
			Message:        d.messages.RepositoryNotFound,
		})
	}
	if err != nil {
		log.Error().Err(err).Msg("Usecase: Failed to resolve repository.")
		return d.commit(seq, domain.DashboardState{
			Term:           term,
			Status:         domain.StatusError,
			Languages:      domain.LanguageMix{},
			CommitActivity: []domain.WeeklyCommitActivity{},
			Message:        d.messages.LoadFailed,
		})
	}

	var languages domain.Enrichment[domain.LanguageMix]
	var commits domain.Enrichment[[]domain.WeeklyCommitActivity]

	// Both fetchers swallow their own failures, so the group only joins.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		languages = d.fetcher.FetchLanguages(egCtx, repo.Owner.Login, repo.Name)
		return nil
	})
	eg.Go(func() error {
		commits = d.fetcher.FetchCommitActivity(egCtx, repo.Owner.Login, repo.Name)
		return nil
	})
	_ = eg.Wait()

	if languages.Value == nil {
		languages.Value = domain.LanguageMix{}
	}
	if commits.Value == nil {
		commits.Value = []domain.WeeklyCommitActivity{}
	}

	log.Info().
		Str("repository", repo.FullName).
		Bool("languages_degraded", languages.Degraded()).
		Bool("commits_degraded", commits.Degraded()).
		Msg("Usecase: Dashboard data fetched.")

	return d.commit(seq, domain.DashboardState{
		Term:              term,
		Status:            domain.StatusLoaded,
		Repository:        repo,
		Languages:         languages.Value,
		CommitActivity:    commits.Value,
		HasCommitActivity: domain.HasCommitActivity(commits.Value),
	})
}

// begin supersedes any running search and publishes a loading state with
// nothing from the previous repository left in it.
func (d *Dashboard) begin(ctx context.Context, term string) (context.Context, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.seq++

	d.state = domain.DashboardState{
		Sequence:       d.seq,
		Term:           term,
		Status:         domain.StatusLoading,
		Languages:      domain.LanguageMix{},
		CommitActivity: []domain.WeeklyCommitActivity{},
		Message:        d.messages.Loading,
	}
	return ctx, d.seq
}

// commit publishes next as the session state if seq is still the latest search.
func (d *Dashboard) commit(seq uint64, next domain.DashboardState) domain.DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq {
		d.logger.Debug().Uint64("search", seq).Uint64("latest", d.seq).Msg("Usecase: Discarding stale search result.")
		return d.state
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	next.Sequence = seq
	d.state = next
	return d.state
}
