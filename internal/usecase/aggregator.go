// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/self-reposcope/internal/domain"
	"github.com/naka-gawa/self-reposcope/internal/gateway"
)

// Aggregator is the use case for aggregating language usage across a user's repositories.
// It orchestrates the fetching, filtering and merging of data.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
}

// NewAggregator creates a new Aggregator instance.
// concurrency bounds the number of language requests in flight; values below 1 mean 1.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Aggregate lists the authenticated user's repositories, keeps the eligible
// ones and merges their language byte counts into a ranking.
//
// Language requests run concurrently, but results are merged in listing
// order. A repository whose languages cannot be fetched is logged and skipped.
func (a *Aggregator) Aggregate(ctx context.Context) (domain.RankedDistribution, error) {
	a.logger.Debug("Usecase: Starting language aggregation...")

	login, err := a.fetcher.FetchViewerLogin(ctx)
	if err != nil {
		return nil, err
	}
	repos, err := a.fetcher.FetchRepositories(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Found repositories", "count", len(repos))

	var eligible []domain.RepositoryRecord
	for _, repo := range repos {
		if !domain.IsEligible(repo, login) {
			continue
		}
		a.logger.Debug(" - " + repo.Name)
		eligible = append(eligible, repo)
	}

	maps := make([]*domain.LanguageBytes, len(eligible))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)
	for i, repo := range eligible {
		i, repo := i, repo
		eg.Go(func() error {
			langs, err := a.fetcher.FetchLanguages(egCtx, repo.OwnerLogin, repo.Name)
			if err != nil {
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				a.logger.Warn("Failed to fetch languages", "repo", repo.FullName(), "err", err)
				return nil
			}
			maps[i] = langs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch languages: %w", err)
	}
	a.logger.Debug("Usecase: All data fetched successfully.", "repositories", len(eligible))

	ranked := MergeLanguages(maps)
	a.logger.Debug("Usecase: Aggregation complete.", "languages", len(ranked))
	return ranked, nil
}
