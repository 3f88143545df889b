// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
	"github.com/naka-gawa/github-streak-stats/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Request carries the caller's inputs. Empty From, To or Login mean "not given".
type Request struct {
	Login  string
	From   string
	To     string
	Offset string
	Now    time.Time
}

// Result is everything the presentation layer needs to render the stats.
type Result struct {
	Account *domain.Account
	Window  domain.Window
	Days    []domain.ContributionDay
	Stats   domain.Stats
}

// StreakCalculator is the use case for computing contribution streaks.
// It orchestrates the resolution of the query window, the fetching of the calendar and the reduction to stats.
type StreakCalculator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewStreakCalculator creates a new StreakCalculator instance.
func NewStreakCalculator(fetcher gateway.Fetcher, logger *log.Logger) *StreakCalculator {
	return &StreakCalculator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Calculate performs the main business logic.
// Date errors are returned unchanged; any failure to fetch data is wrapped in domain.ErrDataFetch.
func (s *StreakCalculator) Calculate(ctx context.Context, req Request) (*Result, error) {
	s.logger.Println("Usecase: Resolving the contribution window...")
	loc, err := domain.ParseOffset(req.Offset)
	if err != nil {
		return nil, err
	}
	window, err := domain.ResolveWindow(req.Now, req.From, req.To, loc)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("Usecase: Window is %s to %s (aligned: %t)\n", window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339), window.Aligned)

	login := req.Login
	if login == "" {
		if login, err = s.fetcher.ResolveCurrentAccount(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDataFetch, err)
		}
	}

	var (
		account *domain.Account
		days    []domain.ContributionDay
	)

	// Use an errgroup to fetch the account and its calendar concurrently.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		account, err = s.fetcher.FetchAccount(egCtx, login)
		return err
	})

	eg.Go(func() error {
		var err error
		days, err = s.fetcher.FetchContributionDays(egCtx, login, window.Start, window.End)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataFetch, err)
	}
	s.logger.Println("Usecase: All data fetched successfully.")

	stats := domain.ComputeStats(days)
	s.logger.Println("Usecase: Streak calculation complete.")

	return &Result{
		Account: account,
		Window:  window,
		Days:    days,
		Stats:   stats,
	}, nil
}
