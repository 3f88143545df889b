// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// calendarDateLayout is the format of the GraphQL Date scalar.
const calendarDateLayout = "2006-01-02"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// ResolveCurrentAccount returns the login of the token owner.
	ResolveCurrentAccount(ctx context.Context) (string, error)
	FetchAccount(ctx context.Context, login string) (*domain.Account, error)
	// FetchContributionDays returns one entry per day between from and to, in date order.
	FetchContributionDays(ctx context.Context, login string, from, to time.Time) ([]domain.ContributionDay, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// viewerQuery resolves the owner of the API token.
type viewerQuery struct {
	Viewer struct {
		Login githubv4.String
	}
}

// contributionCalendarQuery fetches the day-by-day contribution calendar of a user.
type contributionCalendarQuery struct {
	User struct {
		Login                   githubv4.String
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// Options customizes the clients built by NewGitHubGateway.
type Options struct {
	// GraphQLURL points the GraphQL client at a GitHub Enterprise endpoint.
	GraphQLURL string
	// RESTURL points the REST client at a GitHub Enterprise endpoint.
	RESTURL string
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, opts Options, logger *log.Logger) (Fetcher, error) {
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

	restClient := github.NewClient(httpClient)
	if opts.RESTURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(opts.RESTURL, opts.RESTURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure REST endpoint: %w", err)
		}
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) ResolveCurrentAccount(ctx context.Context) (string, error) {
	g.logger.Println("Resolving the owner of the API token...")
	var q viewerQuery
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL query for viewer: %w", err)
	}
	if q.Viewer.Login == "" {
		return "", fmt.Errorf("no login information, check your GitHub API token")
	}
	g.logger.Printf("API token belongs to %s\n", q.Viewer.Login)
	return string(q.Viewer.Login), nil
}

func (g *GitHubGateway) FetchAccount(ctx context.Context, login string) (*domain.Account, error) {
	g.logger.Println("[1/2] Fetching account data using REST API...")
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get user with REST API: %w", err)
	}
	g.logger.Println("Completed fetching account data.")
	return &domain.Account{
		Login:              user.GetLogin(),
		Name:               user.GetName(),
		PublicRepositories: user.GetPublicRepos(),
	}, nil
}

func (g *GitHubGateway) FetchContributionDays(ctx context.Context, login string, from, to time.Time) ([]domain.ContributionDay, error) {
	g.logger.Println("[2/2] Fetching contribution calendar...")
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	var q contributionCalendarQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}
	if q.User.Login == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, login)
	}

	var days []domain.ContributionDay
	for _, week := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(calendarDateLayout, string(day.Date))
			if err != nil {
				return nil, fmt.Errorf("malformed contribution date %q: %w", day.Date, err)
			}
			days = append(days, domain.ContributionDay{Date: date, Count: int(day.ContributionCount)})
		}
	}
	g.logger.Printf("Completed fetching %d contribution days.\n", len(days))
	return days, nil
}
