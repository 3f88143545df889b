package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}

	return gateway, server
}

func day(s string, count int) domain.ContributionDay {
	d, err := time.Parse(calendarDateLayout, s)
	if err != nil {
		panic(err)
	}
	return domain.ContributionDay{Date: d, Count: count}
}

func TestGitHubGateway_FetchAccount(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       *domain.Account
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - successfully fetches the account",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octocat", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"login": "octocat", "name": "The Octocat", "public_repos": 8}`)
			},
			expected: &domain.Account{Login: "octocat", Name: "The Octocat", PublicRepositories: 8},
		},
		{
			name: "error case - user not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to get user with REST API",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()
			account, err := gateway.FetchAccount(context.Background(), "octocat")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, account)
			}
		})
	}
}

func TestGitHubGateway_ResolveCurrentAccount(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - returns the viewer login",
			responseBody: `{"data":{"viewer":{"login":"octocat"}}}`,
			expected:     "octocat",
		},
		{
			name:           "error case - bad credentials",
			responseBody:   `{"errors":[{"message":"Bad credentials"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for viewer",
		},
		{
			name:           "error case - empty viewer",
			responseBody:   `{"data":{"viewer":{"login":""}}}`,
			expectError:    true,
			expectedErrMsg: "no login information",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "viewer")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			login, err := gateway.ResolveCurrentAccount(context.Background())
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, login)
			}
		})
	}
}

func TestGitHubGateway_FetchContributionDays(t *testing.T) {
	jst := time.FixedZone("+0900", 9*3600)
	from := time.Date(2023, 12, 31, 0, 0, 0, 0, jst)
	to := time.Date(2024, 1, 13, 0, 0, 0, 0, jst)

	testCases := []struct {
		name           string
		responseBody   string
		expected       []domain.ContributionDay
		expectError    bool
		expectedErrIs  error
		expectedErrMsg string
	}{
		{
			name: "happy path - weeks are flattened in order",
			responseBody: `{"data":{"user":{"login":"octocat","contributionsCollection":{"contributionCalendar":{"weeks":[` +
				`{"contributionDays":[{"date":"2023-12-31","contributionCount":0},{"date":"2024-01-01","contributionCount":2}]},` +
				`{"contributionDays":[{"date":"2024-01-02","contributionCount":5}]}` +
				`]}}}}}`,
			expected: []domain.ContributionDay{
				day("2023-12-31", 0),
				day("2024-01-01", 2),
				day("2024-01-02", 5),
			},
		},
		{
			name:          "error case - unknown user",
			responseBody:  `{"data":{"user":null}}`,
			expectError:   true,
			expectedErrIs: domain.ErrUnknownAccount,
		},
		{
			name:           "error case - GraphQL error",
			responseBody:   `{"errors":[{"message":"Could not resolve to a User with the login of 'ghost'."}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for contributions",
		},
		{
			name: "error case - malformed date",
			responseBody: `{"data":{"user":{"login":"octocat","contributionsCollection":{"contributionCalendar":{"weeks":[` +
				`{"contributionDays":[{"date":"01/02/2024","contributionCount":1}]}` +
				`]}}}}}`,
			expectError:    true,
			expectedErrMsg: "malformed contribution date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "contributionsCollection")
				assert.Contains(t, string(body), "2023-12-31T00:00:00+09:00")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			days, err := gateway.FetchContributionDays(context.Background(), "octocat", from, to)
			if tc.expectError {
				assert.Error(t, err)
				if tc.expectedErrIs != nil {
					assert.ErrorIs(t, err, tc.expectedErrIs)
				}
				if tc.expectedErrMsg != "" {
					assert.Contains(t, err.Error(), tc.expectedErrMsg)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, days)
			}
		})
	}
}

func TestNewGitHubGateway(t *testing.T) {
	fetcher, err := NewGitHubGateway("token", Options{GraphQLURL: "https://ghe.example.com/api/graphql", RESTURL: "https://ghe.example.com/"}, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	gateway, ok := fetcher.(*GitHubGateway)
	require.True(t, ok)
	assert.Equal(t, "https://ghe.example.com/api/v3/", gateway.restClient.BaseURL.String())
}
