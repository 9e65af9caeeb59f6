package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/naka-gawa/self-reposcope/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
// REST calls are served under "/" and GraphQL queries under "/graphql".
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL+"/graphql", server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		limiter:       rate.NewLimiter(rate.Inf, 1),
		logger:        log.New(io.Discard),
	}

	return gateway, server
}

func TestGitHubGateway_FetchViewerLogin(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expectedLogin  string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:          "happy path - returns viewer login",
			responseBody:  `{"data":{"viewer":{"login":"octocat"}}}`,
			expectedLogin: "octocat",
		},
		{
			name:           "error case - GraphQL error",
			responseBody:   `{"errors":[{"message":"Bad credentials"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to query authenticated user",
		},
		{
			name:           "error case - empty login",
			responseBody:   `{"data":{"viewer":{"login":""}}}`,
			expectError:    true,
			expectedErrMsg: "empty login",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "viewer")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			})
			gateway, server := setupTestGateway(t, mux)
			defer server.Close()

			login, err := gateway.FetchViewerLogin(context.Background())
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedLogin, login)
			}
		})
	}
}

func TestGitHubGateway_FetchRepositories(t *testing.T) {
	t.Run("happy path - follows pagination", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"name":"infra","fork":false,"owner":{"login":"acme","type":"Organization"}}]`)
				return
			}
			w.Header().Set("Link", `<https://api.github.com/user/repos?per_page=100&page=2>; rel="next"`)
			fmt.Fprint(w, `[
				{"name":"dotfiles","fork":false,"private":true,"language":"Shell","owner":{"login":"octocat","type":"User"}},
				{"name":"linux","fork":true,"language":"C","owner":{"login":"octocat","type":"User"}}
			]`)
		})
		gateway, server := setupTestGateway(t, mux)
		defer server.Close()

		repos, err := gateway.FetchRepositories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.RepositoryRecord{
			{Name: "dotfiles", OwnerLogin: "octocat", OwnerKind: domain.OwnerUser, Private: true, Language: "Shell"},
			{Name: "linux", OwnerLogin: "octocat", OwnerKind: domain.OwnerUser, Fork: true, Language: "C"},
			{Name: "infra", OwnerLogin: "acme", OwnerKind: domain.OwnerOrganization},
		}, repos)
	})

	t.Run("error case - GitHub API returns an error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message": "Internal Server Error"}`)
		})
		gateway, server := setupTestGateway(t, mux)
		defer server.Close()

		repos, err := gateway.FetchRepositories(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list repositories with REST API")
		assert.Nil(t, repos)
	})
}

func TestGitHubGateway_FetchLanguages(t *testing.T) {
	testCases := []struct {
		name           string
		status         int
		responseBody   string
		expectedOrder  []domain.LanguageTotal
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - keeps response order",
			status:       http.StatusOK,
			responseBody: `{"Rust": 50, "Go": 200, "Makefile": 0}`,
			expectedOrder: []domain.LanguageTotal{
				{Language: "Rust", Bytes: 50},
				{Language: "Go", Bytes: 200},
				{Language: "Makefile", Bytes: 0},
			},
		},
		{
			name:          "empty repository",
			status:        http.StatusOK,
			responseBody:  `{}`,
			expectedOrder: nil,
		},
		{
			name:           "error case - repository not found",
			status:         http.StatusNotFound,
			responseBody:   `{"message": "Not Found"}`,
			expectError:    true,
			expectedErrMsg: "failed to fetch languages for octocat/dotfiles",
		},
		{
			name:           "error case - negative byte count",
			status:         http.StatusOK,
			responseBody:   `{"Go": -1}`,
			expectError:    true,
			expectedErrMsg: "negative byte count",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/octocat/dotfiles/languages", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.responseBody)
			})
			gateway, server := setupTestGateway(t, mux)
			defer server.Close()

			langs, err := gateway.FetchLanguages(context.Background(), "octocat", "dotfiles")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			var got []domain.LanguageTotal
			for pair := langs.Oldest(); pair != nil; pair = pair.Next() {
				got = append(got, domain.LanguageTotal{Language: pair.Key, Bytes: pair.Value})
			}
			assert.Equal(t, tc.expectedOrder, got)
		})
	}
}
