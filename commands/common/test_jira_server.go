//go:build test
// +build test

package common

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jfrog/go-mockhttp"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

// NewMockJiraServer starts a Jira search endpoint paginating over the stub issues,
// and exposes it through the OSP_JIRA_* environment variables.
func NewMockJiraServer(t *testing.T, stub *JiraStub) (*mockhttp.Server, string) {
	if stub.token == "" {
		stub.token = uuid.NewString()
	}

	server := mockhttp.StartServer(
		mockhttp.WithEndpoints(
			mockhttp.NewServerEndpoint().
				When(mockhttp.Request().Method(http.MethodGet).PathMatches(regexp.MustCompile(`^/rest/api/2/search(\?.*)?$`))).
				HandleWith(stub.handleSearch),
		),
		mockhttp.WithName("jira"),
	)

	TestSetEnv(t, "OSP_JIRA_URL", server.BaseUrl())
	TestSetEnv(t, "OSP_JIRA_TOKEN", stub.token)
	if stub.user != "" {
		TestSetEnv(t, "OSP_JIRA_USER", stub.user)
	}

	t.Cleanup(server.Close)

	return server, stub.token
}

func NewJiraStub(t *testing.T) *JiraStub {
	return &JiraStub{test: t}
}

type JiraStub struct {
	mu          sync.Mutex
	test        *testing.T
	token       string
	user        string
	maxPageSize int
	issues      []model.Issue
	queries     []string
	status      int
	errorBody   *model.IssueErrorResponse
}

func (s *JiraStub) WithToken(token string) *JiraStub {
	s.token = token
	return s
}

func (s *JiraStub) WithUser(user string) *JiraStub {
	s.user = user
	return s
}

// WithMaxPageSize caps the page size whatever the client asks for, like Jira does.
func (s *JiraStub) WithMaxPageSize(size int) *JiraStub {
	s.maxPageSize = size
	return s
}

func (s *JiraStub) WithIssues(issues ...model.Issue) *JiraStub {
	s.issues = append(s.issues, issues...)
	return s
}

func (s *JiraStub) WithError(status int, body model.IssueErrorResponse) *JiraStub {
	s.status = status
	s.errorBody = &body
	return s
}

// Queries returns the JQL of every search received.
func (s *JiraStub) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.queries...)
}

func (s *JiraStub) authorized(req *http.Request) bool {
	got := req.Header.Get("Authorization")
	if s.user != "" {
		user, password, ok := req.BasicAuth()
		return ok && user == s.user && password == s.token
	}
	return got == "Bearer "+s.token
}

func (s *JiraStub) handleSearch(res http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	s.mu.Lock()
	s.queries = append(s.queries, query.Get("jql"))
	s.mu.Unlock()

	if !s.authorized(req) {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	res.Header().Set("Content-Type", "application/json")

	if s.errorBody != nil {
		res.WriteHeader(s.status)
		_, err := res.Write([]byte(MustJSONMarshal(s.test, s.errorBody)))
		require.NoError(s.test, err)
		return
	}

	startAt, _ := strconv.Atoi(query.Get("startAt"))
	maxResults, _ := strconv.Atoi(query.Get("maxResults"))
	if s.maxPageSize > 0 && (maxResults == 0 || maxResults > s.maxPageSize) {
		maxResults = s.maxPageSize
	}

	page := model.IssueSearchPage{StartAt: startAt, MaxResults: maxResults, Total: len(s.issues), Issues: []model.Issue{}}
	for i := startAt; i < len(s.issues) && len(page.Issues) < maxResults; i++ {
		page.Issues = append(page.Issues, s.filterFields(s.issues[i], query.Get("fields")))
	}

	res.WriteHeader(http.StatusOK)
	_, err := res.Write([]byte(MustJSONMarshal(s.test, page)))
	require.NoError(s.test, err)
}

// filterFields only returns the requested fields.
func (s *JiraStub) filterFields(issue model.Issue, fields string) model.Issue {
	if fields == "" {
		return issue
	}
	filtered := model.Issue{ID: issue.ID, Key: issue.Key, Fields: map[string]json.RawMessage{}}
	for _, field := range strings.Split(fields, ",") {
		if value, exists := issue.Fields[field]; exists {
			filtered.Fields[field] = value
		}
	}
	return filtered
}
