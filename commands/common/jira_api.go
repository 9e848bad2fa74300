package common

//go:generate ${TOOLS_DIR}/mockgen -source=${GOFILE} -destination=mocks/${GOFILE}

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

type TicketSearcher interface {
	SearchIssues(jql string, fields []string, startAt, maxResults int) (*model.IssueSearchPage, error)
}

type JiraServer struct {
	URL   string
	User  string
	Token string
}

// authorization uses basic authentication when a user is known (Jira Cloud), a personal access token otherwise.
func (s *JiraServer) authorization() string {
	if s.User != "" {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(s.User+":"+strings.TrimSpace(s.Token)))
	}
	return BearerAuth(s.Token)
}

type JiraClient struct {
	flags  model.IntFlagProvider
	server JiraServer
}

func NewJiraClient(flags model.IntFlagProvider, server JiraServer) (*JiraClient, error) {
	if server.URL == "" {
		return nil, fmt.Errorf("missing Jira url")
	}
	if server.Token == "" {
		return nil, fmt.Errorf("missing Jira token")
	}
	server.URL = strings.TrimSuffix(server.URL, "/")
	return &JiraClient{flags: flags, server: server}, nil
}

func (c *JiraClient) SearchIssues(jql string, fields []string, startAt, maxResults int) (*model.IssueSearchPage, error) {
	page := new(model.IssueSearchPage)
	err := CallAPI(c.flags, APICallParams{
		Method:        http.MethodGet,
		BaseURL:       c.server.URL,
		Authorization: c.server.authorization(),
		Path:          []string{"rest", "api", "2", "search"},
		Query: map[string]string{
			"jql":        jql,
			"fields":     strings.Join(fields, ","),
			"startAt":    strconv.Itoa(startAt),
			"maxResults": strconv.Itoa(maxResults),
		},
		OkStatuses: []int{http.StatusOK},
		OnContent: func(content []byte) error {
			return json.Unmarshal(content, page)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("jira search failed: %w", describeJiraError(err))
	}
	return page, nil
}

// describeJiraError appends the Jira error messages to the failure when the body holds any.
func describeJiraError(err error) error {
	apiErr, ok := err.(*APIError)
	if !ok || len(apiErr.Body) == 0 {
		return err
	}
	var jiraErr model.IssueErrorResponse
	if json.Unmarshal(apiErr.Body, &jiraErr) != nil || (len(jiraErr.ErrorMessages) == 0 && len(jiraErr.Errors) == 0) {
		return err
	}
	messages := jiraErr.ErrorMessages
	for field, message := range jiraErr.Errors {
		messages = append(messages, field+": "+message)
	}
	return &APIError{
		StatusCode: apiErr.StatusCode,
		Message:    fmt.Sprintf("%s: %s", apiErr.Message, strings.Join(messages, "; ")),
		Body:       apiErr.Body,
	}
}
