package model

import "encoding/json"

// TicketApplication is the application name and target version carried by a child issue of an epic.
type TicketApplication struct {
	TicketKey       string `json:"TicketKey"`
	ApplicationName string `json:"ApplicationName"`
	VersionNumber   string `json:"VersionNumber"`
	ChangeLog       string `json:"ChangeLog,omitempty"`
}

// IssueSearchPage is one page of the Jira REST v2 search endpoint.
type IssueSearchPage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Issue keeps the requested fields raw, custom fields have no fixed shape.
type Issue struct {
	ID     string                     `json:"id"`
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

type IssueErrorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
