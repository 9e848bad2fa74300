package model

// Credentials maps a credential name to its encrypted value.
type Credentials map[string]string

const (
	CredentialLifetimeToken = "lt-token"
	CredentialJiraToken     = "jira-token"
)
