package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

const (
	defaultIssuePageSize = 50
	summaryField         = "summary"
)

// TicketCorrelator maps the child issues of an epic to the applications they describe.
type TicketCorrelator struct {
	searcher     TicketSearcher
	appField     string
	versionField string
	PageSize     int
}

func NewTicketCorrelator(searcher TicketSearcher, appField, versionField string) *TicketCorrelator {
	if appField == "" {
		appField = model.DefaultJiraAppField
	}
	if versionField == "" {
		versionField = model.DefaultJiraVersionField
	}
	return &TicketCorrelator{
		searcher:     searcher,
		appField:     appField,
		versionField: versionField,
		PageSize:     defaultIssuePageSize,
	}
}

// ChildApplications returns one descriptor per child issue of parentKey, following every result page.
// Issues missing the application or the version are skipped.
func (c *TicketCorrelator) ChildApplications(parentKey string) ([]model.TicketApplication, error) {
	jql := fmt.Sprintf("parent = %s ORDER BY key ASC", strconv.Quote(parentKey))
	fields := []string{c.appField, c.versionField, summaryField}

	var applications []model.TicketApplication
	startAt := 0
	for {
		page, err := c.searcher.SearchIssues(jql, fields, startAt, c.PageSize)
		if err != nil {
			return nil, err
		}

		for _, issue := range page.Issues {
			app := model.TicketApplication{
				TicketKey:       issue.Key,
				ApplicationName: fieldText(issue.Fields[c.appField]),
				VersionNumber:   fieldText(issue.Fields[c.versionField]),
				ChangeLog:       fieldText(issue.Fields[summaryField]),
			}
			if app.ApplicationName == "" || app.VersionNumber == "" {
				log.Warn(fmt.Sprintf("Issue %s has no application name or version, it is ignored.", issue.Key))
				continue
			}
			applications = append(applications, app)
		}

		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			break
		}
	}

	log.Info(fmt.Sprintf("%d application(s) found in the child issues of %s.", len(applications), parentKey))

	return applications, nil
}

// fieldText reads a Jira field given as a string, a number or an option object.
func fieldText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}

	var option struct {
		Value string `json:"value"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(raw, &option); err == nil {
		if option.Value != "" {
			return strings.TrimSpace(option.Value)
		}
		return strings.TrimSpace(option.Name)
	}

	return ""
}
