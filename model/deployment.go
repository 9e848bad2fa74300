package model

import (
	"encoding/json"
	"slices"
)

// Deployment statuses, as returned verbatim by LifeTime.
const (
	DeploymentStatusSaved                = "saved"
	DeploymentStatusRunning              = "running"
	DeploymentStatusNeedsIntervention    = "needs_user_intervention"
	DeploymentStatusAborting             = "aborting"
	DeploymentStatusAborted              = "aborted"
	DeploymentStatusFinishedSuccessful   = "finished_successful"
	DeploymentStatusFinishedWithWarnings = "finished_with_warnings"
	DeploymentStatusFinishedWithErrors   = "finished_with_errors"

	// DeploymentInfoPrepared is the Info marker of a two-step deployment waiting to be resumed.
	DeploymentInfoPrepared = "deployment_prepared"
)

var (
	activeDeploymentStatuses = []string{
		DeploymentStatusSaved,
		DeploymentStatusRunning,
		DeploymentStatusNeedsIntervention,
		DeploymentStatusAborting,
	}
	errorDeploymentStatuses = []string{
		DeploymentStatusAborted,
		DeploymentStatusFinishedWithErrors,
	}
)

func IsActiveDeploymentStatus(status string) bool {
	return slices.Contains(activeDeploymentStatuses, status)
}

func IsErrorDeploymentStatus(status string) bool {
	return slices.Contains(errorDeploymentStatuses, status)
}

type ApplicationOperation struct {
	ApplicationVersionKey string `json:"ApplicationVersionKey"`
	DeployDB              bool   `json:"DeployDB"`
}

// DeploymentPlan is the request to create a new plan.
type DeploymentPlan struct {
	SourceEnvironmentKey string
	TargetEnvironmentKey string
	Notes                string
	Applications         []ApplicationVersionRef
}

type ApplicationVersionRef struct {
	ApplicationKey string `json:"ApplicationKey"`
	VersionKey     string `json:"VersionKey"`
}

type Deployment struct {
	Key                  string `json:"Key"`
	SourceEnvironmentKey string `json:"SourceEnvironmentKey,omitempty"`
	TargetEnvironmentKey string `json:"TargetEnvironmentKey"`
	Notes                string `json:"Notes,omitempty"`
	CreatedOn            string `json:"CreatedOn,omitempty"`
}

type DeploymentDetails struct {
	Deployment
	ApplicationConflicts []json.RawMessage `json:"ApplicationConflicts"`
}

type DeploymentLogEntry struct {
	Instant string `json:"Instant"`
	Message string `json:"Message"`
}

type DeploymentStatus struct {
	DeploymentStatus string               `json:"DeploymentStatus"`
	Info             string               `json:"Info,omitempty"`
	DeploymentLog    []DeploymentLogEntry `json:"DeploymentLog,omitempty"`
	// Raw is the status response body as returned by LifeTime.
	Raw json.RawMessage `json:"-"`
}

// Report returns the raw response when it is known, the decoded status otherwise.
func (s *DeploymentStatus) Report() any {
	if len(s.Raw) > 0 {
		return s.Raw
	}
	return s
}

func (s *DeploymentStatus) IsPrepared() bool {
	return s.DeploymentStatus == DeploymentStatusNeedsIntervention && s.Info == DeploymentInfoPrepared
}

// StartOptions are only honored by the LifeTime API v2.
type StartOptions struct {
	RedeployOutdated   bool
	ContinueWithErrors bool
	IgnoreWarnings     bool
}
