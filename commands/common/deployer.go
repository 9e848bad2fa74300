package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

type DeploymentOutcome int

const (
	// OutcomeFinished means the plan reached a successful terminal status.
	OutcomeFinished DeploymentOutcome = iota
	// OutcomePrepared means a two-step plan finished its first step and was left waiting.
	OutcomePrepared
)

type DeployerOptions struct {
	PollInterval            time.Duration
	DeploymentTimeout       time.Duration
	QueueTimeout            time.Duration
	AllowContinueWithErrors bool
	RedeployOutdated        bool
	IgnoreWarnings          bool
	StopAfterPrepare        bool
}

func DefaultDeployerOptions() DeployerOptions {
	return DeployerOptions{
		PollInterval:      model.DefaultPollIntervalSecs * time.Second,
		DeploymentTimeout: model.DefaultDeploymentTimeoutSecs * time.Second,
		QueueTimeout:      model.DefaultQueueTimeoutSecs * time.Second,
		RedeployOutdated:  true,
	}
}

// Deployer drives a deployment plan from creation to a terminal status.
type Deployer struct {
	api       LifetimeAPI
	artifacts *ArtifactStore
	options   DeployerOptions
	// Sleep is swapped in tests.
	Sleep func(time.Duration)
}

func NewDeployer(api LifetimeAPI, artifacts *ArtifactStore, options DeployerOptions) *Deployer {
	return &Deployer{
		api:       api,
		artifacts: artifacts,
		options:   options,
		Sleep:     time.Sleep,
	}
}

// maxPolls is the number of status checks fitting in the given budget, at least one.
func (d *Deployer) maxPolls(budget time.Duration) int {
	if d.options.PollInterval <= 0 {
		return 1
	}
	polls := int(budget / d.options.PollInterval)
	if polls < 1 {
		return 1
	}
	return polls
}

// WaitForQueue blocks until no plan is running on the environment. LifeTime only accepts one active plan per environment.
func (d *Deployer) WaitForQueue(environmentKey string) error {
	var elapsed time.Duration
	for {
		running, err := d.api.ListRunningDeployments(environmentKey)
		if err != nil {
			return err
		}
		if len(running) == 0 {
			return nil
		}
		if elapsed >= d.options.QueueTimeout {
			return fmt.Errorf("LifeTime was still busy with deployment plan %s after %s: %w", running[0].Key, d.options.QueueTimeout, model.ErrTimeout)
		}
		d.Sleep(d.options.PollInterval)
		elapsed += d.options.PollInterval
		log.Info(fmt.Sprintf("Waiting for LifeTime to be free. Elapsed time: %s...", elapsed))
		if d.options.PollInterval <= 0 {
			// Without an interval the queue would be polled forever.
			elapsed = d.options.QueueTimeout
		}
	}
}

// DeployVersions creates a single deployment plan for the given application versions and runs it.
func (d *Deployer) DeployVersions(plan model.DeploymentPlan) (DeploymentOutcome, error) {
	if len(plan.Applications) == 0 {
		return OutcomeFinished, errors.New("no application to deploy")
	}

	if err := d.ClearReports(); err != nil {
		return OutcomeFinished, err
	}

	if err := d.WaitForQueue(plan.TargetEnvironmentKey); err != nil {
		return OutcomeFinished, err
	}

	deploymentKey, err := d.api.CreateDeployment(plan)
	if err != nil {
		return OutcomeFinished, err
	}
	log.Info(fmt.Sprintf("Deployment plan %s created successfully.", deploymentKey))

	return d.startAndMonitor(deploymentKey)
}

// DeployPackage uploads an application binary package as a new deployment plan and runs it.
// Reports are kept, several packages are deployed in a row by the same run.
func (d *Deployer) DeployPackage(environmentKey string, pkg []byte) (DeploymentOutcome, error) {
	if err := d.WaitForQueue(environmentKey); err != nil {
		return OutcomeFinished, err
	}

	deploymentKey, err := d.api.CreateBinaryDeployment(environmentKey, pkg)
	if err != nil {
		return OutcomeFinished, err
	}
	log.Info(fmt.Sprintf("Deployment plan %s created successfully.", deploymentKey))

	return d.startAndMonitor(deploymentKey)
}

// ClearReports removes the conflict and error reports left in the artifacts folder by a previous run.
func (d *Deployer) ClearReports() error {
	for _, name := range []string{ConflictsArtifact, DeploymentErrorsArtifact} {
		if err := d.artifacts.Delete(name); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) startAndMonitor(deploymentKey string) (DeploymentOutcome, error) {
	details, err := d.api.GetDeployment(deploymentKey)
	if err != nil {
		return OutcomeFinished, err
	}

	hasConflicts := len(details.ApplicationConflicts) > 0
	if hasConflicts {
		if err = d.artifacts.Store(ConflictsArtifact, details.ApplicationConflicts); err != nil {
			return OutcomeFinished, err
		}
		if !d.options.AllowContinueWithErrors || d.api.APIVersion() == APIVersionV1 {
			log.Error(fmt.Sprintf("Deployment plan %s has conflicts and will be aborted. Check %s artifact for more details.", deploymentKey, ConflictsArtifact))
			if err = d.api.DeleteDeployment(deploymentKey); err != nil {
				return OutcomeFinished, err
			}
			log.Info(fmt.Sprintf("Deployment plan %s was deleted successfully.", deploymentKey))
			return OutcomeFinished, fmt.Errorf("deployment plan %s: %w", deploymentKey, model.ErrConflicts)
		}
		log.Warn(fmt.Sprintf("Deployment plan %s has conflicts but will continue with errors. Check %s artifact for more details.", deploymentKey, ConflictsArtifact))
	}

	options := model.StartOptions{
		RedeployOutdated: d.options.RedeployOutdated,
		IgnoreWarnings:   d.options.IgnoreWarnings,
	}
	if hasConflicts {
		options.RedeployOutdated = false
		options.ContinueWithErrors = true
	}

	if err = d.api.StartDeployment(deploymentKey, options); err != nil {
		return OutcomeFinished, err
	}
	log.Info(fmt.Sprintf("Deployment plan %s started being executed.", deploymentKey))

	return d.Monitor(deploymentKey)
}

// Monitor polls the plan status until it leaves the running state or the deployment timeout elapses.
// On timeout the plan is left untouched in LifeTime.
func (d *Deployer) Monitor(deploymentKey string) (DeploymentOutcome, error) {
	return d.monitor(deploymentKey, false)
}

// monitor polls the plan status. A resumed plan is continued on every waiting status,
// LifeTime may pause it again once the first step is released.
func (d *Deployer) monitor(deploymentKey string, resumed bool) (DeploymentOutcome, error) {
	alerted := false
	polls := d.maxPolls(d.options.DeploymentTimeout)

	for i := 0; i < polls; i++ {
		status, err := d.api.GetDeploymentStatus(deploymentKey)
		if err != nil {
			return OutcomeFinished, err
		}

		switch {
		case status.DeploymentStatus == model.DeploymentStatusRunning,
			status.DeploymentStatus == model.DeploymentStatusSaved,
			status.DeploymentStatus == model.DeploymentStatusAborting:
		case status.IsPrepared():
			if d.options.StopAfterPrepare {
				log.Info(fmt.Sprintf("Deployment plan %s first step finished successfully.", deploymentKey))
				return OutcomePrepared, nil
			}
			if err = d.api.ContinueDeployment(deploymentKey); err != nil {
				return OutcomeFinished, err
			}
			log.Info(fmt.Sprintf("Deployment plan %s resumed execution.", deploymentKey))
		case status.DeploymentStatus == model.DeploymentStatusNeedsIntervention && resumed:
			if err = d.api.ContinueDeployment(deploymentKey); err != nil {
				return OutcomeFinished, err
			}
			log.Info(fmt.Sprintf("Deployment plan %s was waiting and was continued.", deploymentKey))
		case status.DeploymentStatus == model.DeploymentStatusNeedsIntervention:
			if !alerted {
				alerted = true
				log.Warn(fmt.Sprintf("A manual intervention is required to continue the execution of the deployment plan %s.", deploymentKey))
			}
		case model.IsErrorDeploymentStatus(status.DeploymentStatus):
			log.Error(fmt.Sprintf("Deployment plan %s finished with status %s.", deploymentKey, status.DeploymentStatus))
			if err = d.artifacts.Store(DeploymentErrorsArtifact, status.Report()); err != nil {
				return OutcomeFinished, err
			}
			return OutcomeFinished, fmt.Errorf("deployment plan %s finished with status %s: %w", deploymentKey, status.DeploymentStatus, model.ErrDeploymentFailed)
		default:
			log.Info(fmt.Sprintf("Deployment plan %s finished with status %s.", deploymentKey, status.DeploymentStatus))
			return OutcomeFinished, nil
		}

		if i+1 < polls {
			d.Sleep(d.options.PollInterval)
			log.Info(fmt.Sprintf("%s have passed since the deployment started...", time.Duration(i+1)*d.options.PollInterval))
		}
	}

	return OutcomeFinished, fmt.Errorf("deployment plan %s is still %s after %s: %w", deploymentKey, model.DeploymentStatusRunning, d.options.DeploymentTimeout, model.ErrTimeout)
}

// ContinueExisting resumes the prepared two-step plan of an environment and monitors it.
// Unlike a new plan, a plan with conflicts is kept for manual inspection.
func (d *Deployer) ContinueExisting(environmentKey string) (DeploymentOutcome, error) {
	running, err := d.api.ListRunningDeployments(environmentKey)
	if err != nil {
		return OutcomeFinished, err
	}
	if len(running) == 0 {
		return OutcomeFinished, fmt.Errorf("unable to find a running deployment plan on environment %s: %w", environmentKey, model.ErrNotFound)
	}

	deploymentKey := running[0].Key
	log.Info(fmt.Sprintf("Deployment plan %s was found.", deploymentKey))

	details, err := d.api.GetDeployment(deploymentKey)
	if err != nil {
		return OutcomeFinished, err
	}
	if len(details.ApplicationConflicts) > 0 {
		if err = d.artifacts.Store(ConflictsArtifact, details.ApplicationConflicts); err != nil {
			return OutcomeFinished, err
		}
		return OutcomeFinished, fmt.Errorf("deployment plan %s has conflicts, check %s artifact for more details: %w", deploymentKey, ConflictsArtifact, model.ErrConflicts)
	}

	status, err := d.api.GetDeploymentStatus(deploymentKey)
	if err != nil {
		return OutcomeFinished, err
	}
	if !status.IsPrepared() {
		return OutcomeFinished, fmt.Errorf("deployment plan %s is not in 'Prepared' status (%s)", deploymentKey, status.DeploymentStatus)
	}

	if err = d.api.ContinueDeployment(deploymentKey); err != nil {
		return OutcomeFinished, err
	}
	log.Info(fmt.Sprintf("Deployment plan %s resumed execution.", deploymentKey))

	return d.monitor(deploymentKey, true)
}
