package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetDeployEpicCommand() components.Command {
	return components.Command{
		Name:        "deploy-epic",
		Description: "Tag the applications of a Jira epic in the source environment and deploy them to the destination environment",
		Aliases:     []string{"de"},
		Flags: joinFlags(
			model.GetJiraFlags(),
			model.GetLifetimeFlags(),
			model.GetDeploymentFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagSourceEnv, "Name, as displayed in LifeTime, of the environment where the applications are tagged.", components.SetMandatory()),
				components.NewStringFlag(model.FlagDestinationEnv, "Name, as displayed in LifeTime, of the destination environment.", components.SetMandatory()),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runDeployEpicCommand(settings)
		},
	}
}

func runDeployEpicCommand(s *model.Settings) error {
	sourceName, err := requireString(s, model.FlagSourceEnv)
	if err != nil {
		return err
	}
	destinationName, err := requireString(s, model.FlagDestinationEnv)
	if err != nil {
		return err
	}

	applications, err := epicApplications(s)
	if err != nil {
		return err
	}
	if len(applications) == 0 {
		log.Info(fmt.Sprintf("Epic %s has no application to deploy. Nothing to do.", s.String(model.FlagEpic)))
		return nil
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}

	sourceKey, err := client.GetEnvironmentKey(sourceName)
	if err != nil {
		return err
	}
	destinationKey, err := client.GetEnvironmentKey(destinationName)
	if err != nil {
		return err
	}

	requests := make([]common.TagRequest, 0, len(applications))
	for _, app := range applications {
		changeLog := app.TicketKey
		if app.ChangeLog != "" {
			changeLog = fmt.Sprintf("%s: %s", app.TicketKey, app.ChangeLog)
		}
		requests = append(requests, common.TagRequest{
			ApplicationName: app.ApplicationName,
			VersionNumber:   app.VersionNumber,
			ChangeLog:       changeLog,
		})
	}

	tagged, err := common.NewTagger(client).TagApplications(sourceKey, requests)
	if err != nil {
		return fmt.Errorf("tagging the applications of epic %s failed: %w", s.String(model.FlagEpic), err)
	}

	plan := model.DeploymentPlan{
		SourceEnvironmentKey: sourceKey,
		TargetEnvironmentKey: destinationKey,
		Notes:                fmt.Sprintf("Deployment of epic %s (run %s).", s.String(model.FlagEpic), uuid.NewString()),
	}
	for _, result := range tagged {
		plan.Applications = append(plan.Applications, model.ApplicationVersionRef{
			ApplicationKey: result.ApplicationKey,
			VersionKey:     result.VersionKey,
		})
	}

	options, err := getDeployerOptions(s)
	if err != nil {
		return err
	}

	outcome, err := newDeployer(client, getArtifactStore(s), options).DeployVersions(plan)
	if err != nil {
		return err
	}
	logOutcome(outcome, destinationKey)
	return nil
}
