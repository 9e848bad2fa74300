package commands

import (
	"fmt"

	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

const defaultDeploymentNotes = "Automated deploy using outsystems-pipeline."

func GetDeployCommand() components.Command {
	return components.Command{
		Name:        "deploy",
		Description: "Deploy the application versions of the manifest to the destination environment",
		Aliases:     []string{"d"},
		Flags: joinFlags(
			model.GetLifetimeFlags(),
			model.GetManifestFlags(),
			model.GetDeploymentFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagDestinationEnvLabel, "Label, as configured in the manifest, of the destination environment.", components.SetMandatory()),
				components.NewStringFlag(model.FlagSourceEnvLabel, "Label, as configured in the manifest, of the source environment. Required by LifeTime API v2 for a source-based plan."),
				components.NewBoolFlag(model.FlagIncludeTestApps, "Include test applications in the deployment plan.", components.WithBoolDefaultValue(false)),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runDeployCommand(settings)
		},
	}
}

func runDeployCommand(s *model.Settings) error {
	manifest, err := getManifest(s)
	if err != nil {
		return err
	}

	plan, err := planFromManifest(s, manifest)
	if err != nil {
		return err
	}
	if len(plan.Applications) == 0 {
		log.Info("No application to deploy. Nothing to do.")
		return nil
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}

	options, err := getDeployerOptions(s)
	if err != nil {
		return err
	}

	outcome, err := newDeployer(client, getArtifactStore(s), options).DeployVersions(*plan)
	if err != nil {
		return err
	}
	logOutcome(outcome, plan.TargetEnvironmentKey)
	return nil
}

func planFromManifest(s *model.Settings, manifest *model.Manifest) (*model.DeploymentPlan, error) {
	destinationLabel, err := requireString(s, model.FlagDestinationEnvLabel)
	if err != nil {
		return nil, err
	}
	destination, err := manifest.EnvironmentByLabel(destinationLabel)
	if err != nil {
		return nil, err
	}

	plan := &model.DeploymentPlan{
		TargetEnvironmentKey: destination.Key,
		Notes:                manifest.DeploymentNotes,
	}
	if plan.Notes == "" {
		plan.Notes = defaultDeploymentNotes
	}

	if sourceLabel := s.String(model.FlagSourceEnvLabel); sourceLabel != "" {
		source, err := manifest.EnvironmentByLabel(sourceLabel)
		if err != nil {
			return nil, err
		}
		plan.SourceEnvironmentKey = source.Key
	}

	for _, app := range manifest.DeployableApplications(s.Bool(model.FlagIncludeTestApps)) {
		log.Info(fmt.Sprintf("Adding %s version %s to the deployment plan.", app.ApplicationName, app.VersionNumber))
		plan.Applications = append(plan.Applications, model.ApplicationVersionRef{
			ApplicationKey: app.ApplicationKey,
			VersionKey:     app.VersionKey,
		})
	}

	return plan, nil
}

func logOutcome(outcome common.DeploymentOutcome, environmentKey string) {
	if outcome == common.OutcomePrepared {
		log.Info(fmt.Sprintf("Deployment to environment %s is prepared and waits to be continued.", environmentKey))
		return
	}
	log.Info(fmt.Sprintf("Deployment to environment %s finished successfully.", environmentKey))
}
