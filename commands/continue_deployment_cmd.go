package commands

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetContinueDeploymentCommand() components.Command {
	return components.Command{
		Name:        "continue-deployment",
		Description: "Resume the prepared two-step deployment plan of the destination environment",
		Aliases:     []string{"cd"},
		Flags: joinFlags(
			model.GetLifetimeFlags(),
			model.GetDeploymentFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagDestinationEnv, "Name, as displayed in LifeTime, of the destination environment.", components.SetMandatory()),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runContinueDeploymentCommand(settings)
		},
	}
}

func runContinueDeploymentCommand(s *model.Settings) error {
	environmentName, err := requireString(s, model.FlagDestinationEnv)
	if err != nil {
		return err
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}

	environmentKey, err := client.GetEnvironmentKey(environmentName)
	if err != nil {
		return err
	}

	options, err := getDeployerOptions(s)
	if err != nil {
		return err
	}
	options.StopAfterPrepare = false

	outcome, err := newDeployer(client, getArtifactStore(s), options).ContinueExisting(environmentKey)
	if err != nil {
		return err
	}
	logOutcome(outcome, environmentKey)
	return nil
}
