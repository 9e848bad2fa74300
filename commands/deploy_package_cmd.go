package commands

import (
	"fmt"

	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetDeployPackageCommand() components.Command {
	return components.Command{
		Name:        "deploy-package",
		Description: "Deploy the downloaded application packages of the manifest to the destination environment",
		Aliases:     []string{"dp"},
		Flags: joinFlags(
			model.GetLifetimeFlags(),
			model.GetManifestFlags(),
			model.GetDeploymentFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagDestinationEnvLabel, "Label, as configured in the manifest, of the destination environment.", components.SetMandatory()),
				components.NewBoolFlag(model.FlagIncludeTestApps, "Include test applications.", components.WithBoolDefaultValue(false)),
				model.GetFriendlyPackageNamesFlag(),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runDeployPackageCommand(settings)
		},
	}
}

func runDeployPackageCommand(s *model.Settings) error {
	manifest, err := getManifest(s)
	if err != nil {
		return err
	}

	destinationLabel, err := requireString(s, model.FlagDestinationEnvLabel)
	if err != nil {
		return err
	}
	destination, err := manifest.EnvironmentByLabel(destinationLabel)
	if err != nil {
		return err
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}

	options, err := getDeployerOptions(s)
	if err != nil {
		return err
	}

	artifacts := getArtifactStore(s)
	deployer := newDeployer(client, artifacts, options)
	friendly := s.Bool(model.FlagFriendlyPackageNames)

	if err = deployer.ClearReports(); err != nil {
		return err
	}

	for _, app := range manifest.DeployableApplications(s.Bool(model.FlagIncludeTestApps)) {
		packageName := common.PackageArtifactName(app, friendly)
		if !artifacts.Exists(packageName) {
			log.Warn(fmt.Sprintf("Package %s of application %s was not found, it is skipped.", artifacts.Path(packageName), app.ApplicationName))
			continue
		}
		pkg, err := artifacts.LoadBytes(packageName)
		if err != nil {
			return err
		}

		log.Info(fmt.Sprintf("Deploying package of %s version %s.", app.ApplicationName, app.VersionNumber))
		outcome, err := deployer.DeployPackage(destination.Key, pkg)
		if err != nil {
			return fmt.Errorf("deployment of %s package failed: %w", app.ApplicationName, err)
		}
		logOutcome(outcome, destination.Key)
	}

	return nil
}
