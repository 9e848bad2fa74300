package commands

import (
	"fmt"

	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetDownloadAppsCommand() components.Command {
	return components.Command{
		Name:        "download-apps",
		Description: "Download the application packages from the source environment into the artifacts folder",
		Aliases:     []string{"dl"},
		Flags: joinFlags(
			model.GetLifetimeFlags(),
			model.GetManifestFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagSourceEnv, "Name, as displayed in LifeTime, of the environment to download from.", components.SetMandatory()),
				components.NewStringFlag(model.FlagAppList, "Comma separated list of application names.", components.SetMandatory()),
				model.GetFriendlyPackageNamesFlag(),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runDownloadAppsCommand(settings)
		},
	}
}

func runDownloadAppsCommand(s *model.Settings) error {
	environmentName, err := requireString(s, model.FlagSourceEnv)
	if err != nil {
		return err
	}
	appList, err := requireString(s, model.FlagAppList)
	if err != nil {
		return err
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}
	if client.APIVersion() == common.APIVersionV1 {
		return fmt.Errorf("application download is not available with LifeTime API v%d: %w", common.APIVersionV1, model.ErrNotImplemented)
	}

	var manifest *model.Manifest
	if s.String(model.FlagManifestFile) != "" || s.String(model.FlagManifest) != "" {
		if manifest, err = getManifest(s); err != nil {
			return err
		}
	}

	environmentKey, err := client.GetEnvironmentKey(environmentName)
	if err != nil {
		return err
	}

	artifacts := getArtifactStore(s)
	friendly := s.Bool(model.FlagFriendlyPackageNames)

	for _, appName := range splitList(appList) {
		app, err := resolveDownloadVersion(client, manifest, environmentKey, appName)
		if err != nil {
			return err
		}

		pkg, err := client.DownloadApplicationVersion(environmentKey, app.ApplicationKey, app.VersionKey)
		if err != nil {
			return err
		}

		packageName := common.PackageArtifactName(*app, friendly)
		if err = artifacts.StoreBytes(packageName, pkg); err != nil {
			return err
		}
		log.Info(fmt.Sprintf("%s version %s downloaded to %s.", app.ApplicationName, app.VersionNumber, artifacts.Path(packageName)))
	}

	return nil
}

// resolveDownloadVersion picks the version listed in the manifest, or the version running in the environment.
func resolveDownloadVersion(client common.LifetimeAPI, manifest *model.Manifest, environmentKey, appName string) (*model.ManifestApplication, error) {
	if manifest != nil {
		return manifest.ApplicationByName(appName)
	}

	running, err := client.GetRunningVersion(environmentKey, appName)
	if err != nil {
		return nil, err
	}

	version, err := client.GetApplicationVersion(running.ApplicationKey, running.VersionKey)
	if err != nil {
		return nil, err
	}

	return &model.ManifestApplication{
		ApplicationName: running.ApplicationName,
		ApplicationKey:  running.ApplicationKey,
		VersionNumber:   version.Version,
		VersionKey:      running.VersionKey,
	}, nil
}
