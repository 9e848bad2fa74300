package commands

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetTagAppsCommand() components.Command {
	return components.Command{
		Name:        "tag-apps",
		Description: "Create a new version of the listed applications when they were modified since their last tag",
		Aliases:     []string{"ta"},
		Flags: joinFlags(
			model.GetLifetimeFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagSourceEnv, "Name, as displayed in LifeTime, of the environment where the applications are modified.", components.SetMandatory()),
				components.NewStringFlag(model.FlagAppList, "Comma separated list of application names.", components.SetMandatory()),
				components.NewStringFlag(model.FlagVersion, "Version number of the new tags. Example: \"1.2.0\".", components.SetMandatory()),
				components.NewStringFlag(model.FlagLogMessage, "Change log of the new tags.", components.WithStrDefaultValue(model.DefaultTagLogMessage)),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runTagAppsCommand(settings)
		},
	}
}

func runTagAppsCommand(s *model.Settings) error {
	environmentName, err := requireString(s, model.FlagSourceEnv)
	if err != nil {
		return err
	}
	appList, err := requireString(s, model.FlagAppList)
	if err != nil {
		return err
	}
	versionNumber, err := requireString(s, model.FlagVersion)
	if err != nil {
		return err
	}
	changeLog := s.String(model.FlagLogMessage)
	if changeLog == "" {
		changeLog = model.DefaultTagLogMessage
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}

	environmentKey, err := client.GetEnvironmentKey(environmentName)
	if err != nil {
		return err
	}

	var requests []common.TagRequest
	for _, appName := range splitList(appList) {
		requests = append(requests, common.TagRequest{ApplicationName: appName, VersionNumber: versionNumber, ChangeLog: changeLog})
	}

	results, err := common.NewTagger(client).TagApplications(environmentKey, requests)
	if printErr := common.PrintValueAsJSON(results); printErr != nil && err == nil {
		return printErr
	}
	return err
}
