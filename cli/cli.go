package cli

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"

	"github.com/os-pipeline/outsystems-pipeline/commands"
)

func GetApp() components.App {
	app := components.App{}
	app.Name = "outsystems-pipeline"
	app.Description = "Tools for promoting OutSystems applications through LifeTime environments"
	app.Version = "v1.0.0"
	app.Commands = getCommands()
	return app
}

func getCommands() []components.Command {
	return []components.Command{
		commands.GetDeployCommand(),
		commands.GetDeployPackageCommand(),
		commands.GetContinueDeploymentCommand(),
		commands.GetTagAppsCommand(),
		commands.GetDownloadAppsCommand(),
		commands.GetApplyConfigCommand(),
		commands.GetEpicAppsCommand(),
		commands.GetDeployEpicCommand(),
		commands.GetAddSecretCommand(),
	}
}
