package commands

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetEpicAppsCommand() components.Command {
	return components.Command{
		Name:        "epic-apps",
		Description: "List the applications and versions described by the child issues of a Jira epic",
		Aliases:     []string{"ea"},
		Flags: joinFlags(
			model.GetJiraFlags(),
			[]components.Flag{
				model.GetArtifactsFlag(),
				components.NewStringFlag(model.FlagCredentialsFile, "Encrypted credentials file used when tokens are not provided.", components.WithStrDefaultValue(model.DefaultCredentialsFile)),
				model.GetTimeoutFlag(),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runEpicAppsCommand(settings)
		},
	}
}

func runEpicAppsCommand(s *model.Settings) error {
	applications, err := epicApplications(s)
	if err != nil {
		return err
	}
	return common.PrintValueAsJSON(applications)
}

// epicApplications reads the applications of the epic and keeps them as an artifact for the next stages.
func epicApplications(s *model.Settings) ([]model.TicketApplication, error) {
	epic, err := requireString(s, model.FlagEpic)
	if err != nil {
		return nil, err
	}

	correlator, err := getTicketCorrelator(s)
	if err != nil {
		return nil, err
	}

	applications, err := correlator.ChildApplications(epic)
	if err != nil {
		return nil, err
	}
	if applications == nil {
		applications = []model.TicketApplication{}
	}

	if err = getArtifactStore(s).Store(common.EpicApplicationsArtifact, applications); err != nil {
		return nil, err
	}
	return applications, nil
}
