package commands

import (
	"errors"
	"fmt"

	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

func GetApplyConfigCommand() components.Command {
	return components.Command{
		Name:        "apply-config",
		Description: "Apply the configuration items of the manifest to the destination environment",
		Aliases:     []string{"ac"},
		Flags: joinFlags(
			model.GetLifetimeFlags(),
			model.GetManifestFlags(),
			[]components.Flag{
				components.NewStringFlag(model.FlagDestinationEnvLabel, "Label, as configured in the manifest, of the destination environment.", components.SetMandatory()),
			},
		),
		Action: func(c *components.Context) error {
			settings, err := model.NewSettings(c)
			if err != nil {
				return err
			}
			return runApplyConfigCommand(settings)
		},
	}
}

func runApplyConfigCommand(s *model.Settings) error {
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

	items := manifest.ConfigurationItemsFor(destination.Key)
	if len(items) == 0 {
		log.Info(fmt.Sprintf("No configuration item to apply on %s.", destination.Name))
		return nil
	}

	for _, item := range items {
		if item.Type != model.ConfigurationItemSiteProperty {
			return fmt.Errorf("configuration item %s has type %s: %w", item.Name, item.Type, model.ErrNotImplemented)
		}
	}

	client, err := getLifetimeClient(s)
	if err != nil {
		return err
	}

	var errs []error
	for _, item := range items {
		result, err := client.SetSiteProperty(item.ModuleKey, destination.Key, item.Key, item.Value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !result.Success {
			log.Error(fmt.Sprintf("Site property %s of module %s was not set: %s", item.Name, item.ModuleName, result.Message))
			errs = append(errs, fmt.Errorf("site property %s was not set: %s", item.Name, result.Message))
			continue
		}
		log.Info(fmt.Sprintf("Site property %s of module %s set on %s.", item.Name, item.ModuleName, destination.Name))
	}

	return errors.Join(errs...)
}
