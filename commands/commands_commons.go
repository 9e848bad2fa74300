// Package commands provides the pipeline stage commands.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func joinFlags(groups ...[]components.Flag) []components.Flag {
	var all []components.Flag
	for _, group := range groups {
		all = append(all, group...)
	}
	return all
}

func getArtifactStore(s *model.Settings) *common.ArtifactStore {
	dir := s.String(model.FlagArtifacts)
	if dir == "" {
		dir = model.DefaultArtifactsDir
	}
	return common.NewArtifactStore(dir)
}

func getCredentialStore(s *model.Settings) *common.CredentialStore {
	credentialsFile := s.String(model.FlagCredentialsFile)
	if credentialsFile == "" {
		credentialsFile = model.DefaultCredentialsFile
	}
	return common.NewCredentialStore(credentialsFile)
}

// resolveToken reads a token from the flags, the environment or the config file, then from the credentials file.
func resolveToken(s *model.Settings, flag, credentialName string) (string, error) {
	if token := s.String(flag); token != "" {
		return token, nil
	}

	token, err := getCredentialStore(s).Lookup(credentialName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("missing --%s, provide it as a flag, as %s_%s or in the credentials file", flag, model.EnvPrefix, envSuffix(flag))
		}
		return "", err
	}
	return token, nil
}

func envSuffix(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func getLifetimeClient(s *model.Settings) (*common.LifetimeClient, error) {
	rawURL := s.String(model.FlagLifetimeURL)
	if rawURL == "" {
		return nil, fmt.Errorf("missing --%s", model.FlagLifetimeURL)
	}

	apiVersion, err := s.Int(model.FlagLifetimeAPIVersion, model.DefaultLifetimeAPIVersion)
	if err != nil {
		return nil, err
	}

	token, err := resolveToken(s, model.FlagLifetimeToken, model.CredentialLifetimeToken)
	if err != nil {
		return nil, err
	}

	endpoint := s.String(model.FlagLifetimeEndpoint)
	if endpoint == "" {
		endpoint = model.DefaultLifetimeEndpoint
	}

	transferTimeout, err := s.Seconds(model.FlagTransferTimeout, model.DefaultTransferTimeoutSecs)
	if err != nil {
		return nil, err
	}

	proto, host := common.ParseLifetimeURL(rawURL)

	return common.NewLifetimeClient(s, common.LifetimeServer{
		Protocol:        proto,
		Host:            host,
		Endpoint:        endpoint,
		APIVersion:      apiVersion,
		Token:           token,
		TransferTimeout: transferTimeout,
	})
}

func getJiraClient(s *model.Settings) (*common.JiraClient, error) {
	jiraURL := s.String(model.FlagJiraURL)
	if jiraURL == "" {
		return nil, fmt.Errorf("missing --%s", model.FlagJiraURL)
	}

	token, err := resolveToken(s, model.FlagJiraToken, model.CredentialJiraToken)
	if err != nil {
		return nil, err
	}

	return common.NewJiraClient(s, common.JiraServer{
		URL:   jiraURL,
		User:  s.String(model.FlagJiraUser),
		Token: token,
	})
}

func getTicketCorrelator(s *model.Settings) (*common.TicketCorrelator, error) {
	client, err := getJiraClient(s)
	if err != nil {
		return nil, err
	}
	return common.NewTicketCorrelator(client, s.String(model.FlagJiraAppField), s.String(model.FlagJiraVersionField)), nil
}

func getDeployerOptions(s *model.Settings) (common.DeployerOptions, error) {
	options := common.DefaultDeployerOptions()

	var err error
	if options.PollInterval, err = s.Seconds(model.FlagPollInterval, model.DefaultPollIntervalSecs); err != nil {
		return options, err
	}
	if options.DeploymentTimeout, err = s.Seconds(model.FlagDeploymentTimeout, model.DefaultDeploymentTimeoutSecs); err != nil {
		return options, err
	}
	if options.QueueTimeout, err = s.Seconds(model.FlagQueueTimeout, model.DefaultQueueTimeoutSecs); err != nil {
		return options, err
	}

	options.AllowContinueWithErrors = s.Bool(model.FlagAllowContinueWithErrors)
	options.RedeployOutdated = !s.Bool(model.FlagNoRedeployOutdated)
	options.IgnoreWarnings = s.Bool(model.FlagIgnoreWarnings)
	options.StopAfterPrepare = s.Bool(model.FlagStopAfterPrepare)

	return options, nil
}

func getManifest(s *model.Settings) (*model.Manifest, error) {
	return common.LoadManifest(s.String(model.FlagManifestFile), s.String(model.FlagManifest))
}

func requireString(s *model.Settings, flag string) (string, error) {
	value := strings.TrimSpace(s.String(flag))
	if value == "" {
		return "", fmt.Errorf("missing --%s", flag)
	}
	return value, nil
}

// splitList splits a comma separated list, e.g. "App1,App2 With Spaces".
func splitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// newDeployer is replaced in tests to avoid waiting between status checks.
var newDeployer = common.NewDeployer
