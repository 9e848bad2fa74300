package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
)

const (
	FlagArtifacts               = "artifacts"
	FlagLifetimeURL             = "lt-url"
	FlagLifetimeToken           = "lt-token"
	FlagLifetimeAPIVersion      = "lt-api-version"
	FlagLifetimeEndpoint        = "lt-endpoint"
	FlagTimeout                 = "timeout-ms"
	FlagTransferTimeout         = "transfer-timeout-sec"
	FlagManifestFile            = "manifest-file"
	FlagManifest                = "manifest"
	FlagDestinationEnvLabel     = "destination-env-label"
	FlagSourceEnvLabel          = "source-env-label"
	FlagDestinationEnv          = "destination-env"
	FlagSourceEnv               = "source-env"
	FlagIncludeTestApps         = "include-test-apps"
	FlagFriendlyPackageNames    = "friendly-package-names"
	FlagAllowContinueWithErrors = "allow-continue-with-errors"
	FlagNoRedeployOutdated      = "no-redeploy-outdated"
	FlagIgnoreWarnings          = "ignore-warnings"
	FlagStopAfterPrepare        = "stop-after-prepare"
	FlagPollInterval            = "poll-interval-sec"
	FlagDeploymentTimeout       = "deployment-timeout-sec"
	FlagQueueTimeout            = "queue-timeout-sec"
	FlagAppList                 = "app-list"
	FlagVersion                 = "version-nbr"
	FlagLogMessage              = "log-msg"
	FlagEpic                    = "epic"
	FlagJiraURL                 = "jira-url"
	FlagJiraUser                = "jira-user"
	FlagJiraToken               = "jira-token"
	FlagJiraAppField            = "jira-app-field"
	FlagJiraVersionField        = "jira-version-field"
	FlagCredentialsFile         = "credentials-file"
	FlagEdit                    = "edit"

	DefaultArtifactsDir          = "Artifacts"
	DefaultLifetimeEndpoint      = "lifetimeapi/rest"
	DefaultLifetimeAPIVersion    = 2
	DefaultPollIntervalSecs      = 20
	DefaultDeploymentTimeoutSecs = 3600
	DefaultQueueTimeoutSecs      = 1800
	DefaultTransferTimeoutSecs   = 1800
	DefaultJiraAppField          = "description"
	DefaultJiraVersionField      = "customfield_10041"
	DefaultCredentialsFile       = "credentials.json"
	DefaultTagLogMessage         = "Version created automatically using outsystems-pipeline."
	defaultTimeoutMillis         = 30000
)

var (
	EnvKeySecretsPassword = "OSP_SECRETS_PASSWORD"
	EnvKeyAddSecretValue  = "OSP_ADD_SECRET_VALUE"
)

type IntFlagProvider interface {
	IsFlagSet(name string) bool
	GetIntFlagValue(name string) (int, error)
}

func GetTimeoutFlag() components.StringFlag {
	return components.NewStringFlag(FlagTimeout, "The request timeout in milliseconds", components.WithIntDefaultValue(defaultTimeoutMillis))
}

func GetArtifactsFlag() components.StringFlag {
	return components.NewStringFlag(FlagArtifacts, "Name of the artifacts folder.", components.WithStrDefaultValue(DefaultArtifactsDir))
}

// GetLifetimeFlags returns the flags shared by every command talking to LifeTime.
func GetLifetimeFlags() []components.Flag {
	return []components.Flag{
		GetArtifactsFlag(),
		components.NewStringFlag(FlagLifetimeURL, "URL of the LifeTime environment, without the API endpoint. Example: \"https://<lifetime_host>\"."),
		components.NewStringFlag(FlagLifetimeToken, "Service account token for LifeTime API calls."),
		components.NewStringFlag(FlagLifetimeAPIVersion, "LifeTime API version number. Use 1 for LifeTime <= 10, 2 for LifeTime >= 11.", components.WithIntDefaultValue(DefaultLifetimeAPIVersion)),
		components.NewStringFlag(FlagLifetimeEndpoint, "LifeTime API endpoint, without the version.", components.WithStrDefaultValue(DefaultLifetimeEndpoint)),
		components.NewStringFlag(FlagCredentialsFile, "Encrypted credentials file used when tokens are not provided.", components.WithStrDefaultValue(DefaultCredentialsFile)),
		GetTimeoutFlag(),
		components.NewStringFlag(FlagTransferTimeout, "Seconds allowed to upload or download an application package.", components.WithIntDefaultValue(DefaultTransferTimeoutSecs)),
	}
}

// GetDeploymentFlags returns the flags driving the deployment plan execution.
func GetDeploymentFlags() []components.Flag {
	return []components.Flag{
		components.NewBoolFlag(FlagAllowContinueWithErrors, "Start the deployment plan even if it has conflicts (LifeTime API v2 only).", components.WithBoolDefaultValue(false)),
		components.NewBoolFlag(FlagNoRedeployOutdated, "Do not redeploy outdated consumer applications.", components.WithBoolDefaultValue(false)),
		components.NewBoolFlag(FlagIgnoreWarnings, "Ignore deployment plan warnings when starting it.", components.WithBoolDefaultValue(false)),
		components.NewBoolFlag(FlagStopAfterPrepare, "Stop once a two-step deployment is prepared instead of resuming it.", components.WithBoolDefaultValue(false)),
		components.NewStringFlag(FlagPollInterval, "Seconds between two deployment status checks.", components.WithIntDefaultValue(DefaultPollIntervalSecs)),
		components.NewStringFlag(FlagDeploymentTimeout, "Seconds to wait for a deployment plan to finish.", components.WithIntDefaultValue(DefaultDeploymentTimeoutSecs)),
		components.NewStringFlag(FlagQueueTimeout, "Seconds to wait for the target environment to be free.", components.WithIntDefaultValue(DefaultQueueTimeoutSecs)),
	}
}

func GetManifestFlags() []components.Flag {
	return []components.Flag{
		components.NewStringFlag(FlagManifestFile, "Manifest file path, used to promote the same application versions throughout the pipeline execution."),
		components.NewStringFlag(FlagManifest, "Manifest content in JSON format. Ignored when a manifest file is provided."),
	}
}

func GetJiraFlags() []components.Flag {
	return []components.Flag{
		components.NewStringFlag(FlagEpic, "Key of the Jira epic whose child issues describe the applications.", components.SetMandatory()),
		components.NewStringFlag(FlagJiraURL, "Base URL of the Jira instance."),
		components.NewStringFlag(FlagJiraUser, "Jira user. When set, basic authentication is used with the token as password."),
		components.NewStringFlag(FlagJiraToken, "Jira API token."),
		components.NewStringFlag(FlagJiraAppField, "Issue field holding the application name.", components.WithStrDefaultValue(DefaultJiraAppField)),
		components.NewStringFlag(FlagJiraVersionField, "Issue field holding the target version number.", components.WithStrDefaultValue(DefaultJiraVersionField)),
	}
}

func GetFriendlyPackageNamesFlag() components.BoolFlag {
	return components.NewBoolFlag(FlagFriendlyPackageNames, "Whether application packages use a user-friendly name. Example: \"AppName_v1_2_1.oap\".", components.WithBoolDefaultValue(false))
}

func GetTimeoutParameter(c IntFlagProvider) (time.Duration, error) {
	if !c.IsFlagSet(FlagTimeout) {
		return defaultTimeoutMillis * time.Millisecond, nil
	}
	value, err := c.GetIntFlagValue(FlagTimeout)
	if err != nil {
		log.Debug(fmt.Sprintf("Invalid timeout: %+v", err))
		return 0, errors.New("invalid timeout provided")
	}
	return time.Duration(value) * time.Millisecond, nil
}
