//go:build test
// +build test

package commands

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func TestAddSecretCmd(t *testing.T) {
	tests := []struct {
		name           string
		commandArgs    []string
		secretName     string
		secretValue    string
		secretPassword string
		credentials    model.Credentials
		wantErr        string
		wantSecrets    map[string]string
	}{
		{
			name:           "add",
			secretName:     "lt-token",
			secretValue:    "val-1",
			secretPassword: common.SecretPassword,
			credentials: model.Credentials{
				"jira-token": common.MustEncryptSecret(t, "val-2"),
			},
			wantSecrets: map[string]string{
				"lt-token":   "val-1",
				"jira-token": "val-2",
			},
		},
		{
			name:           "add to a new credentials file",
			secretName:     "lt-token",
			secretValue:    "val-1",
			secretPassword: common.SecretPassword,
			wantSecrets: map[string]string{
				"lt-token": "val-1",
			},
		},
		{
			name:           "add with different password",
			secretName:     "lt-token",
			secretValue:    "val-1",
			secretPassword: common.SecretPassword,
			credentials: model.Credentials{
				"jira-token": common.MustEncryptSecret(t, "val-2", "other-password"),
			},
			wantErr: "others secrets are encrypted with a different password, please use the same one",
		},
		{
			name:           "edit secret",
			secretName:     "lt-token",
			secretValue:    "val-1",
			secretPassword: common.SecretPassword,
			commandArgs:    []string{fmt.Sprintf("--%s", model.FlagEdit)},
			credentials: model.Credentials{
				"lt-token": common.MustEncryptSecret(t, "val-1-before"),
			},
			wantSecrets: map[string]string{"lt-token": "val-1"},
		},
		{
			name:           "fails if the secret exists",
			secretName:     "lt-token",
			secretValue:    "val-1",
			secretPassword: common.SecretPassword,
			credentials: model.Credentials{
				"lt-token": common.MustEncryptSecret(t, "val-1-before"),
			},
			wantErr: "lt-token already exists, use --edit to overwrite",
		},
		{
			name:    "fails if missing name",
			wantErr: "Wrong number of arguments (0).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credentialsFile := filepath.Join(t.TempDir(), "credentials.json")
			store := common.NewCredentialStore(credentialsFile)

			if tt.credentials != nil {
				require.NoError(t, store.Save(tt.credentials))
			}

			if tt.secretPassword != "" {
				common.TestSetEnv(t, model.EnvKeySecretsPassword, tt.secretPassword)
			}

			if tt.secretValue != "" {
				common.TestSetEnv(t, model.EnvKeyAddSecretValue, tt.secretValue)
			}

			runCmd := common.CreateCliRunner(t, GetAddSecretCommand())

			cmd := []string{"outsystems-pipeline", "add-secret", "--" + model.FlagCredentialsFile, credentialsFile}
			cmd = append(cmd, tt.commandArgs...)

			if tt.secretName != "" {
				cmd = append(cmd, tt.secretName)
			}

			err := runCmd(cmd...)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assertSecrets(t, store, tt.wantSecrets)
		})
	}
}

func assertSecrets(t *testing.T, store *common.CredentialStore, wantSecrets map[string]string) {
	credentials, err := store.Load()
	require.NoError(t, err)
	require.Equalf(t, len(wantSecrets), len(credentials), "Invalid secrets length")

	for name, want := range wantSecrets {
		got, err := common.DecryptSecret(common.SecretPassword, credentials[name])
		require.NoError(t, err)
		assert.Equalf(t, want, got, "Secret %s mismatch", name)
	}
}

func TestAddSecretCmd_credentialsFileFromEnv(t *testing.T) {
	credentialsFile := filepath.Join(t.TempDir(), "secure", "credentials.json")
	common.TestSetEnv(t, "OSP_CREDENTIALS_FILE", credentialsFile)
	common.TestSetEnv(t, model.EnvKeySecretsPassword, common.SecretPassword)
	common.TestSetEnv(t, model.EnvKeyAddSecretValue, "lt-from-file")

	runCmd := common.CreateCliRunner(t, GetAddSecretCommand())
	require.NoError(t, runCmd("outsystems-pipeline", "add-secret", model.CredentialLifetimeToken))

	assertSecrets(t, common.NewCredentialStore(credentialsFile), map[string]string{model.CredentialLifetimeToken: "lt-from-file"})

	token, err := resolveToken(settingsFromArgs(t, nil), model.FlagLifetimeToken, model.CredentialLifetimeToken)
	require.NoError(t, err)
	assert.Equal(t, "lt-from-file", token)
}
