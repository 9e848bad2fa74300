//go:build test
// +build test

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

func TestEncryptDecryptSecret(t *testing.T) {
	encrypted, err := EncryptSecret(SecretPassword, "my-token")
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "my-token")

	clear, err := DecryptSecret(SecretPassword, encrypted)
	require.NoError(t, err)
	assert.Equal(t, "my-token", clear)

	_, err = DecryptSecret("another-password", encrypted)
	assert.Error(t, err)

	_, err = DecryptSecret(SecretPassword, "c2hvcnQ=")
	assert.EqualError(t, err, "invalid encrypted secret length")
}

func TestReadSecretPasswordFromEnv(t *testing.T) {
	TestSetEnv(t, model.EnvKeySecretsPassword, SecretPassword)

	password, err := ReadSecretPassword()
	require.NoError(t, err)
	assert.Equal(t, SecretPassword, password)
}

func TestCredentialStore(t *testing.T) {
	TestSetEnv(t, model.EnvKeySecretsPassword, SecretPassword)

	file := filepath.Join(t.TempDir(), "ci", "credentials.json")
	store := NewCredentialStore(file)

	credentials, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, credentials)

	_, err = store.Lookup(model.CredentialLifetimeToken)
	assert.ErrorIs(t, err, model.ErrNotFound)

	credentials[model.CredentialLifetimeToken] = MustEncryptSecret(t, "lt-secret")
	require.NoError(t, store.Save(credentials))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := store.Lookup(model.CredentialLifetimeToken)
	require.NoError(t, err)
	assert.Equal(t, "lt-secret", token)
}

func TestCredentialStoreWrongPassword(t *testing.T) {
	TestSetEnv(t, model.EnvKeySecretsPassword, "another-password")

	store := NewCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, store.Save(model.Credentials{model.CredentialJiraToken: MustEncryptSecret(t, "jira-secret")}))

	_, err := store.Lookup(model.CredentialJiraToken)
	assert.EqualError(t, err, "cannot decrypt credential 'jira-token', please check the password")
}

func TestCredentialStoreInvalidFile(t *testing.T) {
	file := CreateTempFileWithContent(t, "not json")

	_, err := NewCredentialStore(file).Load()
	assert.ErrorContains(t, err, "invalid credentials file")
}
