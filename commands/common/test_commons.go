//go:build test
// +build test

package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jfrog/jfrog-cli-core/v2/plugins"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

type Test interface {
	require.TestingT
	Cleanup(func())
}

const SecretPassword = "P@ssw0rd!P@ssw0rd!"

func SetCliIn(reader io.Reader) {
	cliIn = reader
}

func SetCliOut(writer io.Writer) {
	cliOut = writer
}

func MustJSONMarshal(t require.TestingT, data any) string {
	out, err := json.Marshal(data)
	require.NoError(t, err)
	return string(out)
}

func CreateTempFileWithContent(t Test, content string) string {
	file, err := os.CreateTemp("", "osp-cli-*.test")
	require.NoError(t, err)

	t.Cleanup(func() {
		// We do not care about this error
		_ = os.Remove(file.Name())
	})

	_, err = file.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, file.Close())

	return file.Name()
}

// PrepareArtifactsDirForTest returns a new artifacts folder, removed with the test.
func PrepareArtifactsDirForTest(t *testing.T) string {
	return filepath.Join(t.TempDir(), model.DefaultArtifactsDir)
}

func CreateCliRunner(t Test, commands ...components.Command) func(args ...string) error {
	app := components.App{}
	app.Name = "outsystems-pipeline"
	app.Commands = commands

	runCli := plugins.RunCliWithPlugin(app)

	return func(args ...string) error {
		oldArgs := os.Args
		t.Cleanup(func() {
			os.Args = oldArgs
		})
		os.Args = args
		return runCli()
	}
}

func MustEncryptSecret(t require.TestingT, secretValue string, password ...string) string {
	key := SecretPassword
	if len(password) > 0 {
		key = password[0]
	}
	encryptedValue, err := EncryptSecret(key, secretValue)
	require.NoError(t, err)
	return encryptedValue
}

func TestSetEnv(t Test, key, value string) {
	err := os.Setenv(key, value)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := os.Unsetenv(key); err != nil {
			log.Warn(fmt.Sprintf("cannot unset %s: %+v", key, err))
		}
	})
}

type AssertOutputFunc func(t *testing.T, stdOutput []byte, err error)

func AssertOutputErrorRegexp(pattern string) AssertOutputFunc {
	return func(t *testing.T, stdOutput []byte, err error) {
		require.Error(t, err)
		assert.Regexpf(t, pattern, err.Error(), "expected error to match pattern %q, got %+v", pattern, err)
	}
}

func AssertOutputError(errorMessage string, errorMessageArgs ...any) AssertOutputFunc {
	return func(t *testing.T, stdOutput []byte, err error) {
		require.Error(t, err)
		assert.EqualError(t, err, fmt.Sprintf(errorMessage, errorMessageArgs...))
	}
}

func AssertOutputJSON[T any](wantResponse T) AssertOutputFunc {
	return func(t *testing.T, output []byte, err error) {
		require.NoError(t, err)

		outputData := new(T)

		err = json.Unmarshal(output, outputData)
		require.NoError(t, err)

		assert.Equal(t, wantResponse, *outputData)
	}
}

type IntFlagMap map[string]int

func (m IntFlagMap) GetIntFlagValue(key string) (int, error) {
	val := m[key]
	return val, nil
}

func (m IntFlagMap) IsFlagSet(key string) bool {
	_, ok := m[key]
	return ok
}
