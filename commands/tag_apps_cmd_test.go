//go:build test
// +build test

package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func newTaggingStub(t *testing.T) *common.LifetimeStub {
	return common.NewLifetimeStub(t).
		WithEnvironments(model.Environment{Key: "env-001", Name: "Development"}).
		WithApplications(
			model.Application{Key: "app-1", Name: "App1", AppStatusInEnvs: []model.ApplicationStatusInEnv{
				{EnvironmentKey: "env-001", BaseApplicationVersionKey: "v-1", IsModified: true},
			}},
			model.Application{Key: "app-2", Name: "App2 With Spaces", AppStatusInEnvs: []model.ApplicationStatusInEnv{
				{EnvironmentKey: "env-001", BaseApplicationVersionKey: "v-5"},
			}},
		)
}

func captureOutput(t *testing.T) *bytes.Buffer {
	var output bytes.Buffer
	common.SetCliOut(&output)
	t.Cleanup(func() {
		common.SetCliOut(os.Stdout)
	})
	return &output
}

func TestTagAppsCommand(t *testing.T) {
	tests := []struct {
		name        string
		commandArgs []string
		wantErr     string
		wantResults []common.TagResult
		wantBody    string
	}{
		{
			name:        "tag the modified applications",
			commandArgs: []string{"--app-list", "App1,App2 With Spaces", "--version-nbr", "1.1.0"},
			wantResults: []common.TagResult{
				{ApplicationName: "App1", ApplicationKey: "app-1", VersionNumber: "1.1.0", VersionKey: "version-1", Tagged: true},
				{ApplicationName: "App2 With Spaces", ApplicationKey: "app-2", VersionNumber: "1.1.0", VersionKey: "v-5"},
			},
			wantBody: `{"ChangeLog":"Version created automatically using outsystems-pipeline.","Version":"1.1.0","MobileVersions":[]}`,
		},
		{
			name:        "custom change log",
			commandArgs: []string{"--app-list", "App1", "--version-nbr", "2.0.0", "--log-msg", "Release 2"},
			wantResults: []common.TagResult{
				{ApplicationName: "App1", ApplicationKey: "app-1", VersionNumber: "2.0.0", VersionKey: "version-1", Tagged: true},
			},
			wantBody: `{"ChangeLog":"Release 2","Version":"2.0.0","MobileVersions":[]}`,
		},
		{
			name:        "unknown application does not stop the others",
			commandArgs: []string{"--app-list", "Unknown,App1", "--version-nbr", "1.1.0"},
			wantErr:     "application 'Unknown' does not exist in LifeTime: not found",
			wantResults: []common.TagResult{
				{ApplicationName: "Unknown", VersionNumber: "1.1.0"},
				{ApplicationName: "App1", ApplicationKey: "app-1", VersionNumber: "1.1.0", VersionKey: "version-1", Tagged: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newTaggingStub(t)
			common.NewMockLifetimeServer(t, stub)
			output := captureOutput(t)

			runCmd := common.CreateCliRunner(t, GetTagAppsCommand())

			cmd := append([]string{"outsystems-pipeline", "tag-apps", "--source-env", "Development"}, tt.commandArgs...)

			err := runCmd(cmd...)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}

			var results []common.TagResult
			require.NoError(t, json.Unmarshal(output.Bytes(), &results))
			assert.Equal(t, tt.wantResults, results)

			if tt.wantBody != "" {
				created := stub.Requests(http.MethodPost, "/environments/env-001/applications/app-1/versions")
				require.Len(t, created, 1)
				assert.JSONEq(t, tt.wantBody, string(created[0].Body))
			}
		})
	}
}

func TestTagAppsCommand_unknownEnvironment(t *testing.T) {
	common.NewMockLifetimeServer(t, newTaggingStub(t))

	runCmd := common.CreateCliRunner(t, GetTagAppsCommand())

	err := runCmd("outsystems-pipeline", "tag-apps", "--source-env", "Production", "--app-list", "App1", "--version-nbr", "1.1.0")

	common.AssertOutputError("environment '%s' does not exist in LifeTime: not found", "Production")(t, nil, err)
}
