//go:build test
// +build test

package commands

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func TestContinueDeploymentCommand(t *testing.T) {
	prepared := model.DeploymentStatus{DeploymentStatus: model.DeploymentStatusNeedsIntervention, Info: model.DeploymentInfoPrepared}
	finished := model.DeploymentStatus{DeploymentStatus: model.DeploymentStatusFinishedSuccessful}
	qa := model.Environment{Key: "env-123", Name: "Quality"}

	tests := []struct {
		name          string
		commandArgs   []string
		stub          *common.LifetimeStub
		wantErr       string
		wantContinued int
	}{
		{
			name:        "resume the prepared plan",
			commandArgs: []string{"--destination-env", "Quality", "--stop-after-prepare"},
			stub: common.NewLifetimeStub(t).
				WithEnvironments(qa).
				WithDeployment(model.Deployment{Key: "deployment-7", TargetEnvironmentKey: "env-123"}, prepared, prepared, finished),
			wantContinued: 1,
		},
		{
			name:        "unknown environment",
			commandArgs: []string{"--destination-env", "Production"},
			stub:        common.NewLifetimeStub(t).WithEnvironments(qa),
			wantErr:     "environment 'Production' does not exist in LifeTime: not found",
		},
		{
			name:        "no running plan",
			commandArgs: []string{"--destination-env", "Quality"},
			stub:        common.NewLifetimeStub(t).WithEnvironments(qa),
			wantErr:     "unable to find a running deployment plan on environment env-123: not found",
		},
		{
			name:        "plan is not prepared",
			commandArgs: []string{"--destination-env", "Quality"},
			stub: common.NewLifetimeStub(t).
				WithEnvironments(qa).
				WithDeployment(model.Deployment{Key: "deployment-7", TargetEnvironmentKey: "env-123"}, model.DeploymentStatus{DeploymentStatus: model.DeploymentStatusRunning}),
			wantErr: "deployment plan deployment-7 is not in 'Prepared' status (running)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noWait(t)
			common.NewMockLifetimeServer(t, tt.stub.WithT(t))

			runCmd := common.CreateCliRunner(t, GetContinueDeploymentCommand())

			cmd := append([]string{"outsystems-pipeline", "continue-deployment", "--artifacts", common.PrepareArtifactsDirForTest(t)}, tt.commandArgs...)

			err := runCmd(cmd...)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
			assert.Len(t, tt.stub.Requests(http.MethodPost, "/deployments/deployment-7/continue"), tt.wantContinued)
		})
	}
}
