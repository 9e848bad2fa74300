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

func TestDeployPackageCommand(t *testing.T) {
	app1 := model.ManifestApplication{ApplicationName: "App1", VersionNumber: "1.0.0", VersionKey: "v-1"}
	app1Tests := model.ManifestApplication{ApplicationName: "App1 Tests", VersionNumber: "1.0.0", VersionKey: "v-2"}

	tests := []struct {
		name        string
		commandArgs []string
		packages    map[string]string
		stub        func(t *testing.T) *common.LifetimeStub
		wantErr     string
		wantUploads []string
	}{
		{
			name:        "deploy the stored packages",
			commandArgs: []string{"--destination-env-label", "QA"},
			packages: map[string]string{
				common.PackageArtifactName(app1, false):      "app1-oap",
				common.PackageArtifactName(app1Tests, false): "app1-tests-oap",
			},
			wantUploads: []string{"app1-oap"},
		},
		{
			name:        "friendly package names with test applications",
			commandArgs: []string{"--destination-env-label", "QA", "--friendly-package-names", "--include-test-apps"},
			packages: map[string]string{
				common.PackageArtifactName(app1, true):      "app1-oap",
				common.PackageArtifactName(app1Tests, true): "app1-tests-oap",
			},
			wantUploads: []string{"app1-oap", "app1-tests-oap"},
		},
		{
			name:        "missing packages are skipped",
			commandArgs: []string{"--destination-env-label", "QA", "--include-test-apps"},
			packages: map[string]string{
				common.PackageArtifactName(app1Tests, false): "app1-tests-oap",
			},
			wantUploads: []string{"app1-tests-oap"},
		},
		{
			name:        "failed package deployment",
			commandArgs: []string{"--destination-env-label", "QA"},
			packages: map[string]string{
				common.PackageArtifactName(app1, false): "app1-oap",
			},
			stub: func(t *testing.T) *common.LifetimeStub {
				return common.NewLifetimeStub(t).WithNewPlanStatuses(model.DeploymentStatus{DeploymentStatus: model.DeploymentStatusAborted})
			},
			wantErr:     "deployment of App1 package failed: deployment plan deployment-1 finished with status aborted: deployment plan failed",
			wantUploads: []string{"app1-oap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noWait(t)

			stub := common.NewLifetimeStub(t)
			if tt.stub != nil {
				stub = tt.stub(t)
			}
			common.NewMockLifetimeServer(t, stub)

			artifactsDir := common.PrepareArtifactsDirForTest(t)
			artifacts := common.NewArtifactStore(artifactsDir)
			require.NoError(t, artifacts.Store(common.DeploymentErrorsArtifact, "previous run"))
			for name, content := range tt.packages {
				require.NoError(t, artifacts.StoreBytes(name, []byte(content)))
			}

			runCmd := common.CreateCliRunner(t, GetDeployPackageCommand())

			cmd := append([]string{"outsystems-pipeline", "deploy-package", "--manifest", sampleManifest, "--artifacts", artifactsDir}, tt.commandArgs...)

			err := runCmd(cmd...)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantErr != "", artifacts.Exists(common.DeploymentErrorsArtifact), "only the errors of this run are reported")

			var uploads []string
			for _, req := range stub.Requests(http.MethodPost, "/environments/env-123/deployment") {
				uploads = append(uploads, string(req.Body))
			}
			assert.Equal(t, tt.wantUploads, uploads)
		})
	}
}
