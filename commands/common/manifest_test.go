//go:build test
// +build test

package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

const sampleManifest = `{
  "EnvironmentDefinitions": [
    {"Name": "Development", "Key": "env-001", "Label": "DEV"},
    {"Name": "Quality", "Key": "env-123", "Label": "QA"}
  ],
  "ApplicationVersions": [
    {"ApplicationName": "App1", "ApplicationKey": "app-1", "VersionNumber": "1.0.0", "VersionKey": "v-1", "IsTestApplication": false}
  ]
}`

func TestLoadManifest(t *testing.T) {
	manifestFile := CreateTempFileWithContent(t, sampleManifest)
	manifestWithBlanks := filepath.Join(t.TempDir(), "trigger manifest.json")
	require.NoError(t, os.WriteFile(manifestWithBlanks, []byte(sampleManifest), 0o600))

	tests := []struct {
		name            string
		manifestFile    string
		manifestContent string
		wantErr         error
		wantErrContains string
	}{
		{name: "from file", manifestFile: manifestFile},
		{name: "inline", manifestContent: sampleManifest},
		{name: "inline from file reference", manifestContent: "@" + manifestFile},
		{name: "inline from standard input", manifestContent: "-"},
		{name: "file wins over inline", manifestFile: manifestFile, manifestContent: "{invalid"},
		{name: "file name with blanks", manifestFile: manifestWithBlanks},
		{name: "missing file", manifestFile: manifestFile + ".missing", wantErr: model.ErrNotFound},
		{name: "nothing provided", wantErr: model.ErrNotFound},
		{name: "invalid inline", manifestContent: "{invalid", wantErrContains: "invalid manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetCliIn(strings.NewReader(sampleManifest))
			t.Cleanup(func() {
				SetCliIn(os.Stdin)
			})

			mf, err := LoadManifest(tt.manifestFile, tt.manifestContent)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantErrContains != "" {
				assert.ErrorContains(t, err, tt.wantErrContains)
				return
			}
			require.NoError(t, err)

			env, err := mf.EnvironmentByLabel("QA")
			require.NoError(t, err)
			assert.Equal(t, "env-123", env.Key)
			require.Len(t, mf.ApplicationVersions, 1)
			assert.Equal(t, "v-1", mf.ApplicationVersions[0].VersionKey)
		})
	}
}
