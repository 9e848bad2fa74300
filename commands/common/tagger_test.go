//go:build test
// +build test

package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_common "github.com/os-pipeline/outsystems-pipeline/commands/common/mocks"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

func TestTagger_TagApplications(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_common.NewMockLifetimeAPI(ctrl)

	api.EXPECT().GetRunningVersion("env-1", "App1").Return(&model.RunningVersion{ApplicationKey: "app-1", ApplicationName: "App1", VersionKey: "v-1", IsModified: true}, nil)
	api.EXPECT().GetRunningVersion("env-1", "App2").Return(&model.RunningVersion{ApplicationKey: "app-2", ApplicationName: "App2", VersionKey: "v-2"}, nil)
	api.EXPECT().CreateApplicationVersion("env-1", "app-1", "change", "1.1.0").Return("v-1-new", nil)

	results, err := NewTagger(api).TagApplications("env-1", []TagRequest{
		{ApplicationName: "App1", VersionNumber: "1.1.0", ChangeLog: "change"},
		{ApplicationName: "App2", VersionNumber: "1.1.0", ChangeLog: "change"},
	})
	require.NoError(t, err)

	assert.Equal(t, []TagResult{
		{ApplicationName: "App1", ApplicationKey: "app-1", VersionNumber: "1.1.0", VersionKey: "v-1-new", Tagged: true},
		{ApplicationName: "App2", ApplicationKey: "app-2", VersionNumber: "1.1.0", VersionKey: "v-2"},
	}, results)
}

func TestTagger_FailureDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_common.NewMockLifetimeAPI(ctrl)

	notFound := fmt.Errorf("application 'Missing' does not exist in LifeTime: %w", model.ErrNotFound)
	api.EXPECT().GetRunningVersion("env-1", "Missing").Return(nil, notFound)
	api.EXPECT().GetRunningVersion("env-1", "App1").Return(&model.RunningVersion{ApplicationKey: "app-1", VersionKey: "v-1", IsModified: true}, nil)
	api.EXPECT().CreateApplicationVersion("env-1", "app-1", "", "2.0.0").Return("v-1-new", nil)

	results, err := NewTagger(api).TagApplications("env-1", []TagRequest{
		{ApplicationName: "Missing", VersionNumber: "2.0.0"},
		{ApplicationName: "App1", VersionNumber: "2.0.0"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.Len(t, results, 2)
	assert.True(t, errors.Is(results[0].Err, model.ErrNotFound))
	assert.False(t, results[0].Tagged)
	assert.True(t, results[1].Tagged)
	assert.Equal(t, "v-1-new", results[1].VersionKey)
}
