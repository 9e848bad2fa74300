//go:build test
// +build test

package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

func TestCallAPI(t *testing.T) {
	tests := []struct {
		name       string
		stub       *LifetimeStub
		params     APICallParams
		ctx        model.IntFlagProvider
		wantErr    string
		wantStatus int
	}{
		{
			name: "success",
			stub: NewLifetimeStub(t),
			params: APICallParams{
				Method:     http.MethodGet,
				Path:       []string{"environments"},
				OkStatuses: []int{http.StatusOK},
			},
		},
		{
			name: "unexpected status",
			stub: NewLifetimeStub(t),
			params: APICallParams{
				Method:     http.MethodGet,
				Path:       []string{"environments"},
				OkStatuses: []int{http.StatusNoContent},
			},
			wantErr:    `GET .+/lifetimeapi/rest/v2/environments returned an unexpected status code 200`,
			wantStatus: http.StatusOK,
		},
		{
			name: "unauthorized",
			stub: NewLifetimeStub(t),
			params: APICallParams{
				Method:        http.MethodGet,
				Path:          []string{"environments"},
				Authorization: BearerAuth("wrong-token"),
				OkStatuses:    []int{http.StatusOK},
			},
			wantErr:    `returned an unexpected status code 401`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "cancel on timeout",
			stub: NewLifetimeStub(t).WithDelay(time.Second),
			params: APICallParams{
				Method:     http.MethodGet,
				Path:       []string{"environments"},
				OkStatuses: []int{http.StatusOK},
			},
			ctx:        IntFlagMap{model.FlagTimeout: 250},
			wantErr:    `request timed out after 250ms`,
			wantStatus: http.StatusRequestTimeout,
		},
		{
			name: "query is not leaked in errors",
			stub: NewLifetimeStub(t),
			params: APICallParams{
				Method:     http.MethodGet,
				Path:       []string{"environments"},
				Query:      map[string]string{"secret": "s3cr3t"},
				OkStatuses: []int{http.StatusCreated},
			},
			wantErr:    `environments returned an unexpected status code 200$`,
			wantStatus: http.StatusOK,
		},
		{
			name: "process response",
			stub: NewLifetimeStub(t).WithEnvironments(model.Environment{Key: "env-1", Name: "Development"}),
			params: APICallParams{
				Method:     http.MethodGet,
				Path:       []string{"environments"},
				OkStatuses: []int{http.StatusOK},
				OnContent: func(content []byte) error {
					var environments []model.Environment
					if err := json.Unmarshal(content, &environments); err != nil {
						return err
					}

					require.Len(t, environments, 1)
					assert.Equal(t, "env-1", environments[0].Key)

					return nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, token := NewMockLifetimeServer(t, tt.stub.WithT(t))

			tt.params.BaseURL = s.BaseUrl() + "/" + model.DefaultLifetimeEndpoint + "/v2"
			if tt.params.Authorization == "" {
				tt.params.Authorization = BearerAuth(token)
			}

			ctx := tt.ctx
			if ctx == nil {
				ctx = IntFlagMap{}
			}

			err := CallAPI(ctx, tt.params)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Regexpf(t, tt.wantErr, err.Error(), "got: %+v", err)
			assert.NotContains(t, err.Error(), "s3cr3t")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
		})
	}
}

func TestCallAPI_sendsQueryAndHeaders(t *testing.T) {
	stub := NewLifetimeStub(t)
	s, token := NewMockLifetimeServer(t, stub)

	err := CallAPI(IntFlagMap{}, APICallParams{
		Method:        http.MethodPost,
		BaseURL:       s.BaseUrl() + "/" + model.DefaultLifetimeEndpoint + "/v2",
		Authorization: BearerAuth(token),
		Path:          []string{"deployments", "dep-1", "start"},
		Query:         map[string]string{"RedeployOutdated": "true", "IgnoreWarnings": "false"},
		OkStatuses:    []int{http.StatusAccepted},
	})
	require.NoError(t, err)

	requests := stub.Requests(http.MethodPost, "/deployments/dep-1/start")
	require.Len(t, requests, 1)
	assert.Equal(t, "true", requests[0].Query.Get("RedeployOutdated"))
	assert.Equal(t, "false", requests[0].Query.Get("IgnoreWarnings"))
	assert.Equal(t, "application/json", requests[0].Header.Get("Content-Type"))
	assert.NotEmpty(t, requests[0].Header.Get("User-Agent"))
}
