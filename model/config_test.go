package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flagContextStub struct {
	set      map[string]string
	defaults map[string]string
}

func (c flagContextStub) IsFlagSet(name string) bool {
	_, isSet := c.set[name]
	return isSet
}

func (c flagContextStub) GetIntFlagValue(name string) (int, error) {
	return intFlagProviderStub{}.GetIntFlagValue(name)
}

func (c flagContextStub) GetStringFlagValue(name string) string {
	if value, isSet := c.set[name]; isSet {
		return value
	}
	return c.defaults[name]
}

func (c flagContextStub) GetBoolFlagValue(name string) bool {
	return c.GetStringFlagValue(name) == "true"
}

func TestSettings_String(t *testing.T) {
	tests := []struct {
		name string
		ctx  flagContextStub
		env  map[string]string
		want string
	}{
		{
			name: "flag",
			ctx:  flagContextStub{set: map[string]string{FlagLifetimeURL: "https://flag"}},
			env:  map[string]string{"OSP_LT_URL": "https://env"},
			want: "https://flag",
		},
		{
			name: "environment",
			env:  map[string]string{"OSP_LT_URL": "https://env"},
			want: "https://env",
		},
		{
			name: "default",
			ctx:  flagContextStub{defaults: map[string]string{FlagLifetimeURL: "https://default"}},
			want: "https://default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			s, err := NewSettings(tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String(FlagLifetimeURL))
		})
	}
}

func TestSettings_Bool(t *testing.T) {
	t.Setenv("OSP_ALLOW_CONTINUE_WITH_ERRORS", "true")

	s, err := NewSettings(flagContextStub{})
	require.NoError(t, err)

	assert.True(t, s.Bool(FlagAllowContinueWithErrors))
	assert.False(t, s.Bool(FlagIgnoreWarnings))
}

func TestSettings_Int(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    int
		wantErr string
	}{
		{name: "default", want: DefaultLifetimeAPIVersion},
		{name: "environment", env: "1", want: 1},
		{name: "invalid environment", env: "two", wantErr: "invalid value 'two' for lt-api-version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("OSP_LT_API_VERSION", tt.env)
			}

			s, err := NewSettings(flagContextStub{})
			require.NoError(t, err)

			got, err := s.Int(FlagLifetimeAPIVersion, DefaultLifetimeAPIVersion)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettings_Seconds(t *testing.T) {
	t.Setenv("OSP_POLL_INTERVAL_SEC", "5")
	t.Setenv("OSP_QUEUE_TIMEOUT_SEC", "-1")

	s, err := NewSettings(flagContextStub{})
	require.NoError(t, err)

	got, err := s.Seconds(FlagPollInterval, DefaultPollIntervalSecs)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, got)

	got, err = s.Seconds(FlagDeploymentTimeout, DefaultDeploymentTimeoutSecs)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, got)

	_, err = s.Seconds(FlagQueueTimeout, DefaultQueueTimeoutSecs)
	assert.EqualError(t, err, "--queue-timeout-sec cannot be negative")
}

func TestSettings_ConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "osp.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("lt-url: https://from-file\nlt-api-version: 1\n"), 0o600))
	t.Setenv(EnvKeyConfigFile, cfgFile)

	s, err := NewSettings(flagContextStub{})
	require.NoError(t, err)

	assert.Equal(t, "https://from-file", s.String(FlagLifetimeURL))
	version, err := s.Int(FlagLifetimeAPIVersion, DefaultLifetimeAPIVersion)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestSettings_MissingConfigFile(t *testing.T) {
	t.Setenv(EnvKeyConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := NewSettings(flagContextStub{})
	assert.Error(t, err)
}

func TestSettings_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    time.Duration
		wantErr string
	}{
		{name: "default", want: defaultTimeoutMillis * time.Millisecond},
		{name: "environment", env: "1500", want: 1500 * time.Millisecond},
		{name: "invalid environment", env: "soon", wantErr: "invalid timeout provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("OSP_TIMEOUT_MS", tt.env)
			}

			s, err := NewSettings(flagContextStub{})
			require.NoError(t, err)

			got, err := GetTimeoutParameter(s)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
