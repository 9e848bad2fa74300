package model

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/spf13/viper"
)

const (
	EnvPrefix        = "OSP"
	EnvKeyConfigFile = "OSP_CONFIG_FILE"
)

type FlagContext interface {
	IntFlagProvider
	GetStringFlagValue(name string) string
	GetBoolFlagValue(name string) bool
}

// Settings resolves a value from the command flags first, then from the OSP_* environment
// variables or the optional configuration file, and finally from the flag default.
type Settings struct {
	ctx FlagContext
	v   *viper.Viper
}

func NewSettings(ctx FlagContext) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile, ok := os.LookupEnv(EnvKeyConfigFile); ok && cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		log.Debug(fmt.Sprintf("Using config file %s", v.ConfigFileUsed()))
	}

	return &Settings{ctx: ctx, v: v}, nil
}

func (s *Settings) String(flag string) string {
	if s.ctx.IsFlagSet(flag) {
		return s.ctx.GetStringFlagValue(flag)
	}
	if s.v.IsSet(flag) {
		return s.v.GetString(flag)
	}
	return s.ctx.GetStringFlagValue(flag)
}

func (s *Settings) Bool(flag string) bool {
	if s.ctx.IsFlagSet(flag) {
		return s.ctx.GetBoolFlagValue(flag)
	}
	if s.v.IsSet(flag) {
		return s.v.GetBool(flag)
	}
	return s.ctx.GetBoolFlagValue(flag)
}

func (s *Settings) Int(flag string, defaultValue int) (int, error) {
	if !s.ctx.IsFlagSet(flag) && s.v.IsSet(flag) {
		raw := s.v.GetString(flag)
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("invalid value '%s' for %s", raw, flag)
		}
		return value, nil
	}
	if !s.ctx.IsFlagSet(flag) {
		return defaultValue, nil
	}
	value, err := s.ctx.GetIntFlagValue(flag)
	if err != nil {
		log.Debug(fmt.Sprintf("Invalid %s: %+v", flag, err))
		return 0, fmt.Errorf("invalid value provided for --%s", flag)
	}
	return value, nil
}

// IsFlagSet reports whether the flag has a value from the command line, the environment or the config file.
// Along with GetIntFlagValue it lets the settings stand in for the flags wherever an IntFlagProvider is read.
func (s *Settings) IsFlagSet(flag string) bool {
	return s.ctx.IsFlagSet(flag) || s.v.IsSet(flag)
}

func (s *Settings) GetIntFlagValue(flag string) (int, error) {
	return s.Int(flag, 0)
}

// Seconds reads an integer flag expressed in seconds.
func (s *Settings) Seconds(flag string, defaultValue int) (time.Duration, error) {
	value, err := s.Int(flag, defaultValue)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("--%s cannot be negative", flag)
	}
	return time.Duration(value) * time.Second, nil
}
