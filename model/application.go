package model

type Environment struct {
	Key  string `json:"Key"`
	Name string `json:"Name"`
}

type ApplicationStatusInEnv struct {
	EnvironmentKey            string `json:"EnvironmentKey"`
	BaseApplicationVersionKey string `json:"BaseApplicationVersionKey"`
	IsModified                bool   `json:"IsModified"`
}

type Application struct {
	Key             string                   `json:"Key"`
	Name            string                   `json:"Name"`
	Description     string                   `json:"Description,omitempty"`
	AppStatusInEnvs []ApplicationStatusInEnv `json:"AppStatusInEnvs,omitempty"`
}

type ApplicationVersion struct {
	Key            string `json:"Key"`
	ApplicationKey string `json:"ApplicationKey,omitempty"`
	Version        string `json:"Version"`
	ChangeLog      string `json:"ChangeLog,omitempty"`
	CreatedOn      string `json:"CreatedOn,omitempty"`
}

// RunningVersion describes what is currently published for an application in a given environment.
type RunningVersion struct {
	ApplicationKey  string `json:"ApplicationKey"`
	ApplicationName string `json:"ApplicationName"`
	EnvironmentKey  string `json:"EnvironmentKey"`
	VersionKey      string `json:"VersionKey"`
	IsModified      bool   `json:"IsModified"`
}

type SitePropertyResult struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
}
