// Package model provides the data structures exchanged with LifeTime, Jira and between pipeline stages.
package model

import "fmt"

type EnvironmentDefinition struct {
	Name  string `json:"Name"`
	Key   string `json:"Key"`
	Label string `json:"Label"`
}

type ManifestApplication struct {
	ApplicationName   string `json:"ApplicationName"`
	ApplicationKey    string `json:"ApplicationKey"`
	VersionNumber     string `json:"VersionNumber"`
	VersionKey        string `json:"VersionKey"`
	IsTestApplication bool   `json:"IsTestApplication"`
	ChangeLog         string `json:"ChangeLog,omitempty"`
}

type ConfigurationItem struct {
	Name           string `json:"ConfigurationItemName"`
	Key            string `json:"ConfigurationItemKey"`
	ModuleName     string `json:"ModuleName,omitempty"`
	ModuleKey      string `json:"ModuleKey"`
	EnvironmentKey string `json:"EnvironmentKey"`
	Type           string `json:"Type"`
	Value          string `json:"Value"`
}

const ConfigurationItemSiteProperty = "SiteProperty"

// Manifest is produced by the pipeline trigger and shared, read-only, by every stage.
type Manifest struct {
	Environments        []EnvironmentDefinition `json:"EnvironmentDefinitions"`
	ApplicationVersions []ManifestApplication   `json:"ApplicationVersions"`
	ConfigurationItems  []ConfigurationItem     `json:"ConfigurationItems,omitempty"`
	DeploymentNotes     string                  `json:"DeploymentNotes,omitempty"`
}

func (m *Manifest) EnvironmentByLabel(label string) (*EnvironmentDefinition, error) {
	for i := range m.Environments {
		if m.Environments[i].Label == label {
			return &m.Environments[i], nil
		}
	}
	return nil, fmt.Errorf("environment with label '%s' is not defined in the manifest: %w", label, ErrNotFound)
}

func (m *Manifest) ApplicationByName(name string) (*ManifestApplication, error) {
	for i := range m.ApplicationVersions {
		if m.ApplicationVersions[i].ApplicationName == name {
			return &m.ApplicationVersions[i], nil
		}
	}
	return nil, fmt.Errorf("application '%s' is not defined in the manifest: %w", name, ErrNotFound)
}

// DeployableApplications returns the application versions in manifest order, skipping test applications unless requested.
func (m *Manifest) DeployableApplications(includeTests bool) []ManifestApplication {
	var apps []ManifestApplication
	for _, app := range m.ApplicationVersions {
		if app.IsTestApplication && !includeTests {
			continue
		}
		apps = append(apps, app)
	}
	return apps
}

func (m *Manifest) ConfigurationItemsFor(environmentKey string) []ConfigurationItem {
	var items []ConfigurationItem
	for _, item := range m.ConfigurationItems {
		if item.EnvironmentKey == environmentKey {
			items = append(items, item)
		}
	}
	return items
}
