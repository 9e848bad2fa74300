package common

//go:generate ${TOOLS_DIR}/mockgen -source=${GOFILE} -destination=mocks/${GOFILE}

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

const (
	APIVersionV1 = 1
	APIVersionV2 = 2

	httpProto  = "http"
	httpsProto = "https"
)

type LifetimeAPI interface {
	APIVersion() int
	ListEnvironments() ([]model.Environment, error)
	GetEnvironmentKey(name string) (string, error)
	GetRunningVersion(environmentKey, applicationName string) (*model.RunningVersion, error)
	GetApplicationVersion(applicationKey, versionKey string) (*model.ApplicationVersion, error)
	CreateApplicationVersion(environmentKey, applicationKey, changeLog, versionNumber string) (string, error)
	CreateDeployment(plan model.DeploymentPlan) (string, error)
	CreateBinaryDeployment(environmentKey string, pkg []byte) (string, error)
	GetDeployment(deploymentKey string) (*model.DeploymentDetails, error)
	GetDeploymentStatus(deploymentKey string) (*model.DeploymentStatus, error)
	StartDeployment(deploymentKey string, options model.StartOptions) error
	ContinueDeployment(deploymentKey string) error
	DeleteDeployment(deploymentKey string) error
	ListRunningDeployments(environmentKey string) ([]model.Deployment, error)
	DownloadApplicationVersion(environmentKey, applicationKey, versionKey string) ([]byte, error)
	SetSiteProperty(moduleKey, environmentKey, siteProperty, value string) (*model.SitePropertyResult, error)
}

// LifetimeServer locates a LifeTime API.
type LifetimeServer struct {
	Protocol   string
	Host       string
	Endpoint   string
	APIVersion int
	Token      string
	// TransferTimeout bounds package uploads and downloads, DefaultTransferTimeoutSecs when zero.
	TransferTimeout time.Duration
}

// ParseLifetimeURL splits a LifeTime url into protocol and host. The protocol defaults to https.
func ParseLifetimeURL(rawURL string) (string, string) {
	proto := httpsProto
	host := strings.TrimSpace(rawURL)
	if strings.HasPrefix(host, "http://") {
		proto = httpProto
		host = strings.TrimPrefix(host, "http://")
	} else {
		host = strings.TrimPrefix(host, "https://")
	}
	return proto, strings.TrimSuffix(host, "/")
}

func (s *LifetimeServer) APIBaseURL() string {
	return fmt.Sprintf("%s://%s/%s/v%d", s.Protocol, s.Host, strings.Trim(s.Endpoint, "/"), s.APIVersion)
}

func (s *LifetimeServer) PropertiesBaseURL() string {
	return fmt.Sprintf("%s://%s/PropertiesAPI/rest/v1", s.Protocol, s.Host)
}

type LifetimeClient struct {
	flags  model.IntFlagProvider
	server LifetimeServer
}

func NewLifetimeClient(flags model.IntFlagProvider, server LifetimeServer) (*LifetimeClient, error) {
	if server.APIVersion != APIVersionV1 && server.APIVersion != APIVersionV2 {
		return nil, fmt.Errorf("LifeTime API version %d is not supported, please use %d or %d: %w", server.APIVersion, APIVersionV1, APIVersionV2, model.ErrNotImplemented)
	}
	if server.Host == "" {
		return nil, fmt.Errorf("missing LifeTime url")
	}
	if server.Token == "" {
		return nil, fmt.Errorf("missing LifeTime token")
	}
	return &LifetimeClient{flags: flags, server: server}, nil
}

func (c *LifetimeClient) APIVersion() int {
	return c.server.APIVersion
}

func (c *LifetimeClient) transferTimeout() time.Duration {
	if c.server.TransferTimeout > 0 {
		return c.server.TransferTimeout
	}
	return model.DefaultTransferTimeoutSecs * time.Second
}

func (c *LifetimeClient) call(params APICallParams) error {
	if params.BaseURL == "" {
		params.BaseURL = c.server.APIBaseURL()
	}
	params.Authorization = BearerAuth(c.server.Token)
	return CallAPI(c.flags, params)
}

func decodeJSON(out any) APIContentHandler {
	return func(content []byte) error {
		if len(content) == 0 {
			log.Debug("No content returned from LifeTime")
			return nil
		}
		return json.Unmarshal(content, out)
	}
}

// decodeKey reads a key returned either as a json string or as plain text.
func decodeKey(out *string) APIContentHandler {
	return func(content []byte) error {
		if err := json.Unmarshal(content, out); err == nil {
			return nil
		}
		*out = strings.Trim(strings.TrimSpace(string(content)), `"`)
		if *out == "" {
			return fmt.Errorf("LifeTime did not return a key")
		}
		return nil
	}
}

func (c *LifetimeClient) ListEnvironments() ([]model.Environment, error) {
	var environments []model.Environment
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"environments"},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(&environments),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list environments: %w", err)
	}
	return environments, nil
}

func (c *LifetimeClient) GetEnvironmentKey(name string) (string, error) {
	environments, err := c.ListEnvironments()
	if err != nil {
		return "", err
	}
	for _, env := range environments {
		if env.Name == name {
			return env.Key, nil
		}
	}
	return "", fmt.Errorf("environment '%s' does not exist in LifeTime: %w", name, model.ErrNotFound)
}

func (c *LifetimeClient) listApplications() ([]model.Application, error) {
	var applications []model.Application
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"applications"},
		Query:      map[string]string{"IncludeEnvStatus": "true"},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(&applications),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list applications: %w", err)
	}
	return applications, nil
}

func (c *LifetimeClient) GetRunningVersion(environmentKey, applicationName string) (*model.RunningVersion, error) {
	applications, err := c.listApplications()
	if err != nil {
		return nil, err
	}

	for _, app := range applications {
		if app.Name != applicationName {
			continue
		}
		for _, status := range app.AppStatusInEnvs {
			if status.EnvironmentKey == environmentKey {
				return &model.RunningVersion{
					ApplicationKey:  app.Key,
					ApplicationName: app.Name,
					EnvironmentKey:  environmentKey,
					VersionKey:      status.BaseApplicationVersionKey,
					IsModified:      status.IsModified,
				}, nil
			}
		}
		return nil, fmt.Errorf("application '%s' is not deployed in environment %s: %w", applicationName, environmentKey, model.ErrNotFound)
	}

	return nil, fmt.Errorf("application '%s' does not exist in LifeTime: %w", applicationName, model.ErrNotFound)
}

func (c *LifetimeClient) GetApplicationVersion(applicationKey, versionKey string) (*model.ApplicationVersion, error) {
	version := new(model.ApplicationVersion)
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"applications", applicationKey, "versions", versionKey},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(version),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch version %s of application %s: %w", versionKey, applicationKey, err)
	}
	return version, nil
}

type createVersionRequest struct {
	ChangeLog      string   `json:"ChangeLog"`
	Version        string   `json:"Version"`
	MobileVersions []string `json:"MobileVersions"`
}

func (c *LifetimeClient) CreateApplicationVersion(environmentKey, applicationKey, changeLog, versionNumber string) (string, error) {
	body, err := json.Marshal(createVersionRequest{ChangeLog: changeLog, Version: versionNumber, MobileVersions: []string{}})
	if err != nil {
		return "", err
	}

	var versionKey string
	err = c.call(APICallParams{
		Method:     http.MethodPost,
		Path:       []string{"environments", environmentKey, "applications", applicationKey, "versions"},
		Body:       body,
		OkStatuses: []int{http.StatusOK, http.StatusCreated},
		OnContent:  decodeKey(&versionKey),
	})
	if err != nil {
		return "", fmt.Errorf("cannot create version %s of application %s: %w", versionNumber, applicationKey, err)
	}
	return versionKey, nil
}

type createDeploymentV1Request struct {
	ApplicationVersionKeys []string `json:"ApplicationVersionKeys"`
	Notes                  string   `json:"Notes"`
	TargetEnvironmentKey   string   `json:"TargetEnvironmentKey"`
}

type createDeploymentV2Request struct {
	ApplicationOperations []model.ApplicationOperation `json:"ApplicationOperations"`
	Notes                 string                       `json:"Notes"`
	SourceEnvironmentKey  string                       `json:"SourceEnvironmentKey,omitempty"`
	TargetEnvironmentKey  string                       `json:"TargetEnvironmentKey"`
}

func (c *LifetimeClient) CreateDeployment(plan model.DeploymentPlan) (string, error) {
	var payload any
	if c.server.APIVersion == APIVersionV1 {
		request := createDeploymentV1Request{Notes: plan.Notes, TargetEnvironmentKey: plan.TargetEnvironmentKey}
		for _, app := range plan.Applications {
			request.ApplicationVersionKeys = append(request.ApplicationVersionKeys, app.VersionKey)
		}
		payload = request
	} else {
		request := createDeploymentV2Request{
			Notes:                plan.Notes,
			SourceEnvironmentKey: plan.SourceEnvironmentKey,
			TargetEnvironmentKey: plan.TargetEnvironmentKey,
		}
		for _, app := range plan.Applications {
			request.ApplicationOperations = append(request.ApplicationOperations, model.ApplicationOperation{ApplicationVersionKey: app.VersionKey})
		}
		payload = request
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var deploymentKey string
	err = c.call(APICallParams{
		Method:     http.MethodPost,
		Path:       []string{"deployments"},
		Body:       body,
		OkStatuses: []int{http.StatusOK, http.StatusCreated},
		OnContent:  decodeKey(&deploymentKey),
	})
	if err != nil {
		return "", fmt.Errorf("cannot create deployment plan: %w", err)
	}
	return deploymentKey, nil
}

func (c *LifetimeClient) CreateBinaryDeployment(environmentKey string, pkg []byte) (string, error) {
	var deploymentKey string
	err := c.call(APICallParams{
		Method:      http.MethodPost,
		Path:        []string{"environments", environmentKey, "deployment"},
		ContentType: contentTypeBinary,
		Body:        pkg,
		OkStatuses:  []int{http.StatusOK, http.StatusCreated},
		OnContent:   decodeKey(&deploymentKey),
		Timeout:     c.transferTimeout(),
	})
	if err != nil {
		return "", fmt.Errorf("cannot create binary deployment plan: %w", err)
	}
	return deploymentKey, nil
}

func (c *LifetimeClient) GetDeployment(deploymentKey string) (*model.DeploymentDetails, error) {
	details := new(model.DeploymentDetails)
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"deployments", deploymentKey},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(details),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch deployment plan %s: %w", deploymentKey, err)
	}
	return details, nil
}

func (c *LifetimeClient) GetDeploymentStatus(deploymentKey string) (*model.DeploymentStatus, error) {
	status := new(model.DeploymentStatus)
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"deployments", deploymentKey, "status"},
		OkStatuses: []int{http.StatusOK},
		OnContent: func(content []byte) error {
			status.Raw = content
			return decodeJSON(status)(content)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch status of deployment plan %s: %w", deploymentKey, err)
	}
	return status, nil
}

func (c *LifetimeClient) StartDeployment(deploymentKey string, options model.StartOptions) error {
	var query map[string]string
	if c.server.APIVersion == APIVersionV2 {
		query = map[string]string{
			"RedeployOutdated":   strconv.FormatBool(options.RedeployOutdated),
			"ContinueWithErrors": strconv.FormatBool(options.ContinueWithErrors),
			"IgnoreWarnings":     strconv.FormatBool(options.IgnoreWarnings),
		}
	}
	err := c.call(APICallParams{
		Method:     http.MethodPost,
		Path:       []string{"deployments", deploymentKey, "start"},
		Query:      query,
		OkStatuses: []int{http.StatusOK, http.StatusAccepted},
	})
	if err != nil {
		return fmt.Errorf("cannot start deployment plan %s: %w", deploymentKey, err)
	}
	return nil
}

func (c *LifetimeClient) ContinueDeployment(deploymentKey string) error {
	err := c.call(APICallParams{
		Method:     http.MethodPost,
		Path:       []string{"deployments", deploymentKey, "continue"},
		OkStatuses: []int{http.StatusOK, http.StatusAccepted},
	})
	if err != nil {
		return fmt.Errorf("cannot continue deployment plan %s: %w", deploymentKey, err)
	}
	return nil
}

func (c *LifetimeClient) DeleteDeployment(deploymentKey string) error {
	err := c.call(APICallParams{
		Method:     http.MethodDelete,
		Path:       []string{"deployments", deploymentKey},
		OkStatuses: []int{http.StatusOK, http.StatusNoContent},
	})
	if err != nil {
		return fmt.Errorf("cannot delete deployment plan %s: %w", deploymentKey, err)
	}
	return nil
}

// ListRunningDeployments returns the plans targeting the environment that are not finished yet.
func (c *LifetimeClient) ListRunningDeployments(environmentKey string) ([]model.Deployment, error) {
	var deployments []model.Deployment
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"deployments"},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(&deployments),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list deployment plans: %w", err)
	}

	var running []model.Deployment
	for _, deployment := range deployments {
		if deployment.TargetEnvironmentKey != environmentKey {
			continue
		}
		status, err := c.GetDeploymentStatus(deployment.Key)
		if err != nil {
			return nil, err
		}
		if model.IsActiveDeploymentStatus(status.DeploymentStatus) {
			running = append(running, deployment)
		}
	}
	return running, nil
}

type downloadLink struct {
	URL string `json:"url"`
}

func (c *LifetimeClient) DownloadApplicationVersion(environmentKey, applicationKey, versionKey string) ([]byte, error) {
	link := new(downloadLink)
	err := c.call(APICallParams{
		Method:     http.MethodGet,
		Path:       []string{"environments", environmentKey, "applications", applicationKey, "versions", versionKey, "content"},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(link),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot get download link of version %s: %w", versionKey, err)
	}
	if link.URL == "" {
		return nil, fmt.Errorf("LifeTime returned no download link for version %s", versionKey)
	}

	var pkg []byte
	err = c.call(APICallParams{
		Method:     http.MethodGet,
		BaseURL:    link.URL,
		OkStatuses: []int{http.StatusOK},
		Timeout:    c.transferTimeout(),
		OnContent: func(content []byte) error {
			pkg = content
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot download version %s: %w", versionKey, err)
	}
	return pkg, nil
}

func (c *LifetimeClient) SetSiteProperty(moduleKey, environmentKey, siteProperty, value string) (*model.SitePropertyResult, error) {
	result := new(model.SitePropertyResult)
	err := c.call(APICallParams{
		Method:  http.MethodPost,
		BaseURL: c.server.PropertiesBaseURL(),
		Path:    []string{"SetSiteProperty"},
		Query: map[string]string{
			"ModuleKey":      moduleKey,
			"EnvironmentKey": environmentKey,
			"SSKey":          siteProperty,
			"SSValue":        value,
		},
		OkStatuses: []int{http.StatusOK},
		OnContent:  decodeJSON(result),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot set site property %s: %w", siteProperty, err)
	}
	return result, nil
}
