//go:build test
// +build test

package common

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jfrog/go-mockhttp"
	"github.com/stretchr/testify/require"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

type BodyValidator func(t require.TestingT, content []byte)

type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// NewMockLifetimeServer starts a LifeTime simulator and exposes it through the OSP_LT_* environment variables.
func NewMockLifetimeServer(t *testing.T, stub *LifetimeStub) (*mockhttp.Server, string) {
	if stub.token == "" {
		stub.token = uuid.NewString()
	}

	server := mockhttp.StartServer(mockhttp.WithEndpoints(stub.endpoints()...), mockhttp.WithName("lifetime"))

	TestSetEnv(t, "OSP_LT_URL", server.BaseUrl())
	TestSetEnv(t, "OSP_LT_TOKEN", stub.token)
	TestSetEnv(t, "OSP_LT_API_VERSION", strconv.Itoa(stub.apiVersion))
	TestSetEnv(t, model.EnvKeySecretsPassword, SecretPassword)

	t.Cleanup(server.Close)

	return server, stub.token
}

func NewLifetimeStub(t *testing.T) *LifetimeStub {
	return &LifetimeStub{
		test:       t,
		apiVersion: APIVersionV2,
		versions:   map[string]model.ApplicationVersion{},
		packages:   map[string][]byte{},
		statuses:   map[string][]model.DeploymentStatus{},
		newPlanStatuses: []model.DeploymentStatus{
			{DeploymentStatus: model.DeploymentStatusFinishedSuccessful},
		},
		siteProperty: model.SitePropertyResult{Success: true},
	}
}

// LifetimeStub keeps the state of a fake LifeTime and records every request it receives.
type LifetimeStub struct {
	mu              sync.Mutex
	test            *testing.T
	waitFor         time.Duration
	token           string
	apiVersion      int
	environments    []model.Environment
	applications    []model.Application
	versions        map[string]model.ApplicationVersion
	packages        map[string][]byte
	deployments     []model.Deployment
	statuses        map[string][]model.DeploymentStatus
	newPlanStatuses []model.DeploymentStatus
	conflicts       []json.RawMessage
	siteProperty    model.SitePropertyResult
	validateBody    BodyValidator
	createdCount    int
	requests        []RecordedRequest
}

func (s *LifetimeStub) WithT(t *testing.T) *LifetimeStub {
	s.test = t
	return s
}

func (s *LifetimeStub) WithDelay(waitFor time.Duration) *LifetimeStub {
	s.waitFor = waitFor
	return s
}

func (s *LifetimeStub) WithToken(token string) *LifetimeStub {
	s.token = token
	return s
}

func (s *LifetimeStub) WithAPIVersion(version int) *LifetimeStub {
	s.apiVersion = version
	return s
}

func (s *LifetimeStub) WithEnvironments(environments ...model.Environment) *LifetimeStub {
	s.environments = append(s.environments, environments...)
	return s
}

func (s *LifetimeStub) WithApplications(applications ...model.Application) *LifetimeStub {
	s.applications = append(s.applications, applications...)
	return s
}

func (s *LifetimeStub) WithVersions(versions ...model.ApplicationVersion) *LifetimeStub {
	for _, version := range versions {
		s.versions[version.Key] = version
	}
	return s
}

func (s *LifetimeStub) WithPackage(versionKey string, content []byte) *LifetimeStub {
	s.packages[versionKey] = content
	return s
}

// WithDeployment adds an existing plan answering the given statuses in order, the last one repeating.
func (s *LifetimeStub) WithDeployment(deployment model.Deployment, statuses ...model.DeploymentStatus) *LifetimeStub {
	s.deployments = append(s.deployments, deployment)
	s.statuses[deployment.Key] = statuses
	return s
}

// WithNewPlanStatuses sets the statuses answered, in order, for every plan created during the test.
func (s *LifetimeStub) WithNewPlanStatuses(statuses ...model.DeploymentStatus) *LifetimeStub {
	s.newPlanStatuses = statuses
	return s
}

func (s *LifetimeStub) WithConflicts(conflicts ...string) *LifetimeStub {
	for _, conflict := range conflicts {
		s.conflicts = append(s.conflicts, json.RawMessage(conflict))
	}
	return s
}

func (s *LifetimeStub) WithSitePropertyResult(result model.SitePropertyResult) *LifetimeStub {
	s.siteProperty = result
	return s
}

func (s *LifetimeStub) WithBodyValidator(validateBody BodyValidator) *LifetimeStub {
	s.validateBody = validateBody
	return s
}

// Requests returns the recorded requests with the given method whose path ends with pathSuffix.
func (s *LifetimeStub) Requests(method, pathSuffix string) []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []RecordedRequest
	for _, req := range s.requests {
		if req.Method == method && strings.HasSuffix(req.Path, pathSuffix) {
			found = append(found, req)
		}
	}
	return found
}

func (s *LifetimeStub) apiPath(pattern string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^/%s/v%d/%s(\?.*)?$`, model.DefaultLifetimeEndpoint, s.apiVersion, pattern))
}

func (s *LifetimeStub) endpoint(method string, path *regexp.Regexp, handler http.HandlerFunc) mockhttp.ServerEndpoint {
	return mockhttp.NewServerEndpoint().
		When(mockhttp.Request().Method(method).PathMatches(path)).
		HandleWith(handler)
}

func (s *LifetimeStub) endpoints() []mockhttp.ServerEndpoint {
	return []mockhttp.ServerEndpoint{
		s.endpoint(http.MethodGet, s.apiPath(`environments`), s.handleListEnvironments),
		s.endpoint(http.MethodGet, s.apiPath(`applications`), s.handleListApplications),
		s.endpoint(http.MethodGet, s.apiPath(`applications/[^/]+/versions/([^/]+)`), s.handleGetVersion),
		s.endpoint(http.MethodPost, s.apiPath(`environments/[^/]+/applications/([^/]+)/versions`), s.handleCreateVersion),
		s.endpoint(http.MethodGet, s.apiPath(`environments/[^/]+/applications/[^/]+/versions/([^/]+)/content`), s.handleGetDownloadLink),
		s.endpoint(http.MethodPost, s.apiPath(`environments/([^/]+)/deployment`), s.handleCreateBinaryDeployment),
		s.endpoint(http.MethodGet, s.apiPath(`deployments`), s.handleListDeployments),
		s.endpoint(http.MethodPost, s.apiPath(`deployments`), s.handleCreateDeployment),
		s.endpoint(http.MethodGet, s.apiPath(`deployments/([^/]+)`), s.handleGetDeployment),
		s.endpoint(http.MethodDelete, s.apiPath(`deployments/([^/]+)`), s.handleDeleteDeployment),
		s.endpoint(http.MethodGet, s.apiPath(`deployments/([^/]+)/status`), s.handleGetStatus),
		s.endpoint(http.MethodPost, s.apiPath(`deployments/([^/]+)/(start|continue)`), s.handleAccepted),
		s.endpoint(http.MethodGet, regexp.MustCompile(`^/downloads/([^/?]+)(\?.*)?$`), s.handleDownload),
		s.endpoint(http.MethodPost, regexp.MustCompile(`^/PropertiesAPI/rest/v1/SetSiteProperty(\?.*)?$`), s.handleSetSiteProperty),
	}
}

// accept records the request and checks the token. It returns the last path segment.
func (s *LifetimeStub) accept(res http.ResponseWriter, req *http.Request) (string, []byte, bool) {
	if s.waitFor > 0 {
		time.Sleep(s.waitFor)
	}

	content, err := io.ReadAll(req.Body)
	require.NoError(s.test, err)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Header: req.Header.Clone(),
		Body:   content,
	})
	s.mu.Unlock()

	if req.Header.Get("Authorization") != "Bearer "+s.token {
		res.WriteHeader(http.StatusUnauthorized)
		return "", nil, false
	}

	segments := strings.Split(strings.TrimSuffix(req.URL.Path, "/"), "/")
	return segments[len(segments)-1], content, true
}

func (s *LifetimeStub) writeJSON(res http.ResponseWriter, status int, value any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_, err := res.Write([]byte(MustJSONMarshal(s.test, value)))
	require.NoError(s.test, err)
}

func (s *LifetimeStub) handleListEnvironments(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	s.writeJSON(res, http.StatusOK, s.environments)
}

func (s *LifetimeStub) handleListApplications(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	s.writeJSON(res, http.StatusOK, s.applications)
}

func (s *LifetimeStub) handleGetVersion(res http.ResponseWriter, req *http.Request) {
	versionKey, _, ok := s.accept(res, req)
	if !ok {
		return
	}
	version, exists := s.versions[versionKey]
	if !exists {
		res.WriteHeader(http.StatusNotFound)
		return
	}
	s.writeJSON(res, http.StatusOK, version)
}

func (s *LifetimeStub) handleCreateVersion(res http.ResponseWriter, req *http.Request) {
	_, content, ok := s.accept(res, req)
	if !ok {
		return
	}
	if s.validateBody != nil {
		s.validateBody(s.test, content)
	}
	s.writeJSON(res, http.StatusCreated, s.nextKey("version"))
}

func (s *LifetimeStub) handleGetDownloadLink(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	segments := strings.Split(req.URL.Path, "/")
	versionKey := segments[len(segments)-2]
	s.writeJSON(res, http.StatusOK, map[string]string{"url": "http://" + req.Host + "/downloads/" + versionKey})
}

func (s *LifetimeStub) handleDownload(res http.ResponseWriter, req *http.Request) {
	versionKey, _, ok := s.accept(res, req)
	if !ok {
		return
	}
	content, exists := s.packages[versionKey]
	if !exists {
		res.WriteHeader(http.StatusNotFound)
		return
	}
	res.Header().Set("Content-Type", contentTypeBinary)
	res.WriteHeader(http.StatusOK)
	_, err := res.Write(content)
	require.NoError(s.test, err)
}

func (s *LifetimeStub) handleCreateDeployment(res http.ResponseWriter, req *http.Request) {
	_, content, ok := s.accept(res, req)
	if !ok {
		return
	}
	if s.validateBody != nil {
		s.validateBody(s.test, content)
	}

	var plan model.Deployment
	require.NoError(s.test, json.Unmarshal(content, &plan))

	s.writeJSON(res, http.StatusCreated, s.registerPlan(plan.TargetEnvironmentKey))
}

func (s *LifetimeStub) handleCreateBinaryDeployment(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	segments := strings.Split(req.URL.Path, "/")
	environmentKey := segments[len(segments)-2]
	s.writeJSON(res, http.StatusCreated, s.registerPlan(environmentKey))
}

func (s *LifetimeStub) registerPlan(environmentKey string) string {
	key := s.nextKey("deployment")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deployments = append(s.deployments, model.Deployment{Key: key, TargetEnvironmentKey: environmentKey})
	s.statuses[key] = append([]model.DeploymentStatus{}, s.newPlanStatuses...)

	return key
}

func (s *LifetimeStub) nextKey(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createdCount++
	return fmt.Sprintf("%s-%d", prefix, s.createdCount)
}

func (s *LifetimeStub) handleListDeployments(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	s.mu.Lock()
	deployments := append([]model.Deployment{}, s.deployments...)
	s.mu.Unlock()
	s.writeJSON(res, http.StatusOK, deployments)
}

func (s *LifetimeStub) findDeployment(key string) (model.Deployment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, deployment := range s.deployments {
		if deployment.Key == key {
			return deployment, true
		}
	}
	return model.Deployment{}, false
}

func (s *LifetimeStub) handleGetDeployment(res http.ResponseWriter, req *http.Request) {
	key, _, ok := s.accept(res, req)
	if !ok {
		return
	}
	deployment, exists := s.findDeployment(key)
	if !exists {
		res.WriteHeader(http.StatusNotFound)
		return
	}
	s.writeJSON(res, http.StatusOK, model.DeploymentDetails{Deployment: deployment, ApplicationConflicts: s.conflicts})
}

func (s *LifetimeStub) handleDeleteDeployment(res http.ResponseWriter, req *http.Request) {
	key, _, ok := s.accept(res, req)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, deployment := range s.deployments {
		if deployment.Key == key {
			s.deployments = append(s.deployments[:i], s.deployments[i+1:]...)
			res.WriteHeader(http.StatusNoContent)
			return
		}
	}
	res.WriteHeader(http.StatusNotFound)
}

func (s *LifetimeStub) handleGetStatus(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	segments := strings.Split(req.URL.Path, "/")
	key := segments[len(segments)-2]

	s.mu.Lock()
	statuses := s.statuses[key]
	if len(statuses) == 0 {
		s.mu.Unlock()
		res.WriteHeader(http.StatusNotFound)
		return
	}
	status := statuses[0]
	if len(statuses) > 1 {
		s.statuses[key] = statuses[1:]
	}
	s.mu.Unlock()

	s.writeJSON(res, http.StatusOK, status)
}

func (s *LifetimeStub) handleAccepted(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	res.WriteHeader(http.StatusAccepted)
}

func (s *LifetimeStub) handleSetSiteProperty(res http.ResponseWriter, req *http.Request) {
	if _, _, ok := s.accept(res, req); !ok {
		return
	}
	s.writeJSON(res, http.StatusOK, s.siteProperty)
}
