// Package common provides the LifeTime and Jira clients and the pipeline drivers shared by the commands.
package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/jfrog/jfrog-client-go/utils"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeBinary = "application/octet-stream"
)

type APIContentHandler func(content []byte) error

type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return e.Message
}

func apiError(status int, message string, args ...any) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf(message, args...),
	}
}

type APICallParams struct {
	Method  string
	BaseURL string
	// Authorization is the full header value, e.g. "Bearer <token>".
	Authorization string
	ContentType   string
	Body          []byte
	Query         map[string]string
	Path          []string
	OkStatuses    []int
	OnContent     APIContentHandler
	// Timeout replaces the --timeout-ms deadline when set.
	Timeout time.Duration
}

func CallAPI(c model.IntFlagProvider, params APICallParams) error {
	timeout := params.Timeout
	if timeout <= 0 {
		var err error
		if timeout, err = model.GetTimeoutParameter(c); err != nil {
			return apiError(http.StatusInternalServerError, "%+v", err)
		}
	}

	apiEndpoint := params.BaseURL
	if len(params.Path) > 0 {
		escaped := make([]string, len(params.Path))
		for i, segment := range params.Path {
			escaped[i] = url.PathEscape(segment)
		}
		apiEndpoint = utils.AddTrailingSlashIfNeeded(apiEndpoint) + strings.Join(escaped, "/")
	}

	q := url.Values{}
	for key, value := range params.Query {
		q.Set(key, value)
	}

	if len(q) > 0 {
		apiEndpoint += "?" + q.Encode()
	}

	reqCtx, cancelReq := context.WithTimeout(context.Background(), timeout)
	defer cancelReq()

	var bodyReader io.Reader
	if params.Body != nil {
		bodyReader = bytes.NewBuffer(params.Body)
	}

	req, err := http.NewRequestWithContext(reqCtx, params.Method, apiEndpoint, bodyReader)
	if err != nil {
		return apiError(http.StatusInternalServerError, "failed to create request: %+v", err)
	}

	contentType := params.ContentType
	if contentType == "" {
		contentType = contentTypeJSON
	}

	if params.Authorization != "" {
		req.Header.Add("Authorization", params.Authorization)
	}
	req.Header.Add("Content-Type", contentType)
	req.Header.Add("Accept", contentTypeJSON)
	req.Header.Add("User-Agent", coreutils.GetCliUserAgent())

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apiError(http.StatusRequestTimeout, "request timed out after %s", timeout)
		}
		return apiError(http.StatusInternalServerError, "unexpected error: %+v", err)
	}

	if slices.Index(params.OkStatuses, res.StatusCode) == -1 {
		callErr := apiError(res.StatusCode, "%s %s returned an unexpected status code %d", params.Method, redactQuery(apiEndpoint), res.StatusCode)
		// The body is kept for diagnostics, and printed if it holds json
		_ = processAPIResponse(res, func(content []byte) error {
			callErr.Body = content
			return printJSONOrLogError(content)
		})
		return callErr
	}

	return processAPIResponse(res, params.OnContent)
}

func BearerAuth(token string) string {
	return "Bearer " + strings.TrimSpace(token)
}

func processAPIResponse(res *http.Response, doWithContent func(content []byte) error) error {
	var err error
	var responseBytes []byte

	defer CloseQuietly(res.Body)

	if res.ContentLength == 0 {
		_, _ = io.Copy(io.Discard, res.Body)
	} else {
		responseBytes, err = io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("cannot read response content: %+v", err)
		}
	}

	if doWithContent == nil {
		return nil
	}

	return doWithContent(responseBytes)
}

// redactQuery drops the query string, LifeTime passes site property values there.
func redactQuery(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
