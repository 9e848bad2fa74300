package common

import (
	"errors"
	"fmt"

	"github.com/jfrog/jfrog-client-go/utils/log"
)

type TagRequest struct {
	ApplicationName string
	VersionNumber   string
	ChangeLog       string
}

type TagResult struct {
	ApplicationName string `json:"ApplicationName"`
	ApplicationKey  string `json:"ApplicationKey"`
	VersionNumber   string `json:"VersionNumber"`
	// VersionKey is the new tag, or the currently published version when nothing was tagged.
	VersionKey string `json:"VersionKey"`
	Tagged     bool   `json:"Tagged"`
	Err        error  `json:"-"`
}

// Tagger creates new versions of the applications modified since their last tag.
type Tagger struct {
	api LifetimeAPI
}

func NewTagger(api LifetimeAPI) *Tagger {
	return &Tagger{api: api}
}

// TagApplications processes the requests in order. A failure is logged and does not prevent the
// following applications from being tagged; all the failures are returned joined.
func (t *Tagger) TagApplications(environmentKey string, requests []TagRequest) ([]TagResult, error) {
	results := make([]TagResult, 0, len(requests))
	var errs []error

	for _, request := range requests {
		result := t.tag(environmentKey, request)
		if result.Err != nil {
			log.Error(fmt.Sprintf("Unable to tag application %s: %+v", request.ApplicationName, result.Err))
			errs = append(errs, result.Err)
		}
		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

func (t *Tagger) tag(environmentKey string, request TagRequest) TagResult {
	result := TagResult{ApplicationName: request.ApplicationName, VersionNumber: request.VersionNumber}

	running, err := t.api.GetRunningVersion(environmentKey, request.ApplicationName)
	if err != nil {
		result.Err = err
		return result
	}
	result.ApplicationKey = running.ApplicationKey
	result.VersionKey = running.VersionKey

	if !running.IsModified {
		log.Info(fmt.Sprintf("Application %s is not modified. New version creation was skipped.", request.ApplicationName))
		return result
	}

	versionKey, err := t.api.CreateApplicationVersion(environmentKey, running.ApplicationKey, request.ChangeLog, request.VersionNumber)
	if err != nil {
		result.Err = err
		return result
	}

	result.VersionKey = versionKey
	result.Tagged = true
	log.Info(fmt.Sprintf("Version %s successfully created for application %s.", request.VersionNumber, request.ApplicationName))

	return result
}
