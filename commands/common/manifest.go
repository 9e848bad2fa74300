package common

import (
	"fmt"

	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

// ReadManifest reads the trigger manifest from a file. The path is used as given.
func ReadManifest(manifestFile string) (*model.Manifest, error) {
	log.Debug(fmt.Sprintf("Reading manifest from %s", manifestFile))

	manifest := model.Manifest{}
	if err := readJSONFile(manifestFile, &manifest); err != nil {
		return nil, fmt.Errorf("cannot read manifest: %w", err)
	}

	return &manifest, nil
}

// LoadManifest reads the manifest from a file when manifestFile is set, from the inline content otherwise.
// The inline content follows the json input conventions ('-' for stdin, '@<path>' for a file).
func LoadManifest(manifestFile, manifestContent string) (*model.Manifest, error) {
	if manifestFile != "" {
		return ReadManifest(manifestFile)
	}

	if manifestContent == "" {
		return nil, fmt.Errorf("the manifest was not provided as JSON or as a file: %w", model.ErrNotFound)
	}

	manifest := model.Manifest{}
	if err := ReadJSONInput(manifestContent, &manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return &manifest, nil
}
