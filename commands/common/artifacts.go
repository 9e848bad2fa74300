package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/model"
)

const (
	ConflictsArtifact        = "DeploymentConflicts"
	DeploymentErrorsArtifact = "DeploymentErrors"
	EpicApplicationsArtifact = "EpicApplications"
	PackagesFolder           = "application_oaps"
	PackageExtension         = ".oap"
)

// ArtifactStore reads and writes the files handed over between pipeline stages.
type ArtifactStore struct {
	dir string
}

func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Path returns the location of an artifact. Blank spaces are removed from the name.
func (s *ArtifactStore) Path(name string) string {
	return filepath.Join(s.dir, NormalizeArtifactName(name))
}

func NormalizeArtifactName(name string) string {
	return strings.Join(strings.Fields(name), "")
}

func (s *ArtifactStore) Store(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot encode artifact %s: %w", name, err)
	}
	return s.StoreBytes(name, data)
}

func (s *ArtifactStore) StoreBytes(name string, data []byte) error {
	artifactPath := s.Path(name)

	if err := os.MkdirAll(filepath.Dir(artifactPath), 0o755); err != nil {
		return fmt.Errorf("cannot create artifact directory: %w", err)
	}

	if err := os.WriteFile(artifactPath, data, 0o644); err != nil {
		return fmt.Errorf("cannot write artifact %s: %w", artifactPath, err)
	}

	log.Debug(fmt.Sprintf("Artifact stored at %s", artifactPath))

	return nil
}

func (s *ArtifactStore) LoadBytes(name string) ([]byte, error) {
	return readFile(s.Path(name))
}

// Load decodes a JSON artifact into out.
func (s *ArtifactStore) Load(name string, out any) error {
	return readJSONFile(s.Path(name), out)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("the file %s does not exist: %w", path, model.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

func readJSONFile(path string, out any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid artifact %s: %w", path, err)
	}
	return nil
}

func (s *ArtifactStore) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

// Delete removes an artifact. A missing artifact is not an error.
func (s *ArtifactStore) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot delete artifact %s: %w", s.Path(name), err)
	}
	return nil
}

// PackageArtifactName returns the artifact name of an application binary package.
func PackageArtifactName(app model.ManifestApplication, friendlyName bool) string {
	if friendlyName {
		return filepath.Join(PackagesFolder, fmt.Sprintf("%s_v%s%s",
			strings.ReplaceAll(app.ApplicationName, " ", "_"),
			strings.ReplaceAll(app.VersionNumber, ".", "_"),
			PackageExtension,
		))
	}
	return filepath.Join(PackagesFolder, app.VersionKey+PackageExtension)
}
