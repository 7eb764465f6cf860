package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
)

// FileName is the manifest file looked up in the SDK repository
const FileName = "package.json"

var errEmptyName = errors.New("missing or empty")

// Loader loads and validates package manifests
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the manifest at path
func (l *Loader) Load(path string) (*domain.PackageManifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.NewDependencyError(FileName, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return l.LoadFromBytes(data, path)
}

// LoadFromBytes parses manifest content. path is only used in errors.
func (l *Loader) LoadFromBytes(data []byte, path string) (*domain.PackageManifest, error) {
	var pkg domain.PackageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, domain.NewManifestError(path, "", err)
	}

	pkg.Name = strings.TrimSpace(pkg.Name)
	if pkg.Name == "" {
		return nil, domain.NewManifestError(path, "name", errEmptyName)
	}

	return &pkg, nil
}
