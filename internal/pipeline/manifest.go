// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// Manifest is the on-disk representation of a tract-to-ROI mapping. The
// researcher can keep a manifest next to the subject data instead of
// relying on the built-in corticospinal defaults.
type Manifest struct {
	Tracts []types.TractSpec `yaml:"tracts"`
}

// ReadManifest loads a tract manifest from a YAML file and validates it.
func ReadManifest(path string) ([]types.TractSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Tracts) == 0 {
		return nil, fmt.Errorf("manifest %s lists no tracts", path)
	}
	for i, t := range m.Tracts {
		if t.File == "" {
			return nil, fmt.Errorf("manifest %s: tract %d has no file", path, i)
		}
		if len(t.ROIs) == 0 {
			return nil, fmt.Errorf("manifest %s: tract %s has no ROI masks", path, t.File)
		}
	}
	return m.Tracts, nil
}

// WriteManifest saves a tract mapping to a YAML file.
func WriteManifest(path string, tracts []types.TractSpec) error {
	data, err := yaml.Marshal(Manifest{Tracts: tracts})
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
