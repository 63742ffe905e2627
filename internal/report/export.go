// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// Export is the YAML representation of a report alongside the PDF. The
// YAML form keeps the absent/zero distinction machine-readable.
type Export struct {
	RunID       string             `yaml:"run_id,omitempty"`
	GeneratedAt time.Time          `yaml:"generated_at"`
	Counts      []types.FiberCount `yaml:"counts"`
}

// WriteYAML saves the fiber-count records to a YAML file.
func WriteYAML(path, runID string, records []types.FiberCount) error {
	data, err := yaml.Marshal(Export{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Counts:      records,
	})
	if err != nil {
		return fmt.Errorf("marshaling count export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
