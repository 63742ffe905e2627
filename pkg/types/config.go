package types

import "path/filepath"

// ToolsConfig names the MRtrix3 binaries the pipeline invokes. The defaults
// assume both are on PATH; absolute paths are accepted.
type ToolsConfig struct {
	// Tckedit is the streamline filter binary (default "tckedit").
	Tckedit string `json:"tckedit" yaml:"tckedit"`

	// Tckresample is the streamline resample binary (default "tckresample").
	Tckresample string `json:"tckresample" yaml:"tckresample"`
}

// ReportConfig holds settings for report rendering.
type ReportConfig struct {
	// PDFName is the file name of the PDF report, relative to the subject
	// directory (default "fiber_counts.pdf").
	PDFName string `json:"pdf_name" yaml:"pdf_name"`

	// YAMLName is the file name of the YAML count export, relative to the
	// subject directory (default "fiber_counts.yaml").
	YAMLName string `json:"yaml_name" yaml:"yaml_name"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DBPath is the SQLite database path. Empty means
	// <subject-dir>/.tract-engine/history.db.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// PipelineConfig groups all settings for a pipeline run over one subject
// directory.
type PipelineConfig struct {
	// SubjectDir is the flat directory holding the tract and ROI files.
	// All derived artifacts are written next to their inputs.
	SubjectDir string `json:"subject_dir" yaml:"subject_dir"`

	// Tracts lists the tract files to process with their ROI masks.
	// Report ordering follows this slice.
	Tracts []TractSpec `json:"tracts" yaml:"tracts"`

	// Parallel runs per-tract steps concurrently. Tracts touch disjoint
	// file sets, so this is safe; report ordering is unaffected.
	Parallel bool `json:"parallel" yaml:"parallel"`

	Tools   ToolsConfig   `json:"tools" yaml:"tools"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// DefaultTracts returns the fixed corticospinal-tract pipeline: left and
// right CST, each gated on the ipsilateral posterior internal capsule and
// cerebral peduncle masks.
func DefaultTracts() []TractSpec {
	return []TractSpec{
		{File: "CST_L.tck", ROIs: []string{"LPIC_binary.nii.gz", "LCP_binary.nii.gz"}},
		{File: "CST_R.tck", ROIs: []string{"RPIC_binary.nii.gz", "RCP_binary.nii.gz"}},
	}
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *PipelineConfig) ApplyDefaults() {
	if len(c.Tracts) == 0 {
		c.Tracts = DefaultTracts()
	}
	if c.Tools.Tckedit == "" {
		c.Tools.Tckedit = "tckedit"
	}
	if c.Tools.Tckresample == "" {
		c.Tools.Tckresample = "tckresample"
	}
	if c.Report.PDFName == "" {
		c.Report.PDFName = "fiber_counts.pdf"
	}
	if c.Report.YAMLName == "" {
		c.Report.YAMLName = "fiber_counts.yaml"
	}
	if c.History.DBPath == "" {
		c.History.DBPath = filepath.Join(c.SubjectDir, ".tract-engine", "history.db")
	}
}
