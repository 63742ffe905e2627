// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full per-subject tract pipeline: ROI filtering
// (standard and inverse), endpoint resampling, and streamline counting.
// Stage failures are non-fatal; every step returns whatever was obtainable
// and carries explicit reasons for what was not.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/tract-engine/internal/filter"
	"github.com/pdiddy/tract-engine/internal/mrtrix"
	"github.com/pdiddy/tract-engine/internal/resample"
	"github.com/pdiddy/tract-engine/internal/tck"
	"github.com/pdiddy/tract-engine/pkg/types"
)

// lockFile guards a subject directory against concurrent runs.
const lockFile = ".tract-engine.lock"

// StepResult holds the outcome of one tract's pipeline step. The step
// always "succeeds": missing counts are absent, stage failures are listed
// in Failures.
type StepResult struct {
	Tract types.TractSpec

	// Original, Processed, and InverseProcessed are the streamline counts
	// of the input tract and its two filtered artifacts.
	Original         types.FiberCount
	Processed        types.FiberCount
	InverseProcessed types.FiberCount

	// EndpointFiles are the two endpoint artifact paths, standard first.
	// The paths are reported even when resampling failed.
	EndpointFiles []string

	// Failures lists stage failure descriptions in stage order.
	Failures []string
}

// Records returns the step's fiber-count records in report order:
// original, standard-filtered, inverse-filtered.
func (r StepResult) Records() []types.FiberCount {
	return []types.FiberCount{r.Original, r.Processed, r.InverseProcessed}
}

// Result holds a full pipeline run over one subject directory.
type Result struct {
	RunID      string
	SubjectDir string
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []StepResult
}

// Records returns all fiber-count records in tract order, three per tract.
func (r Result) Records() []types.FiberCount {
	records := make([]types.FiberCount, 0, 3*len(r.Steps))
	for _, s := range r.Steps {
		records = append(records, s.Records()...)
	}
	return records
}

// Failures returns all stage failure descriptions across steps.
func (r Result) Failures() []string {
	var failures []string
	for _, s := range r.Steps {
		failures = append(failures, s.Failures...)
	}
	return failures
}

// HasFailures reports whether any stage failed during the run.
func (r Result) HasFailures() bool {
	return len(r.Failures()) > 0
}

// CountArtifact counts the streamlines in a .tck file, reporting read
// errors to w and yielding an absent record instead of propagating them.
func CountArtifact(path string, w io.Writer) types.FiberCount {
	label := filepath.Base(path)
	n, err := tck.Count(path)
	if err != nil {
		fmt.Fprintf(w, "error reading %s: %v\n", label, err)
		return types.Absent(label, err.Error())
	}
	return types.Counted(label, n)
}

// ProcessTract runs the per-tract step: filter standard and inverse,
// resample both to endpoints, then count the original and both filtered
// artifacts.
func ProcessTract(ctx context.Context, tc mrtrix.Toolchain, tract types.TractSpec, subjectDir string, w io.Writer) StepResult {
	input := filepath.Join(subjectDir, tract.File)
	rois := make([]string, len(tract.ROIs))
	for i, roi := range tract.ROIs {
		rois[i] = filepath.Join(subjectDir, roi)
	}
	outputs := filter.OutputsFor(input)
	standardEP := resample.EndpointPath(outputs.Standard)
	inverseEP := resample.EndpointPath(outputs.Inverse)

	result := StepResult{
		Tract:         tract,
		EndpointFiles: []string{standardEP, inverseEP},
	}
	fail := func(stage, artifact string) {
		result.Failures = append(result.Failures,
			fmt.Sprintf("%s: %s (%s)", stage, filepath.Base(artifact), tract.File))
	}

	if filter.Apply(ctx, tc, input, outputs.Standard, rois, false, w) == filter.Failed {
		fail("filter", outputs.Standard)
	}
	if filter.Apply(ctx, tc, input, outputs.Inverse, rois, true, w) == filter.Failed {
		fail("filter", outputs.Inverse)
	}

	// Resampling is attempted even after a filter failure; the tool error
	// on the missing input is reported like any other.
	if resample.Endpoints(ctx, tc, outputs.Standard, standardEP, w) == resample.Failed {
		fail("resample", standardEP)
	}
	if resample.Endpoints(ctx, tc, outputs.Inverse, inverseEP, w) == resample.Failed {
		fail("resample", inverseEP)
	}

	result.Original = CountArtifact(input, w)
	result.Processed = CountArtifact(outputs.Standard, w)
	result.InverseProcessed = CountArtifact(outputs.Inverse, w)
	return result
}

// Run executes the pipeline for every configured tract. The subject
// directory is locked for the duration of the run. Stage failures do not
// abort the run; they are collected in the result. The returned error
// covers setup problems only (lock contention, cancellation).
func Run(ctx context.Context, tc mrtrix.Toolchain, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	lock := flock.New(filepath.Join(cfg.SubjectDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("locking subject directory: %w", err)
	}
	if !locked {
		return Result{}, fmt.Errorf("subject directory %s is locked by another run", cfg.SubjectDir)
	}
	defer lock.Unlock()

	result := Result{
		RunID:      uuid.NewString(),
		SubjectDir: cfg.SubjectDir,
		StartedAt:  time.Now().UTC(),
		Steps:      make([]StepResult, len(cfg.Tracts)),
	}

	if cfg.Parallel {
		// Tracts touch disjoint files. Each step writes to its own buffer
		// so interleaved output cannot garble the log; buffers are flushed
		// in tract order.
		logs := make([]bytes.Buffer, len(cfg.Tracts))
		g, gctx := errgroup.WithContext(ctx)
		for i, tract := range cfg.Tracts {
			i, tract := i, tract
			g.Go(func() error {
				result.Steps[i] = ProcessTract(gctx, tc, tract, cfg.SubjectDir, &logs[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
		for i := range logs {
			io.Copy(w, &logs[i])
		}
	} else {
		for i, tract := range cfg.Tracts {
			result.Steps[i] = ProcessTract(ctx, tc, tract, cfg.SubjectDir, w)
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	for _, step := range result.Steps {
		for _, ep := range step.EndpointFiles {
			fmt.Fprintf(w, "Endpoint file: %s\n", ep)
		}
	}

	result.FinishedAt = time.Now().UTC()
	return result, nil
}
