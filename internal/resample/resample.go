// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resample implements endpoint resampling of filtered tract files
// via tckresample -endpoints. Resampling reduces each streamline to its
// two terminal points and never changes the streamline count.
package resample

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tract-engine/internal/filter"
	"github.com/pdiddy/tract-engine/internal/mrtrix"
	"github.com/pdiddy/tract-engine/pkg/types"
)

// Status indicates the outcome of one resample invocation.
type Status string

const (
	Done   Status = "resampled"
	Failed Status = "failed"
)

// EndpointPath derives the endpoint artifact path for a filtered tract
// file: CST_L_ICPED.tck -> CST_L_ICPED_ep.tck.
func EndpointPath(filteredPath string) string {
	return strings.TrimSuffix(filteredPath, ".tck") + "_ep.tck"
}

// Endpoints runs tckresample -endpoints on input, writing output. Failures
// are reported to w and returned as a status; a missing input (typically an
// upstream filter failure) surfaces here as a tool error.
func Endpoints(ctx context.Context, tc mrtrix.Toolchain, input, output string, w io.Writer) Status {
	if err := tc.Resample(ctx, input, output); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(output), err)
		return Failed
	}
	fmt.Fprintf(w, "resampled: %s\n", filepath.Base(output))
	return Done
}

// BatchResult holds the outcome of a batch resample run.
type BatchResult struct {
	Resampled int
	Failed    int
}

// Total returns the number of resample invocations.
func (r BatchResult) Total() int {
	return r.Resampled + r.Failed
}

// HasFailures reports whether any invocation failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch resamples both filtered artifacts of every configured tract. It
// continues after individual failures and prints a summary to w.
func Batch(ctx context.Context, tc mrtrix.Toolchain, cfg types.PipelineConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, tract := range cfg.Tracts {
		outputs := filter.OutputsFor(filepath.Join(cfg.SubjectDir, tract.File))
		for _, input := range []string{outputs.Standard, outputs.Inverse} {
			if Endpoints(ctx, tc, input, EndpointPath(input), w) == Done {
				result.Resampled++
			} else {
				result.Failed++
			}
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d resampled, %d failed (total: %d)\n",
		result.Resampled, result.Failed, result.Total())
	return result
}
