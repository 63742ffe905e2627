// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter implements ROI inclusion filtering of tract files via
// tckedit. Every tract produces two artifacts: the streamlines that
// traverse all ROI masks, and the inverse (complement) set.
package filter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tract-engine/internal/mrtrix"
	"github.com/pdiddy/tract-engine/pkg/types"
)

// Status indicates the outcome of one filter invocation.
type Status string

const (
	Done   Status = "filtered"
	Failed Status = "failed"
)

// Outputs names the two filtered artifacts derived from one tract file.
type Outputs struct {
	// Standard holds streamlines traversing every ROI mask.
	Standard string

	// Inverse holds the complement set.
	Inverse string
}

// OutputsFor derives the filtered artifact paths for a tract file by
// suffix substitution: CST_L.tck -> CST_L_ICPED.tck, CST_L_ICPED_inv.tck.
func OutputsFor(tractPath string) Outputs {
	stem := strings.TrimSuffix(tractPath, ".tck")
	return Outputs{
		Standard: stem + "_ICPED.tck",
		Inverse:  stem + "_ICPED_inv.tck",
	}
}

// Apply runs tckedit on input, writing output gated on the ROI masks.
// Failures are reported to w and returned as a status; the destination
// file may be left absent or partial, and downstream stages must tolerate
// that.
func Apply(ctx context.Context, tc mrtrix.Toolchain, input, output string, rois []string, inverse bool, w io.Writer) Status {
	if err := tc.Edit(ctx, input, output, rois, inverse); err != nil {
		fmt.Fprintf(w, "failed:   %s (%v)\n", filepath.Base(output), err)
		return Failed
	}
	fmt.Fprintf(w, "filtered: %s\n", filepath.Base(output))
	return Done
}

// BatchResult holds the outcome of a batch filter run.
type BatchResult struct {
	Filtered int
	Failed   int
}

// Total returns the number of filter invocations.
func (r BatchResult) Total() int {
	return r.Filtered + r.Failed
}

// HasFailures reports whether any invocation failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch filters every configured tract, producing both variants per tract.
// It continues after individual failures and prints a summary to w.
func Batch(ctx context.Context, tc mrtrix.Toolchain, cfg types.PipelineConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, tract := range cfg.Tracts {
		input := filepath.Join(cfg.SubjectDir, tract.File)
		rois := make([]string, len(tract.ROIs))
		for i, roi := range tract.ROIs {
			rois[i] = filepath.Join(cfg.SubjectDir, roi)
		}
		outputs := OutputsFor(input)

		for _, variant := range []struct {
			output  string
			inverse bool
		}{
			{outputs.Standard, false},
			{outputs.Inverse, true},
		} {
			if Apply(ctx, tc, input, variant.output, rois, variant.inverse, w) == Done {
				result.Filtered++
			} else {
				result.Failed++
			}
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d filtered, %d failed (total: %d)\n",
		result.Filtered, result.Failed, result.Total())
	return result
}
