// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// fakeToolchain records Edit invocations and fails on configured outputs.
type fakeToolchain struct {
	failOutputs map[string]bool
	calls       []string
}

func (f *fakeToolchain) Name() string    { return "fake" }
func (f *fakeToolchain) Available() bool { return true }

func (f *fakeToolchain) Edit(_ context.Context, input, output string, rois []string, inverse bool) error {
	f.calls = append(f.calls, fmt.Sprintf("edit %s -> %s rois=%d inverse=%t", input, output, len(rois), inverse))
	if f.failOutputs[output] {
		return errors.New("exit status 1")
	}
	return nil
}

func (f *fakeToolchain) Resample(_ context.Context, input, output string) error {
	return errors.New("resample not expected in filter tests")
}

func TestOutputsFor(t *testing.T) {
	tests := []struct {
		path         string
		wantStandard string
		wantInverse  string
	}{
		{"CST_L.tck", "CST_L_ICPED.tck", "CST_L_ICPED_inv.tck"},
		{"sub/CST_R.tck", "sub/CST_R_ICPED.tck", "sub/CST_R_ICPED_inv.tck"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := OutputsFor(tt.path)
			if got.Standard != tt.wantStandard {
				t.Errorf("standard = %q, want %q", got.Standard, tt.wantStandard)
			}
			if got.Inverse != tt.wantInverse {
				t.Errorf("inverse = %q, want %q", got.Inverse, tt.wantInverse)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		fail       bool
		wantStatus Status
		wantLog    string
	}{
		{"success", false, Done, "filtered:"},
		{"tool failure", true, Failed, "failed:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := &fakeToolchain{}
			if tt.fail {
				tc.failOutputs = map[string]bool{"out.tck": true}
			}
			var log bytes.Buffer

			status := Apply(context.Background(), tc, "in.tck", "out.tck", []string{"roi.nii.gz"}, false, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	cfg := types.PipelineConfig{
		SubjectDir: "subj",
		Tracts:     types.DefaultTracts(),
	}

	t.Run("all succeed", func(t *testing.T) {
		tc := &fakeToolchain{}
		var log bytes.Buffer

		result := Batch(context.Background(), tc, cfg, &log)

		if result.Filtered != 4 || result.Failed != 0 {
			t.Errorf("result = %+v, want 4 filtered, 0 failed", result)
		}
		if result.HasFailures() {
			t.Error("HasFailures() = true for clean run")
		}
		// Two variants per tract, standard before inverse.
		if len(tc.calls) != 4 {
			t.Fatalf("got %d edit calls, want 4", len(tc.calls))
		}
		if !strings.Contains(tc.calls[0], "CST_L_ICPED.tck rois=2 inverse=false") {
			t.Errorf("first call %q is not the standard CST_L filter", tc.calls[0])
		}
		if !strings.Contains(tc.calls[1], "CST_L_ICPED_inv.tck rois=2 inverse=true") {
			t.Errorf("second call %q is not the inverse CST_L filter", tc.calls[1])
		}
		if !strings.Contains(log.String(), "Batch summary: 4 filtered, 0 failed (total: 4)") {
			t.Errorf("log missing batch summary: %q", log.String())
		}
	})

	t.Run("continues after failure", func(t *testing.T) {
		tc := &fakeToolchain{failOutputs: map[string]bool{
			"subj/CST_L_ICPED.tck": true,
		}}
		var log bytes.Buffer

		result := Batch(context.Background(), tc, cfg, &log)

		if result.Filtered != 3 || result.Failed != 1 {
			t.Errorf("result = %+v, want 3 filtered, 1 failed", result)
		}
		if !result.HasFailures() {
			t.Error("HasFailures() = false despite failure")
		}
		if len(tc.calls) != 4 {
			t.Errorf("got %d edit calls, want 4 (batch must continue)", len(tc.calls))
		}
	})
}
