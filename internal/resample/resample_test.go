// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resample

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// fakeToolchain records Resample invocations and fails on configured inputs.
type fakeToolchain struct {
	failInputs map[string]bool
	calls      []string
}

func (f *fakeToolchain) Name() string    { return "fake" }
func (f *fakeToolchain) Available() bool { return true }

func (f *fakeToolchain) Edit(_ context.Context, _, _ string, _ []string, _ bool) error {
	return errors.New("edit not expected in resample tests")
}

func (f *fakeToolchain) Resample(_ context.Context, input, output string) error {
	f.calls = append(f.calls, fmt.Sprintf("resample %s -> %s", input, output))
	if f.failInputs[input] {
		return errors.New("exit status 1")
	}
	return nil
}

func TestEndpointPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"CST_L_ICPED.tck", "CST_L_ICPED_ep.tck"},
		{"sub/CST_R_ICPED_inv.tck", "sub/CST_R_ICPED_inv_ep.tck"},
	}
	for _, tt := range tests {
		if got := EndpointPath(tt.path); got != tt.want {
			t.Errorf("EndpointPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		fail       bool
		wantStatus Status
		wantLog    string
	}{
		{"success", false, Done, "resampled:"},
		{"missing filtered input", true, Failed, "failed:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := &fakeToolchain{}
			if tt.fail {
				tc.failInputs = map[string]bool{"in.tck": true}
			}
			var log bytes.Buffer

			status := Endpoints(context.Background(), tc, "in.tck", "out.tck", &log)

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

	tc := &fakeToolchain{failInputs: map[string]bool{
		"subj/CST_R_ICPED_inv.tck": true,
	}}
	var log bytes.Buffer

	result := Batch(context.Background(), tc, cfg, &log)

	if result.Resampled != 3 || result.Failed != 1 {
		t.Errorf("result = %+v, want 3 resampled, 1 failed", result)
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false despite failure")
	}
	if len(tc.calls) != 4 {
		t.Fatalf("got %d resample calls, want 4", len(tc.calls))
	}
	if tc.calls[0] != "resample subj/CST_L_ICPED.tck -> subj/CST_L_ICPED_ep.tck" {
		t.Errorf("first call = %q", tc.calls[0])
	}
	if !strings.Contains(log.String(), "Batch summary: 3 resampled, 1 failed (total: 4)") {
		t.Errorf("log missing batch summary: %q", log.String())
	}
}
