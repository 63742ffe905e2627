// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mrtrix

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// mockExecutor records invocations and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	output        []byte
	err           error

	gotName string
	gotArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunCaptured(_ context.Context, name string, args ...string) ([]byte, error) {
	m.gotName = name
	m.gotArgs = args
	return m.output, m.err
}

func TestEditArguments(t *testing.T) {
	tests := []struct {
		name     string
		rois     []string
		inverse  bool
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "single ROI",
			rois:     []string{"LPIC_binary.nii.gz"},
			wantArgs: []string{"CST_L.tck", "CST_L_ICPED.tck", "-include", "LPIC_binary.nii.gz", "-force"},
		},
		{
			name: "two ROIs keep order",
			rois: []string{"LPIC_binary.nii.gz", "LCP_binary.nii.gz"},
			wantArgs: []string{
				"CST_L.tck", "CST_L_ICPED.tck",
				"-include", "LPIC_binary.nii.gz",
				"-include", "LCP_binary.nii.gz",
				"-force",
			},
		},
		{
			name:    "inverse flag after includes",
			rois:    []string{"LPIC_binary.nii.gz"},
			inverse: true,
			wantArgs: []string{
				"CST_L.tck", "CST_L_ICPED.tck",
				"-include", "LPIC_binary.nii.gz",
				"-inverse", "-force",
			},
		},
		{
			name:    "no ROIs rejected",
			rois:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{}
			tc := newToolchain(types.ToolsConfig{}, exec)

			err := tc.Edit(context.Background(), "CST_L.tck", "CST_L_ICPED.tck", tt.rois, tt.inverse)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if exec.gotName != "" {
					t.Errorf("tool was invoked despite argument error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exec.gotName != "tckedit" {
				t.Errorf("binary = %q, want tckedit", exec.gotName)
			}
			if !reflect.DeepEqual(exec.gotArgs, tt.wantArgs) {
				t.Errorf("args = %v, want %v", exec.gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestResampleArguments(t *testing.T) {
	exec := &mockExecutor{}
	tc := newToolchain(types.ToolsConfig{}, exec)

	if err := tc.Resample(context.Background(), "CST_L_ICPED.tck", "CST_L_ICPED_ep.tck"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.gotName != "tckresample" {
		t.Errorf("binary = %q, want tckresample", exec.gotName)
	}
	want := []string{"CST_L_ICPED.tck", "CST_L_ICPED_ep.tck", "-endpoints", "-force"}
	if !reflect.DeepEqual(exec.gotArgs, want) {
		t.Errorf("args = %v, want %v", exec.gotArgs, want)
	}
}

func TestRunFailureSurfacesCommandAndOutput(t *testing.T) {
	exec := &mockExecutor{
		output: []byte("tckedit: [ERROR] no streamlines specified\n"),
		err:    errors.New("exit status 1"),
	}
	tc := newToolchain(types.ToolsConfig{}, exec)

	err := tc.Edit(context.Background(), "in.tck", "out.tck", []string{"roi.nii.gz"}, false)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, sub := range []string{"tckedit", "in.tck", "out.tck", "exit status 1", "no streamlines specified"} {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("error %q does not contain %q", err, sub)
		}
	}
}

func TestConfiguredBinaryNames(t *testing.T) {
	exec := &mockExecutor{}
	tc := newToolchain(types.ToolsConfig{
		Tckedit:     "/opt/mrtrix3/bin/tckedit",
		Tckresample: "/opt/mrtrix3/bin/tckresample",
	}, exec)

	if err := tc.Resample(context.Background(), "a.tck", "b.tck"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.gotName != "/opt/mrtrix3/bin/tckresample" {
		t.Errorf("binary = %q, want configured path", exec.gotName)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		bins    map[string]bool
		wantErr string
	}{
		{
			name: "both tools present",
			bins: map[string]bool{"tckedit": true, "tckresample": true},
		},
		{
			name:    "tckedit missing",
			bins:    map[string]bool{"tckresample": true},
			wantErr: "tckedit",
		},
		{
			name:    "tckresample missing",
			bins:    map[string]bool{"tckedit": true},
			wantErr: "tckresample",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{availableBins: tt.bins}
			tc, err := detect(types.ToolsConfig{}, exec)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not name missing tool %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.Available() {
				t.Error("detected toolchain reports unavailable")
			}
		})
	}
}
