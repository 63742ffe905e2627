// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mrtrix wraps the MRtrix3 command-line tools the pipeline invokes:
// tckedit for ROI filtering and tckresample for endpoint reduction. The
// tools own the filtering semantics (multiple -include masks AND together,
// -inverse selects the complement); this package only builds argument
// lists and surfaces captured output on failure.
package mrtrix

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// Toolchain provides the external streamline operations.
type Toolchain interface {
	// Name identifies the toolchain in diagnostics.
	Name() string

	// Available reports whether both binaries exist on PATH.
	Available() bool

	// Edit filters input into output, keeping streamlines that traverse
	// every ROI mask. With inverse true the complement set is kept.
	Edit(ctx context.Context, input, output string, rois []string, inverse bool) error

	// Resample collapses each streamline in input to its two endpoints.
	Resample(ctx context.Context, input, output string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunCaptured(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunCaptured(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var defaultExec executor = &osExecutor{}

// toolchain implements Toolchain over configured binary names.
type toolchain struct {
	edit     string
	resample string
	exec     executor
}

// New builds a Toolchain from the configured binary names without checking
// availability. Use Detect when the binaries must exist.
func New(cfg types.ToolsConfig) Toolchain {
	return newToolchain(cfg, defaultExec)
}

// Detect builds a Toolchain and verifies both binaries are on PATH.
func Detect(cfg types.ToolsConfig) (Toolchain, error) {
	return detect(cfg, defaultExec)
}

func newToolchain(cfg types.ToolsConfig, exec executor) *toolchain {
	t := &toolchain{edit: cfg.Tckedit, resample: cfg.Tckresample, exec: exec}
	if t.edit == "" {
		t.edit = "tckedit"
	}
	if t.resample == "" {
		t.resample = "tckresample"
	}
	return t
}

func detect(cfg types.ToolsConfig, exec executor) (Toolchain, error) {
	t := newToolchain(cfg, exec)
	for _, bin := range []string{t.edit, t.resample} {
		if _, err := t.exec.LookPath(bin); err != nil {
			return nil, fmt.Errorf("MRtrix3 tool %s not found on PATH: %w", bin, err)
		}
	}
	return t, nil
}

func (t *toolchain) Name() string { return "mrtrix3" }

func (t *toolchain) Available() bool {
	for _, bin := range []string{t.edit, t.resample} {
		if _, err := t.exec.LookPath(bin); err != nil {
			return false
		}
	}
	return true
}

func (t *toolchain) Edit(ctx context.Context, input, output string, rois []string, inverse bool) error {
	if len(rois) == 0 {
		return fmt.Errorf("tckedit requires at least one ROI mask")
	}
	args := []string{input, output}
	for _, roi := range rois {
		args = append(args, "-include", roi)
	}
	if inverse {
		args = append(args, "-inverse")
	}
	args = append(args, "-force")
	return t.run(ctx, t.edit, args)
}

func (t *toolchain) Resample(ctx context.Context, input, output string) error {
	return t.run(ctx, t.resample, []string{input, output, "-endpoints", "-force"})
}

// run executes a tool and, on non-zero exit, returns an error carrying the
// full command line and the tool's combined output.
func (t *toolchain) run(ctx context.Context, bin string, args []string) error {
	out, err := t.exec.RunCaptured(ctx, bin, args...)
	if err != nil {
		msg := string(bytes.TrimSpace(out))
		if msg != "" {
			return fmt.Errorf("running %s %s: %w: %s", bin, strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("running %s %s: %w", bin, strings.Join(args, " "), err)
	}
	return nil
}
