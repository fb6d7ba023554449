// Copyright 2026 Dataflow Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package gcloud runs the Google Cloud CLI as a subprocess. Everything
// that talks to Dataflow or Cloud Logging goes through the Runner
// interface so tools stay testable without a gcloud install.
package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dataflow-labs/beamline/internal/log"
)

// DefaultTimeout bounds a single gcloud invocation unless the
// GCLOUD_TIMEOUT environment variable overrides it.
const DefaultTimeout = 300 * time.Second

// TimeoutEnvVar holds the override, in whole seconds.
const TimeoutEnvVar = "GCLOUD_TIMEOUT"

// Runner executes one gcloud invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExitError reports a gcloud invocation that started but exited
// non-zero. Stderr is captured for diagnosis.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("gcloud %s exited with code %d: %s",
		strings.Join(e.Args, " "), e.ExitCode, strings.TrimSpace(e.Stderr))
}

// NotInstalledError reports that the gcloud binary could not be found
// on PATH at all.
type NotInstalledError struct {
	Binary string
	Err    error
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s is not installed or not on PATH: %v", e.Binary, e.Err)
}

func (e *NotInstalledError) Unwrap() error { return e.Err }

// ExecRunner runs the real binary with a per-invocation timeout.
type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

// NewExecRunner builds a runner for the gcloud binary, honoring the
// GCLOUD_TIMEOUT override.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Binary: "gcloud", Timeout: timeoutFromEnv()}
}

func timeoutFromEnv() time.Duration {
	raw := os.Getenv(TimeoutEnvVar)
	if raw == "" {
		return DefaultTimeout
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Warn("ignoring invalid timeout override",
			zap.String("var", TimeoutEnvVar), zap.String("value", raw))
		return DefaultTimeout
	}
	return time.Duration(secs) * time.Second
}

// Run executes the binary with the given arguments. Stdout comes back
// verbatim; a non-zero exit becomes an *ExitError carrying stderr.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	log.Debug("gcloud invocation finished",
		zap.Strings("args", args),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("ok", err == nil))

	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("gcloud %s timed out after %s: %w",
			strings.Join(args, " "), timeout, ctx.Err())
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return nil, &NotInstalledError{Binary: r.Binary, Err: err}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &ExitError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}
	return nil, fmt.Errorf("gcloud %s: %w", strings.Join(args, " "), err)
}

// RunJSON executes the invocation with --format=json appended and
// decodes stdout into v.
func RunJSON(ctx context.Context, r Runner, v interface{}, args ...string) error {
	out, err := r.Run(ctx, append(args, "--format=json")...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return fmt.Errorf("decode gcloud output: %w", err)
	}
	return nil
}

// CommandString renders an invocation the way a user would type it,
// quoting arguments that need it. Used for dry runs and logs.
func CommandString(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)
	for _, a := range args {
		if strings.ContainsAny(a, " \t\"'$") {
			parts = append(parts, strconv.Quote(a))
		} else {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, " ")
}
