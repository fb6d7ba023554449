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
package gcloud

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run(t *testing.T) {
	r := &ExecRunner{Binary: "echo", Timeout: 5 * time.Second}

	out, err := r.Run(context.Background(), "hello", "world")

	require.NoError(t, err)
	assert.Equal(t, "hello world", strings.TrimSpace(string(out)))
}

func TestExecRunner_ExitError(t *testing.T) {
	r := &ExecRunner{Binary: "sh", Timeout: 5 * time.Second}

	_, err := r.Run(context.Background(), "-c", "echo oops >&2; exit 3")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Contains(t, exitErr.Stderr, "oops")
}

func TestExecRunner_NotInstalled(t *testing.T) {
	r := &ExecRunner{Binary: "definitely-not-a-real-binary-zz", Timeout: 5 * time.Second}

	_, err := r.Run(context.Background(), "anything")

	var notInstalled *NotInstalledError
	assert.ErrorAs(t, err, &notInstalled)
}

func TestExecRunner_Timeout(t *testing.T) {
	r := &ExecRunner{Binary: "sleep", Timeout: 50 * time.Millisecond}

	_, err := r.Run(context.Background(), "5")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestTimeoutFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", DefaultTimeout},
		{"valid", "60", 60 * time.Second},
		{"garbage", "soon", DefaultTimeout},
		{"negative", "-5", DefaultTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Setenv(TimeoutEnvVar, "")
			} else {
				t.Setenv(TimeoutEnvVar, tt.value)
			}
			assert.Equal(t, tt.want, timeoutFromEnv())
		})
	}
}

func TestRunJSON(t *testing.T) {
	var v map[string]interface{}

	err := RunJSON(context.Background(), runnerFunc(func(ctx context.Context, args ...string) ([]byte, error) {
		assert.Equal(t, "--format=json", args[len(args)-1])
		return []byte(`{"id": "job-1"}`), nil
	}), &v, "dataflow", "jobs", "describe", "job-1")

	require.NoError(t, err)
	assert.Equal(t, "job-1", v["id"])
}

func TestRunJSON_BadOutput(t *testing.T) {
	var v map[string]interface{}

	err := RunJSON(context.Background(), runnerFunc(func(ctx context.Context, args ...string) ([]byte, error) {
		return []byte("WARNING: not json"), nil
	}), &v, "dataflow", "jobs", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode gcloud output")
}

type runnerFunc func(ctx context.Context, args ...string) ([]byte, error)

func (f runnerFunc) Run(ctx context.Context, args ...string) ([]byte, error) {
	return f(ctx, args...)
}

func TestCommandString(t *testing.T) {
	got := CommandString("gcloud", []string{"dataflow", "jobs", "list", "--filter", "name = wordcount"})
	assert.Equal(t, `gcloud dataflow jobs list --filter "name = wordcount"`, got)
}
