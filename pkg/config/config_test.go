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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beamline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
gcp:
  project: my-project
  region: europe-west1
llm:
  model: claude-test
  max_tokens: 2048
log:
  level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "my-project", cfg.GCP.Project)
	assert.Equal(t, "europe-west1", cfg.GCP.Region)
	assert.Equal(t, "claude-test", cfg.LLM.Model)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Defaults fill unset fields.
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.True(t, cfg.History.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "us-central1", cfg.GCP.Region)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: roulette\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}

func TestLoad_RejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, "log:\n  level: loud\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load("/no/such/config.yaml")
	assert.Error(t, err)
}

func TestLoad_GoogleCloudEnvFallback(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")

	path := writeConfig(t, "{}\n")
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-project", cfg.GCP.Project)
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "fallback-project")
	t.Setenv("BEAMLINE_GCP_PROJECT", "primary-project")

	path := writeConfig(t, "{}\n")
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "primary-project", cfg.GCP.Project)
}

func TestResolveAPIKey_ConfigWins(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	cfg := &Config{LLM: LLMConfig{APIKey: "config-key"}}
	key, err := cfg.ResolveAPIKey()

	require.NoError(t, err)
	assert.Equal(t, "config-key", key)
}

func TestResolveAPIKey_EnvFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	cfg := &Config{}
	key, err := cfg.ResolveAPIKey()

	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}
