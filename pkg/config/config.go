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
// Package config loads beamline configuration from file, environment,
// and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	// EnvPrefix namespaces environment overrides, e.g.
	// BEAMLINE_GCP_PROJECT.
	EnvPrefix = "BEAMLINE"

	// keyring coordinates for the stored API key.
	keyringService = "beamline"
	keyringUser    = "anthropic-api-key"
)

// Config is the resolved beamline configuration.
type Config struct {
	GCP     GCPConfig     `mapstructure:"gcp"`
	LLM     LLMConfig     `mapstructure:"llm"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

// GCPConfig names the Google Cloud target.
type GCPConfig struct {
	Project string `mapstructure:"project"`
	Region  string `mapstructure:"region"`
}

// LLMConfig configures the model backend for ask mode.
type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// HistoryConfig controls the invocation log.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from the given file, or from the default
// search paths when path is empty. Environment variables prefixed with
// BEAMLINE_ override file values. A missing config file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The standard Google Cloud variables work as fallbacks for the
	// prefixed ones.
	_ = v.BindEnv("gcp.project", "BEAMLINE_GCP_PROJECT", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("gcp.region", "BEAMLINE_GCP_REGION", "GOOGLE_CLOUD_REGION")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("beamline")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "beamline"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gcp.region", "us-central1")
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", defaultHistoryPath())
	v.SetDefault("log.level", "info")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "beamline-history.db"
	}
	return filepath.Join(home, ".config", "beamline", "history.db")
}

// Validate rejects configurations that cannot work.
func (c *Config) Validate() error {
	if c.LLM.Provider != "" && c.LLM.Provider != "anthropic" {
		return fmt.Errorf("unsupported llm provider %q (only anthropic is supported)", c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Log.Level != "" {
		switch c.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level %q", c.Log.Level)
		}
	}
	return nil
}

// ResolveAPIKey finds the LLM API key: config file first, then the
// ANTHROPIC_API_KEY environment variable, then the OS keyring.
func (c *Config) ResolveAPIKey() (string, error) {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey, nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return "", fmt.Errorf("no API key: set llm.api_key, ANTHROPIC_API_KEY, or store one with 'beamline config set-key'")
	}
	return key, nil
}

// StoreAPIKey saves the API key in the OS keyring.
func StoreAPIKey(key string) error {
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("store API key in keyring: %w", err)
	}
	return nil
}
