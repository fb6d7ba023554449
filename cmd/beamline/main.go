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
// beamline is a command-line companion for Apache Beam YAML pipelines
// on Google Cloud Dataflow: author and validate pipelines locally,
// submit and manage jobs, or hand the whole task to an agent.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataflow-labs/beamline/internal/app"
	"github.com/dataflow-labs/beamline/internal/log"
	"github.com/dataflow-labs/beamline/internal/version"
	"github.com/dataflow-labs/beamline/pkg/config"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

var (
	configPath string
	gcpProject string
	gcpRegion  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:     "beamline",
	Short:   "Beam YAML pipelines on Dataflow, from the command line",
	Long:    `beamline authors, validates, and runs Apache Beam YAML pipelines on Google Cloud Dataflow. Job commands shell out to the gcloud CLI; ask mode routes your request to an LLM-backed agent with the same tools.`,
	Version: version.Get(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&gcpProject, "project", "", "Google Cloud project ID")
	rootCmd.PersistentFlags().StringVar(&gcpRegion, "region", "", "Dataflow region")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(transformsCmd)
	rootCmd.AddCommand(connectorsCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and applies flag overrides, then
// initializes logging. Called at the top of every run function.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if gcpProject != "" {
		cfg.GCP.Project = gcpProject
	}
	if gcpRegion != "" {
		cfg.GCP.Region = gcpRegion
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := log.Setup(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: setup logging: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runTool executes a registered tool and prints its result. Domain
// failures print the code, message, and suggestion, then exit 1.
func runTool(cmd *cobra.Command, registry *tool.Registry, name string, params map[string]interface{}) {
	t, ok := registry.Get(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: tool %s is not registered\n", name)
		os.Exit(1)
	}

	result, err := t.Execute(cmd.Context(), params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !result.Success {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "Error [%s]: %s\n", result.Error.Code, result.Error.Message)
			if result.Error.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", result.Error.Suggestion)
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error: tool failed")
		}
		os.Exit(1)
	}

	switch data := result.Data.(type) {
	case string:
		fmt.Println(data)
	case nil:
	default:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fmt.Printf("%v\n", data)
			return
		}
		fmt.Println(string(b))
	}
}

// buildRegistry is a convenience wrapper so every subcommand file reads
// the same way.
func buildRegistry(cfg *config.Config) *tool.Registry {
	return app.BuildRegistry(cfg)
}
