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
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataflow-labs/beamline/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage beamline configuration",
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the Anthropic API key in the OS keyring",
	Long: `Read an Anthropic API key from stdin and store it in the OS
keyring. Ask mode resolves keys in order: config file, the
ANTHROPIC_API_KEY environment variable, then the keyring.

Examples:
  beamline config set-key < key.txt
  echo "$ANTHROPIC_API_KEY" | beamline config set-key
`,
	Run: runConfigSetKeyCommand,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Run:   runConfigShowCommand,
}

func init() {
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigSetKeyCommand(cmd *cobra.Command, args []string) {
	loadConfig()

	fmt.Fprint(os.Stderr, "API key: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "Error: read key: %v\n", err)
		os.Exit(1)
	}

	key := strings.TrimSpace(line)
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: empty API key")
		os.Exit(1)
	}

	if err := config.StoreAPIKey(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("API key stored in the OS keyring.")
}

func runConfigShowCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	fmt.Printf("gcp.project:     %s\n", orUnset(cfg.GCP.Project))
	fmt.Printf("gcp.region:      %s\n", cfg.GCP.Region)
	fmt.Printf("llm.provider:    %s\n", cfg.LLM.Provider)
	fmt.Printf("llm.model:       %s\n", orUnset(cfg.LLM.Model))
	fmt.Printf("llm.max_tokens:  %d\n", cfg.LLM.MaxTokens)
	fmt.Printf("history.enabled: %t\n", cfg.History.Enabled)
	fmt.Printf("history.path:    %s\n", cfg.History.Path)
	fmt.Printf("log.level:       %s\n", cfg.Log.Level)
	fmt.Printf("log.file:        %s\n", orUnset(cfg.Log.File))

	if _, err := cfg.ResolveAPIKey(); err == nil {
		fmt.Println("llm.api_key:     (resolved)")
	} else {
		fmt.Println("llm.api_key:     (not set)")
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
