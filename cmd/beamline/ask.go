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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataflow-labs/beamline/pkg/agent"
	"github.com/dataflow-labs/beamline/pkg/llm/anthropic"
)

var (
	askPersona       string
	askMaxIterations int
)

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Hand a request to an LLM-backed agent",
	Long: `Route a plain-language request to one of two agent personas:
pipeline authoring or job management. The agent calls the same tools
the other subcommands use and answers in text.

Requires an Anthropic API key: llm.api_key in the config file, the
ANTHROPIC_API_KEY environment variable, or 'beamline config set-key'.

Examples:
  beamline ask "why did job 2026-01-15_03_14_15-123456789 fail?"
  beamline ask "draft a pipeline that reads from kafka and writes to bigquery"
  beamline ask --persona dataflow-job-management "list my active jobs"
`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAskCommand,
}

func init() {
	askCmd.Flags().StringVar(&askPersona, "persona", "", "force a persona instead of routing by keywords")
	askCmd.Flags().IntVar(&askMaxIterations, "max-iterations", 0, "tool-use loop bound (default 10)")
}

func runAskCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	query := strings.Join(args, " ")

	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	persona := agent.Route(query)
	if askPersona != "" {
		p, ok := agent.PersonaByName(askPersona)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown persona %q (available: %s, %s)\n",
				askPersona, agent.PipelinePersona.Name, agent.JobsPersona.Name)
			os.Exit(1)
		}
		persona = p
	}

	provider := anthropic.NewClient(anthropic.Config{
		APIKey:    apiKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	})

	a := agent.New(provider, buildRegistry(cfg), persona, askMaxIterations)

	fmt.Fprintf(os.Stderr, "[%s via %s]\n", persona.Name, provider.Model())

	answer, err := a.Run(cmd.Context(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(answer)
}
