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
	"time"

	"github.com/spf13/cobra"

	"github.com/dataflow-labs/beamline/pkg/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tool invocations",
	Long: `Show the most recent tool invocations recorded by the MCP
server, newest first.

Examples:
  beamline history
  beamline history --limit 50
`,
	Run: runHistoryCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of invocations to show")
}

func runHistoryCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if !cfg.History.Enabled {
		fmt.Fprintln(os.Stderr, "History is disabled (history.enabled: false).")
		os.Exit(1)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open history %s: %v\n", cfg.History.Path, err)
		os.Exit(1)
	}
	defer store.Close()

	invocations, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(invocations) == 0 {
		fmt.Println("No recorded invocations.")
		return
	}

	fmt.Printf("%-25s %-24s %-8s %-10s %s\n", "TIME", "TOOL", "OK", "ELAPSED", "ERROR")
	for _, inv := range invocations {
		errMsg := inv.Error
		if len(errMsg) > 60 {
			errMsg = errMsg[:57] + "..."
		}
		fmt.Printf("%-25s %-24s %-8t %-10s %s\n",
			inv.At.Format(time.RFC3339),
			inv.Tool,
			inv.Success,
			fmt.Sprintf("%dms", inv.ElapsedMs),
			errMsg)
	}
	fmt.Printf("\nShowing %d invocation(s)\n", len(invocations))
}
