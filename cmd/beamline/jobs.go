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
	"github.com/spf13/cobra"
)

var (
	jobsListStatus string
	jobsListLimit  int
	jobsLogsLimit  int

	submitName         string
	submitTempLocation string
	submitDryRun       bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and manage Dataflow jobs",
	Long:  `Inspect and manage Dataflow jobs through the gcloud CLI. A project must be set via --project, the config file, or BEAMLINE_GCP_PROJECT.`,
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show one job's current state",
	Long: `Show a Dataflow job's current state and timing.

Examples:
  beamline jobs status 2026-01-15_03_14_15-123456789 --project my-project
`,
	Args: cobra.ExactArgs(1),
	Run:  runJobsStatusCommand,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Dataflow jobs",
	Long: `List Dataflow jobs by status: active (default), terminated,
failed, or all.

Examples:
  beamline jobs list
  beamline jobs list --status failed --limit 5
`,
	Run: runJobsListCommand,
}

var jobsLogsCmd = &cobra.Command{
	Use:   "logs <job-id>",
	Short: "Fetch a job's error logs",
	Long: `Fetch error-severity log entries for a Dataflow job from Cloud
Logging.

Examples:
  beamline jobs logs 2026-01-15_03_14_15-123456789
`,
	Args: cobra.ExactArgs(1),
	Run:  runJobsLogsCommand,
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a running job immediately",
	Args:  cobra.ExactArgs(1),
	Run:   runJobsCancelCommand,
}

var jobsDrainCmd = &cobra.Command{
	Use:   "drain <job-id>",
	Short: "Drain a streaming job",
	Long:  `Drain a streaming Dataflow job: stop pulling new input, finish processing what is in flight, then stop.`,
	Args:  cobra.ExactArgs(1),
	Run:   runJobsDrainCommand,
}

var jobsSubmitCmd = &cobra.Command{
	Use:   "submit <pipeline.yaml>",
	Short: "Submit a Beam YAML pipeline as a Dataflow job",
	Long: `Validate a local Beam YAML pipeline and submit it to Dataflow.
With --dry-run the gcloud command is printed instead of executed.

Examples:
  beamline jobs submit pipeline.yaml --name nightly-export --project my-project
  beamline jobs submit pipeline.yaml --name test-run --dry-run
`,
	Args: cobra.ExactArgs(1),
	Run:  runJobsSubmitCommand,
}

func init() {
	jobsCmd.AddCommand(jobsStatusCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsLogsCmd)
	jobsCmd.AddCommand(jobsCancelCmd)
	jobsCmd.AddCommand(jobsDrainCmd)
	jobsCmd.AddCommand(jobsSubmitCmd)

	jobsListCmd.Flags().StringVar(&jobsListStatus, "status", "active", "job status filter: active, terminated, failed, all")
	jobsListCmd.Flags().IntVarP(&jobsListLimit, "limit", "n", 20, "maximum number of jobs to return")
	jobsLogsCmd.Flags().IntVarP(&jobsLogsLimit, "limit", "n", 50, "maximum number of log entries")

	jobsSubmitCmd.Flags().StringVar(&submitName, "name", "", "job name (required)")
	jobsSubmitCmd.Flags().StringVar(&submitTempLocation, "temp-location", "", "GCS path for temporary files (gs://...)")
	jobsSubmitCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "print the gcloud command without running it")
	_ = jobsSubmitCmd.MarkFlagRequired("name")
}

func runJobsStatusCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	runTool(cmd, buildRegistry(cfg), "dataflow_job_status", map[string]interface{}{
		"job_id": args[0],
	})
}

func runJobsListCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	runTool(cmd, buildRegistry(cfg), "dataflow_jobs_list", map[string]interface{}{
		"status": jobsListStatus,
		"limit":  jobsListLimit,
	})
}

func runJobsLogsCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	runTool(cmd, buildRegistry(cfg), "dataflow_job_logs", map[string]interface{}{
		"job_id": args[0],
		"limit":  jobsLogsLimit,
	})
}

func runJobsCancelCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	runTool(cmd, buildRegistry(cfg), "dataflow_job_cancel", map[string]interface{}{
		"job_id": args[0],
	})
}

func runJobsDrainCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	runTool(cmd, buildRegistry(cfg), "dataflow_job_drain", map[string]interface{}{
		"job_id": args[0],
	})
}

func runJobsSubmitCommand(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	params := map[string]interface{}{
		"job_name":      submitName,
		"pipeline_file": args[0],
		"dry_run":       submitDryRun,
	}
	if submitTempLocation != "" {
		params["temp_location"] = submitTempLocation
	}
	runTool(cmd, buildRegistry(cfg), "dataflow_job_submit", params)
}
