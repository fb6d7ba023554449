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
package dataflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dataflow-labs/beamline/pkg/gcloud"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

const defaultLogLimit = 50

// logEntry is the subset of a Cloud Logging entry this tool renders.
type logEntry struct {
	Timestamp   string `json:"timestamp"`
	Severity    string `json:"severity"`
	TextPayload string `json:"textPayload"`
	JSONPayload struct {
		Message string `json:"message"`
	} `json:"jsonPayload"`
}

func (e logEntry) message() string {
	if e.TextPayload != "" {
		return e.TextPayload
	}
	if e.JSONPayload.Message != "" {
		return e.JSONPayload.Message
	}
	return "(no message payload)"
}

// LogsTool fetches error-level Cloud Logging entries for one Dataflow
// job.
type LogsTool struct {
	opts Options
}

// NewLogsTool creates the dataflow_job_logs tool.
func NewLogsTool(opts Options) *LogsTool {
	return &LogsTool{opts: opts}
}

func (t *LogsTool) Name() string {
	return "dataflow_job_logs"
}

func (t *LogsTool) Description() string {
	return "Fetch recent error logs for a Dataflow job from Cloud Logging"
}

func (t *LogsTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for fetching Dataflow job error logs",
		map[string]*tool.JSONSchema{
			"job_id":  tool.NewStringSchema("Dataflow job ID to fetch logs for"),
			"limit":   tool.NewIntegerSchema("Maximum number of log entries").WithDefault(defaultLogLimit),
			"project": tool.NewStringSchema("Google Cloud project ID; defaults to the configured project"),
		},
		[]string{"job_id"})
}

func (t *LogsTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	jobID, ok := tool.StringParam(params, "job_id")
	if !ok || jobID == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"job_id is required", "provide the Dataflow job ID to fetch logs for", ms(start)), nil
	}
	limit := tool.IntParamDefault(params, "limit", defaultLogLimit)
	if limit <= 0 {
		limit = defaultLogLimit
	}
	project, ok := t.opts.project(params)
	if !ok {
		return missingProject(start), nil
	}

	filter := fmt.Sprintf(
		`resource.type="dataflow_step" AND resource.labels.job_id=%q AND severity>=ERROR`, jobID)

	var entries []logEntry
	err := gcloud.RunJSON(ctx, t.opts.Runner, &entries,
		"logging", "read", filter,
		"--project", project,
		"--limit", strconv.Itoa(limit))
	if err != nil {
		return runError(err, start), nil
	}

	if len(entries) == 0 {
		result := tool.TextResult(
			fmt.Sprintf("No error logs found for job %s", jobID), ms(start))
		result.Metadata = map[string]interface{}{"job_id": jobID, "count": 0}
		return result, nil
	}

	report := fmt.Sprintf("Error logs for job %s (%d entries)\n", jobID, len(entries))
	for _, e := range entries {
		report += fmt.Sprintf("\n[%s] %s\n%s\n", e.Timestamp, e.Severity, e.message())
	}

	result := tool.TextResult(report, ms(start))
	result.Metadata = map[string]interface{}{
		"job_id": jobID,
		"count":  len(entries),
	}
	return result, nil
}
