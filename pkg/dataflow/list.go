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

const defaultListLimit = 20

// ListTool lists Dataflow jobs in a project and region, filtered by
// status.
type ListTool struct {
	opts Options
}

// NewListTool creates the dataflow_jobs_list tool.
func NewListTool(opts Options) *ListTool {
	return &ListTool{opts: opts}
}

func (t *ListTool) Name() string {
	return "dataflow_jobs_list"
}

func (t *ListTool) Description() string {
	return "List Dataflow jobs in a project, filtered by status (active, terminated, failed, or all)"
}

func (t *ListTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for listing Dataflow jobs",
		map[string]*tool.JSONSchema{
			"status": tool.NewStringSchema("Job status filter").
				WithEnum("active", "terminated", "failed", "all").
				WithDefault("active"),
			"limit":   tool.NewIntegerSchema("Maximum number of jobs to return").WithDefault(defaultListLimit),
			"project": tool.NewStringSchema("Google Cloud project ID; defaults to the configured project"),
			"region":  tool.NewStringSchema("Dataflow region").WithDefault(DefaultRegion),
		},
		nil)
}

func (t *ListTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	status := tool.StringParamDefault(params, "status", "active")
	switch status {
	case "active", "terminated", "failed", "all":
	default:
		return tool.ErrorResult(tool.CodeInvalidParams,
			fmt.Sprintf("invalid status filter %q", status),
			"use one of: active, terminated, failed, all", ms(start)), nil
	}
	limit := tool.IntParamDefault(params, "limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	project, ok := t.opts.project(params)
	if !ok {
		return missingProject(start), nil
	}
	region := t.opts.region(params)

	// "failed" is not a gcloud filter value: list terminated jobs and
	// keep the ones that ended in JOB_STATE_FAILED.
	gcloudStatus := status
	if status == "failed" {
		gcloudStatus = "terminated"
	}

	var jobs []JobRecord
	err := gcloud.RunJSON(ctx, t.opts.Runner, &jobs,
		"dataflow", "jobs", "list",
		"--project", project, "--region", region,
		"--status", gcloudStatus,
		"--limit", strconv.Itoa(limit))
	if err != nil {
		return runError(err, start), nil
	}

	if status == "failed" {
		failed := jobs[:0]
		for _, j := range jobs {
			if j.State() == "FAILED" {
				failed = append(failed, j)
			}
		}
		jobs = failed
	}

	report := fmt.Sprintf("Found %d %s job(s) in %s/%s\n", len(jobs), status, project, region)
	for _, j := range jobs {
		report += "\n" + j.format()
	}

	result := tool.TextResult(report, ms(start))
	result.Metadata = map[string]interface{}{
		"count":  len(jobs),
		"status": status,
		"region": region,
	}
	return result, nil
}
