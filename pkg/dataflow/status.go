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
	"time"

	"github.com/dataflow-labs/beamline/pkg/gcloud"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// StatusTool describes a single Dataflow job.
type StatusTool struct {
	opts Options
}

// NewStatusTool creates the dataflow_job_status tool.
func NewStatusTool(opts Options) *StatusTool {
	return &StatusTool{opts: opts}
}

func (t *StatusTool) Name() string {
	return "dataflow_job_status"
}

func (t *StatusTool) Description() string {
	return "Get the current status of a Dataflow job by its job ID, including state, type, and creation time"
}

func (t *StatusTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for querying Dataflow job status",
		map[string]*tool.JSONSchema{
			"job_id":  tool.NewStringSchema("Dataflow job ID (e.g. 2024-01-15_08_30_00-1234567890123456789)"),
			"project": tool.NewStringSchema("Google Cloud project ID; defaults to the configured project"),
			"region":  tool.NewStringSchema("Dataflow region").WithDefault(DefaultRegion),
		},
		[]string{"job_id"})
}

func (t *StatusTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	jobID, ok := tool.StringParam(params, "job_id")
	if !ok || jobID == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"job_id is required", "provide the Dataflow job ID to describe", ms(start)), nil
	}
	project, ok := t.opts.project(params)
	if !ok {
		return missingProject(start), nil
	}
	region := t.opts.region(params)

	var job JobRecord
	err := gcloud.RunJSON(ctx, t.opts.Runner, &job,
		"dataflow", "jobs", "describe", jobID,
		"--project", project, "--region", region)
	if err != nil {
		return runError(err, start), nil
	}

	result := tool.TextResult(job.format(), ms(start))
	result.Metadata = map[string]interface{}{
		"job_id": job.ID,
		"state":  job.State(),
		"region": region,
	}
	return result, nil
}
