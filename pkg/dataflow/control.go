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
	"time"

	"github.com/dataflow-labs/beamline/pkg/tool"
)

// controlTool implements the cancel and drain operations, which differ
// only in verb and description. Cancel stops a job immediately; drain
// stops pulling new data but finishes in-flight work first.
type controlTool struct {
	opts        Options
	verb        string
	description string
}

// NewCancelTool creates the dataflow_job_cancel tool.
func NewCancelTool(opts Options) tool.Tool {
	return &controlTool{
		opts:        opts,
		verb:        "cancel",
		description: "Cancel a running Dataflow job immediately; in-flight data may be lost",
	}
}

// NewDrainTool creates the dataflow_job_drain tool. Draining only
// applies to streaming jobs.
func NewDrainTool(opts Options) tool.Tool {
	return &controlTool{
		opts:        opts,
		verb:        "drain",
		description: "Drain a streaming Dataflow job: stop consuming new data and finish in-flight work",
	}
}

func (t *controlTool) Name() string {
	return "dataflow_job_" + t.verb
}

func (t *controlTool) Description() string {
	return t.description
}

func (t *controlTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema(fmt.Sprintf("Parameters for the %s operation", t.verb),
		map[string]*tool.JSONSchema{
			"job_id":  tool.NewStringSchema(fmt.Sprintf("Dataflow job ID to %s", t.verb)),
			"project": tool.NewStringSchema("Google Cloud project ID; defaults to the configured project"),
			"region":  tool.NewStringSchema("Dataflow region").WithDefault(DefaultRegion),
		},
		[]string{"job_id"})
}

func (t *controlTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	jobID, ok := tool.StringParam(params, "job_id")
	if !ok || jobID == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"job_id is required",
			fmt.Sprintf("provide the Dataflow job ID to %s", t.verb), ms(start)), nil
	}
	project, ok := t.opts.project(params)
	if !ok {
		return missingProject(start), nil
	}
	region := t.opts.region(params)

	out, err := t.opts.Runner.Run(ctx,
		"dataflow", "jobs", t.verb, jobID,
		"--project", project, "--region", region)
	if err != nil {
		return runError(err, start), nil
	}

	report := fmt.Sprintf("Requested %s of job %s", t.verb, jobID)
	if len(out) > 0 {
		report += "\n" + string(out)
	}

	result := tool.TextResult(report, ms(start))
	result.Metadata = map[string]interface{}{
		"job_id":    jobID,
		"operation": t.verb,
		"region":    region,
	}
	return result, nil
}
