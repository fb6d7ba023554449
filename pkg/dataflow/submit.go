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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dataflow-labs/beamline/pkg/beam"
	"github.com/dataflow-labs/beamline/pkg/gcloud"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// SubmitTool launches a Beam YAML pipeline as a Dataflow job. The
// pipeline document is validated locally before gcloud is invoked, so
// structurally broken pipelines never leave the machine.
type SubmitTool struct {
	opts Options
}

// NewSubmitTool creates the dataflow_job_submit tool.
func NewSubmitTool(opts Options) *SubmitTool {
	return &SubmitTool{opts: opts}
}

func (t *SubmitTool) Name() string {
	return "dataflow_job_submit"
}

func (t *SubmitTool) Description() string {
	return "Submit a Beam YAML pipeline as a Dataflow job; validates the pipeline first and supports dry runs"
}

func (t *SubmitTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for submitting a Beam YAML pipeline",
		map[string]*tool.JSONSchema{
			"job_name":      tool.NewStringSchema("Job name: lowercase letters, digits, and hyphens, starting with a letter"),
			"pipeline_file": tool.NewStringSchema("Path to the Beam YAML pipeline file (local path or gs:// URI)"),
			"temp_location": tool.NewStringSchema("GCS temp location (gs://bucket/path) for staging"),
			"dry_run":       tool.NewBooleanSchema("Validate and show the command without submitting").WithDefault(false),
			"project":       tool.NewStringSchema("Google Cloud project ID; defaults to the configured project"),
			"region":        tool.NewStringSchema("Dataflow region").WithDefault(DefaultRegion),
		},
		[]string{"job_name", "pipeline_file"})
}

func (t *SubmitTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	jobName, _ := tool.StringParam(params, "job_name")
	if !jobNameRE.MatchString(jobName) {
		return tool.ErrorResult(tool.CodeInvalidParams,
			fmt.Sprintf("invalid job name %q", jobName),
			"job names use lowercase letters, digits, and hyphens, and start with a letter", ms(start)), nil
	}

	pipelineFile, ok := tool.StringParam(params, "pipeline_file")
	if !ok || pipelineFile == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"pipeline_file is required", "provide the path to the Beam YAML pipeline", ms(start)), nil
	}

	tempLocation := tool.StringParamDefault(params, "temp_location", "")
	if tempLocation != "" && !strings.HasPrefix(tempLocation, "gs://") {
		return tool.ErrorResult(tool.CodeInvalidParams,
			fmt.Sprintf("temp_location %q is not a gs:// URI", tempLocation),
			"temp_location must point at a Cloud Storage path, e.g. gs://my-bucket/tmp", ms(start)), nil
	}

	project, ok := t.opts.project(params)
	if !ok {
		return missingProject(start), nil
	}
	region := t.opts.region(params)

	// Local files get validated before submission. gs:// pipelines are
	// validated server-side by the Dataflow service instead.
	if !strings.HasPrefix(pipelineFile, "gs://") {
		content, err := os.ReadFile(filepath.Clean(pipelineFile))
		if err != nil {
			return tool.ErrorResult(tool.CodeNotFound,
				fmt.Sprintf("cannot read pipeline file: %v", err),
				"check the pipeline_file path", ms(start)), nil
		}
		check := beam.ValidateContent(string(content))
		if !check.Valid {
			return tool.ErrorResult(tool.CodeValidation,
				"pipeline failed validation:\n"+check.Format(),
				"fix the validation errors before submitting", ms(start)), nil
		}
	}

	args := []string{
		"dataflow", "yaml", "run", jobName,
		"--yaml-pipeline-file", pipelineFile,
		"--project", project,
		"--region", region,
	}
	if tempLocation != "" {
		args = append(args, "--temp-location", tempLocation)
	}

	if tool.BoolParamDefault(params, "dry_run", false) {
		result := tool.TextResult(
			"Dry run. Would execute:\n  "+gcloud.CommandString("gcloud", args), ms(start))
		result.Metadata = map[string]interface{}{"dry_run": true, "job_name": jobName}
		return result, nil
	}

	var launched struct {
		Job JobRecord `json:"job"`
	}
	if err := gcloud.RunJSON(ctx, t.opts.Runner, &launched, args...); err != nil {
		return runError(err, start), nil
	}

	report := fmt.Sprintf("Submitted job %s\n", jobName)
	if launched.Job.ID != "" {
		report += "\n" + launched.Job.format()
	}

	result := tool.TextResult(report, ms(start))
	result.Metadata = map[string]interface{}{
		"job_name": jobName,
		"job_id":   launched.Job.ID,
		"region":   region,
	}
	return result, nil
}
