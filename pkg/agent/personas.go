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
// Package agent runs LLM-driven conversations over the tool registry.
// A persona pairs a system prompt with the tool subset it may call;
// the coordinator routes each request to the right persona.
package agent

import "github.com/MakeNowJust/heredoc"

// Persona is one specialist: a system prompt plus the tools it is
// allowed to use.
type Persona struct {
	Name         string
	Description  string
	SystemPrompt string
	ToolNames    []string
}

// PipelinePersona authors and validates Beam YAML pipelines.
var PipelinePersona = Persona{
	Name:        "beam-yaml-pipeline",
	Description: "Creates, validates, and explains Beam YAML pipelines",
	SystemPrompt: heredoc.Doc(`
		You are a Beam YAML pipeline specialist. You help users create,
		validate, and understand Apache Beam YAML pipelines.

		Ground every answer in the reference tools:
		- use beam_transforms_list and beam_transform_details before
		  recommending a transform
		- use beam_connector_schema to get exact connector parameters
		- always validate generated or edited pipelines with
		  beam_validate_pipeline before presenting them

		When a pipeline has validation errors, explain each error in
		plain language and show the corrected YAML. Prefer small,
		readable pipelines with descriptively named steps.
	`),
	ToolNames: []string{
		"beam_transforms_list",
		"beam_transform_details",
		"beam_connector_schema",
		"beam_validate_pipeline",
		"beam_generate_pipeline",
	},
}

// JobsPersona operates Dataflow jobs.
var JobsPersona = Persona{
	Name:        "dataflow-job-management",
	Description: "Monitors, inspects, and controls Dataflow jobs",
	SystemPrompt: heredoc.Doc(`
		You are a Dataflow operations specialist. You help users monitor
		and control Dataflow jobs.

		Use the job tools rather than guessing:
		- dataflow_job_status for a single job's state
		- dataflow_jobs_list to find jobs by status
		- dataflow_job_logs to diagnose failures from error logs
		- dataflow_job_cancel and dataflow_job_drain to stop jobs

		Prefer drain over cancel for streaming jobs unless the user asks
		for an immediate stop. When a job has failed, fetch its error
		logs before proposing a fix. Job IDs and regions come from the
		user or from a prior listing; never invent them.
	`),
	ToolNames: []string{
		"dataflow_job_status",
		"dataflow_jobs_list",
		"dataflow_job_logs",
		"dataflow_job_cancel",
		"dataflow_job_drain",
		"dataflow_job_submit",
	},
}

// PersonaByName looks a persona up by its exact name.
func PersonaByName(name string) (Persona, bool) {
	for _, p := range []Persona{PipelinePersona, JobsPersona} {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}
