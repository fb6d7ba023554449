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
package beamtool

import (
	"context"
	"time"

	"github.com/dataflow-labs/beamline/pkg/beam"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// ValidatePipelineTool validates a Beam YAML pipeline document.
// Validation findings are the tool's data, not a tool failure: the
// result succeeds whenever the document could be examined at all.
type ValidatePipelineTool struct{}

func NewValidatePipelineTool() *ValidatePipelineTool { return &ValidatePipelineTool{} }

func (t *ValidatePipelineTool) Name() string { return "beam_validate_pipeline" }

func (t *ValidatePipelineTool) Description() string {
	return "Validate a Beam YAML pipeline: syntax, transform types, input references, and step names"
}

func (t *ValidatePipelineTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for pipeline validation",
		map[string]*tool.JSONSchema{
			"yaml_content": tool.NewStringSchema("The Beam YAML pipeline document to validate"),
		},
		[]string{"yaml_content"})
}

func (t *ValidatePipelineTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	content, ok := tool.StringParam(params, "yaml_content")
	if !ok || content == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"yaml_content is required", "provide the pipeline YAML to validate", ms(start)), nil
	}

	check := beam.ValidateContent(content)

	result := tool.TextResult(check.Format(), ms(start))
	result.Metadata = map[string]interface{}{
		"valid":           check.Valid,
		"errors":          check.Errors,
		"warnings":        check.Warnings,
		"recommendations": check.Recommendations,
	}
	return result, nil
}

// GeneratePipelineTool drafts a Beam YAML pipeline from a description.
type GeneratePipelineTool struct{}

func NewGeneratePipelineTool() *GeneratePipelineTool { return &GeneratePipelineTool{} }

func (t *GeneratePipelineTool) Name() string { return "beam_generate_pipeline" }

func (t *GeneratePipelineTool) Description() string {
	return "Generate a draft Beam YAML pipeline from a natural-language description, with placeholder values to fill in"
}

func (t *GeneratePipelineTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for pipeline generation",
		map[string]*tool.JSONSchema{
			"description": tool.NewStringSchema("What the pipeline should do, in plain language"),
			"source_type": tool.NewStringSchema("Explicit source connector name (overrides description keywords)"),
			"sink_type":   tool.NewStringSchema("Explicit sink connector name (overrides description keywords)"),
			"transformations": tool.NewArraySchema("Transformation steps, as catalog names or free-text hints",
				tool.NewStringSchema("One transformation")),
		},
		[]string{"description"})
}

func (t *GeneratePipelineTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	description, ok := tool.StringParam(params, "description")
	if !ok || description == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"description is required", "describe the pipeline to generate", ms(start)), nil
	}

	req := beam.GenerateRequest{
		Description:     description,
		SourceType:      tool.StringParamDefault(params, "source_type", ""),
		SinkType:        tool.StringParamDefault(params, "sink_type", ""),
		Transformations: tool.StringSliceParam(params, "transformations"),
	}

	generated, err := beam.Generate(req)
	if err != nil {
		return tool.ErrorResult(tool.CodeInvalidParams, err.Error(),
			"use beam_transforms_list to see valid connector names", ms(start)), nil
	}

	report := "Generated pipeline:\n\n```yaml\n" + generated.YAML + "```\n"
	if len(generated.Notes) > 0 {
		report += "\nNotes:\n"
		for _, note := range generated.Notes {
			report += "  - " + note + "\n"
		}
	}
	if len(generated.Warnings) > 0 {
		report += "\nWarnings:\n"
		for _, w := range generated.Warnings {
			report += "  - " + w + "\n"
		}
	}

	result := tool.TextResult(report, ms(start))
	result.Metadata = map[string]interface{}{
		"yaml":     generated.YAML,
		"notes":    generated.Notes,
		"warnings": generated.Warnings,
	}
	return result, nil
}
