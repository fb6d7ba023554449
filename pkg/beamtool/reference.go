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
// Package beamtool exposes the Beam YAML reference tables, validator,
// and generator as tools. Everything here is local and deterministic;
// nothing shells out.
package beamtool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dataflow-labs/beamline/pkg/beam"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

func ms(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

// TransformsListTool lists known Beam YAML transforms by category.
type TransformsListTool struct{}

func NewTransformsListTool() *TransformsListTool { return &TransformsListTool{} }

func (t *TransformsListTool) Name() string { return "beam_transforms_list" }

func (t *TransformsListTool) Description() string {
	return "List available Beam YAML transforms, optionally filtered by category (io, transform, ml, sql)"
}

func (t *TransformsListTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for listing Beam YAML transforms",
		map[string]*tool.JSONSchema{
			"category": tool.NewStringSchema("Category filter; unknown values list everything").
				WithEnum("all", "io", "transform", "ml", "sql").
				WithDefault("all"),
		},
		nil)
}

func (t *TransformsListTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	category := beam.ParseCategory(tool.StringParamDefault(params, "category", "all"))
	names := beam.TransformsByCategory(category)

	report := fmt.Sprintf("Beam YAML transforms (category: %s, %d total)\n\n", category, len(names))
	for _, name := range names {
		cat, _ := beam.TransformCategory(name)
		report += fmt.Sprintf("  %-22s %s\n", name, cat)
	}

	result := tool.TextResult(report, ms(start))
	result.Metadata = map[string]interface{}{
		"category": string(category),
		"count":    len(names),
	}
	return result, nil
}

// TransformDetailsTool returns usage documentation for one transform.
type TransformDetailsTool struct{}

func NewTransformDetailsTool() *TransformDetailsTool { return &TransformDetailsTool{} }

func (t *TransformDetailsTool) Name() string { return "beam_transform_details" }

func (t *TransformDetailsTool) Description() string {
	return "Get configuration parameters and a usage example for a specific Beam YAML transform"
}

func (t *TransformDetailsTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for looking up transform documentation",
		map[string]*tool.JSONSchema{
			"transform": tool.NewStringSchema("Exact transform name, e.g. Filter or ReadFromBigQuery"),
		},
		[]string{"transform"})
}

func (t *TransformDetailsTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	name, ok := tool.StringParam(params, "transform")
	if !ok || name == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"transform is required", "provide the transform name to document", ms(start)), nil
	}

	if !beam.KnownTransform(name) {
		return tool.ErrorResult(tool.CodeNotFound,
			fmt.Sprintf("unknown transform %q", name),
			"transform names are case-sensitive; use beam_transforms_list to see what exists", ms(start)), nil
	}

	doc, ok := beam.LookupTransformDoc(name)
	if !ok {
		cat, _ := beam.TransformCategory(name)
		return tool.TextResult(fmt.Sprintf(
			"Transform: %s (category: %s)\n\nNo detailed documentation cached for this transform; see the Beam YAML reference.",
			name, cat), ms(start)), nil
	}

	return tool.TextResult(beam.FormatTransformDoc(doc), ms(start)), nil
}

// ConnectorSchemaTool returns the input/output schema for an IO
// connector.
type ConnectorSchemaTool struct{}

func NewConnectorSchemaTool() *ConnectorSchemaTool { return &ConnectorSchemaTool{} }

func (t *ConnectorSchemaTool) Name() string { return "beam_connector_schema" }

func (t *ConnectorSchemaTool) Description() string {
	return "Get the input/output schema, configuration parameters, and usage tips for a Beam YAML IO connector"
}

func (t *ConnectorSchemaTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Parameters for looking up a connector schema",
		map[string]*tool.JSONSchema{
			"connector": tool.NewStringSchema("Exact connector name, e.g. ReadFromBigQuery"),
		},
		[]string{"connector"})
}

func (t *ConnectorSchemaTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	start := time.Now()

	name, ok := tool.StringParam(params, "connector")
	if !ok || name == "" {
		return tool.ErrorResult(tool.CodeInvalidParams,
			"connector is required", "provide the connector name to look up", ms(start)), nil
	}

	schema, ok := beam.LookupConnectorSchema(name)
	if !ok {
		return tool.ErrorResult(tool.CodeNotFound,
			fmt.Sprintf("no schema information for %q", name),
			"known connectors: "+strings.Join(beam.ConnectorNames(), ", "), ms(start)), nil
	}

	return tool.TextResult(beam.FormatConnectorSchema(schema), ms(start)), nil
}
