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
// Package app wires configuration into the full tool registry shared
// by the CLI and the MCP server.
package app

import (
	"github.com/dataflow-labs/beamline/pkg/beamtool"
	"github.com/dataflow-labs/beamline/pkg/config"
	"github.com/dataflow-labs/beamline/pkg/dataflow"
	"github.com/dataflow-labs/beamline/pkg/gcloud"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// BuildRegistry registers every beamline tool: the five Beam YAML
// reference/authoring tools and the six Dataflow job tools.
func BuildRegistry(cfg *config.Config) *tool.Registry {
	registry := tool.NewRegistry()

	registry.Register(beamtool.NewTransformsListTool())
	registry.Register(beamtool.NewTransformDetailsTool())
	registry.Register(beamtool.NewConnectorSchemaTool())
	registry.Register(beamtool.NewValidatePipelineTool())
	registry.Register(beamtool.NewGeneratePipelineTool())

	opts := dataflow.Options{
		Runner:  gcloud.NewExecRunner(),
		Project: cfg.GCP.Project,
		Region:  cfg.GCP.Region,
	}
	registry.Register(dataflow.NewStatusTool(opts))
	registry.Register(dataflow.NewListTool(opts))
	registry.Register(dataflow.NewLogsTool(opts))
	registry.Register(dataflow.NewCancelTool(opts))
	registry.Register(dataflow.NewDrainTool(opts))
	registry.Register(dataflow.NewSubmitTool(opts))

	return registry
}
