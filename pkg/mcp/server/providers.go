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
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dataflow-labs/beamline/internal/log"
	"github.com/dataflow-labs/beamline/pkg/history"
	"github.com/dataflow-labs/beamline/pkg/mcp/protocol"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// ToolProvider supplies tools to the MCP server.
type ToolProvider interface {
	// ListTools returns all available tools.
	ListTools(ctx context.Context) ([]protocol.Tool, error)

	// CallTool invokes a tool by name with the given arguments.
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*protocol.CallToolResult, error)
}

// Recorder persists tool invocations. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, inv history.Invocation) error
}

// RegistryProvider bridges the local tool registry onto the MCP tools
// surface: schema validation on the way in, result rendering on the
// way out, and an optional invocation log on the side.
type RegistryProvider struct {
	registry *tool.Registry
	recorder Recorder
}

// NewRegistryProvider creates a provider over the registry. recorder
// may be nil to disable history.
func NewRegistryProvider(registry *tool.Registry, recorder Recorder) *RegistryProvider {
	return &RegistryProvider{registry: registry, recorder: recorder}
}

// ListTools converts every registered tool into its MCP definition.
func (p *RegistryProvider) ListTools(ctx context.Context) ([]protocol.Tool, error) {
	tools := p.registry.ListTools()
	out := make([]protocol.Tool, 0, len(tools))
	for _, t := range tools {
		schema, err := t.InputSchema().ToMap()
		if err != nil {
			return nil, fmt.Errorf("tool %s: convert schema: %w", t.Name(), err)
		}
		out = append(out, protocol.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		})
	}
	return out, nil
}

// CallTool validates the arguments against the tool's schema, runs the
// tool, and renders its result. Domain failures come back as IsError
// results, never as Go errors.
func (p *RegistryProvider) CallTool(ctx context.Context, name string, args map[string]interface{}) (*protocol.CallToolResult, error) {
	t, ok := p.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	schema, err := t.InputSchema().ToMap()
	if err != nil {
		return nil, fmt.Errorf("tool %s: convert schema: %w", name, err)
	}
	def := protocol.Tool{Name: name, InputSchema: schema}
	if err := protocol.ValidateToolArguments(def, args); err != nil {
		return nil, err
	}

	invocationID := uuid.NewString()
	start := time.Now()

	result, err := t.Execute(ctx, args)
	if err != nil {
		// Programmer error inside the tool, not a domain failure.
		p.record(ctx, invocationID, name, false, err.Error(), start)
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}

	if !result.Success {
		msg := "tool failed"
		if result.Error != nil {
			msg = fmt.Sprintf("[%s] %s", result.Error.Code, result.Error.Message)
			if result.Error.Suggestion != "" {
				msg += "\nSuggestion: " + result.Error.Suggestion
			}
		}
		p.record(ctx, invocationID, name, false, msg, start)
		return &protocol.CallToolResult{
			Content: []protocol.Content{protocol.TextContent(msg)},
			IsError: true,
		}, nil
	}

	p.record(ctx, invocationID, name, true, "", start)
	return &protocol.CallToolResult{
		Content: []protocol.Content{protocol.TextContent(renderData(result.Data))},
	}, nil
}

func (p *RegistryProvider) record(ctx context.Context, id, name string, success bool, errMsg string, start time.Time) {
	if p.recorder == nil {
		return
	}
	inv := history.Invocation{
		ID:        id,
		Tool:      name,
		Success:   success,
		Error:     errMsg,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	if err := p.recorder.Record(ctx, inv); err != nil {
		log.Warn("failed to record invocation",
			zap.String("tool", name), zap.Error(err))
	}
}

// renderData flattens a tool result payload to text. Strings pass
// through; anything else is JSON.
func renderData(data interface{}) string {
	switch v := data.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
