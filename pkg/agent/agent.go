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
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/dataflow-labs/beamline/internal/log"
	"github.com/dataflow-labs/beamline/pkg/llm"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// DefaultMaxIterations bounds the tool-use loop. Each iteration is one
// model turn that may request any number of tool calls.
const DefaultMaxIterations = 10

// Agent drives one persona's conversation: model turn, tool calls,
// results back, repeat until the model answers in text.
type Agent struct {
	provider      llm.Provider
	registry      *tool.Registry
	persona       Persona
	maxIterations int
}

// New creates an agent for the given persona. maxIterations <= 0 uses
// the default bound.
func New(provider llm.Provider, registry *tool.Registry, persona Persona, maxIterations int) *Agent {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Agent{
		provider:      provider,
		registry:      registry,
		persona:       persona,
		maxIterations: maxIterations,
	}
}

// Persona returns the persona this agent runs.
func (a *Agent) Persona() Persona { return a.persona }

// tools returns the persona's tool subset, skipping names not present
// in the registry.
func (a *Agent) tools() []tool.Tool {
	out := make([]tool.Tool, 0, len(a.persona.ToolNames))
	for _, name := range a.persona.ToolNames {
		if t, ok := a.registry.Get(name); ok {
			out = append(out, t)
		}
	}
	return out
}

// Run executes one user request to completion and returns the model's
// final text answer.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: a.persona.SystemPrompt},
		{Role: "user", Content: query},
	}
	available := a.tools()

	for i := 0; i < a.maxIterations; i++ {
		resp, err := a.provider.Chat(ctx, messages, available)
		if err != nil {
			return "", fmt.Errorf("persona %s: %w", a.persona.Name, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			messages = append(messages, llm.Message{
				Role:      "tool",
				ToolUseID: call.ID,
				Content:   a.executeCall(ctx, call),
			})
		}
	}

	return "", fmt.Errorf("persona %s: tool loop exceeded %d iterations", a.persona.Name, a.maxIterations)
}

// executeCall runs one requested tool call. Every failure becomes a
// text result the model can read and react to.
func (a *Agent) executeCall(ctx context.Context, call llm.ToolCall) string {
	t, ok := a.registry.Get(call.Name)
	if !ok {
		return fmt.Sprintf("error: unknown tool %q", call.Name)
	}

	log.Debug("executing tool call",
		zap.String("persona", a.persona.Name),
		zap.String("tool", call.Name),
		zap.String("call_id", call.ID))

	result, err := t.Execute(ctx, call.Input)
	if err != nil {
		return fmt.Sprintf("error: tool %s failed: %v", call.Name, err)
	}

	if !result.Success {
		if result.Error != nil {
			msg := fmt.Sprintf("error [%s]: %s", result.Error.Code, result.Error.Message)
			if result.Error.Suggestion != "" {
				msg += "\nsuggestion: " + result.Error.Suggestion
			}
			return msg
		}
		return "error: tool failed"
	}

	switch data := result.Data.(type) {
	case string:
		return data
	case nil:
		return "(no output)"
	default:
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Sprintf("%v", data)
		}
		return string(b)
	}
}
