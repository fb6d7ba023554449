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
package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflow-labs/beamline/pkg/llm"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

type fakeValidateTool struct{}

func (fakeValidateTool) Name() string        { return "beam_validate_pipeline" }
func (fakeValidateTool) Description() string { return "Validate a pipeline" }
func (fakeValidateTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("params",
		map[string]*tool.JSONSchema{"yaml_content": tool.NewStringSchema("yaml")},
		[]string{"yaml_content"})
}
func (fakeValidateTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	return tool.TextResult("ok", 0), nil
}

func TestClient_Chat(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		resp := map[string]interface{}{
			"model":       "claude-test",
			"stop_reason": "tool_use",
			"content": []map[string]interface{}{
				{"type": "text", "text": "Validating now."},
				{"type": "tool_use", "id": "tu_1", "name": "beam_validate_pipeline",
					"input": map[string]interface{}{"yaml_content": "pipeline: {}"}},
			},
			"usage": map[string]interface{}{"input_tokens": 100, "output_tokens": 20},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL, Model: "claude-test"})

	messages := []llm.Message{
		{Role: "system", Content: "You validate pipelines."},
		{Role: "user", Content: "Check my pipeline"},
	}
	resp, err := c.Chat(context.Background(), messages, []tool.Tool{fakeValidateTool{}})

	require.NoError(t, err)
	assert.Equal(t, "Validating now.", resp.Content)
	assert.Equal(t, "tool_use", resp.StopReason)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "beam_validate_pipeline", resp.ToolCalls[0].Name)
	assert.Equal(t, 120, resp.Usage.TotalTokens)

	// System turns leave the messages array for the dedicated field.
	assert.Equal(t, "You validate pipelines.", captured.System)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	require.Len(t, captured.Tools, 1)
	assert.Equal(t, "beam_validate_pipeline", captured.Tools[0].Name)
}

func TestClient_Chat_ToolResultRoundTrip(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"stop_reason": "end_turn",
			"content":     []map[string]interface{}{{"type": "text", "text": "All good."}},
			"usage":       map[string]interface{}{"input_tokens": 1, "output_tokens": 1},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL})

	messages := []llm.Message{
		{Role: "user", Content: "validate"},
		{Role: "assistant", ToolCalls: []llm.ToolCall{{ID: "tu_1", Name: "beam_validate_pipeline"}}},
		{Role: "tool", ToolUseID: "tu_1", Content: "valid"},
	}
	_, err := c.Chat(context.Background(), messages, nil)
	require.NoError(t, err)

	require.Len(t, captured.Messages, 3)

	// Nil tool input is sent as an empty object, not null.
	assistant := captured.Messages[1]
	require.Len(t, assistant.Content, 1)
	assert.Equal(t, "tool_use", assistant.Content[0].Type)
	assert.NotNil(t, assistant.Content[0].Input)

	toolResult := captured.Messages[2]
	assert.Equal(t, "user", toolResult.Role)
	assert.Equal(t, "tool_result", toolResult.Content[0].Type)
	assert.Equal(t, "tu_1", toolResult.Content[0].ToolUseID)
}

func TestClient_Chat_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"type": "rate_limit_error", "message": "slow down"},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL})

	_, err := c.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
	assert.Contains(t, err.Error(), "slow down")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"})
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, "anthropic", c.Name())
}
