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
// Package llm defines the provider-neutral conversation types the
// agent loop speaks. Concrete providers live in subpackages.
package llm

import (
	"context"

	"github.com/dataflow-labs/beamline/pkg/tool"
)

// Provider is a chat-completion backend with tool use.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Model returns the model identifier in use.
	Model() string

	// Chat sends the conversation and available tools, returning the
	// model's next turn.
	Chat(ctx context.Context, messages []Message, tools []tool.Tool) (*Response, error)
}

// Message is one turn of a conversation. Role is one of system, user,
// assistant, or tool.
type Message struct {
	Role      string
	Content   string
	ToolCalls []ToolCall // assistant turns that request tools
	ToolUseID string     // tool turns: which call this result answers
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// Response is the model's reply to one Chat call.
type Response struct {
	Content    string
	ToolCalls  []ToolCall
	StopReason string
	Usage      Usage
}

// Usage reports token consumption for one exchange.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
