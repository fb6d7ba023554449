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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflow-labs/beamline/pkg/history"
	"github.com/dataflow-labs/beamline/pkg/mcp/protocol"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// echoTool returns its message parameter, or a structured failure when
// told to.
type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "Echo a message back" }

func (echoTool) InputSchema() *tool.JSONSchema {
	return tool.NewObjectSchema("Echo parameters",
		map[string]*tool.JSONSchema{
			"message": tool.NewStringSchema("Message to echo"),
			"fail":    tool.NewBooleanSchema("Force a failure"),
		},
		[]string{"message"})
}

func (echoTool) Execute(ctx context.Context, params map[string]interface{}) (*tool.Result, error) {
	if tool.BoolParamDefault(params, "fail", false) {
		return tool.ErrorResult(tool.CodeValidation, "forced failure", "stop forcing failures", 1), nil
	}
	msg, _ := tool.StringParam(params, "message")
	return tool.TextResult(msg, 1), nil
}

func newTestServer(t *testing.T, recorder Recorder) *Server {
	t.Helper()
	registry := tool.NewRegistry()
	registry.Register(echoTool{})
	return New("beamline-test", "0.0.1", nil,
		WithToolProvider(NewRegistryProvider(registry, recorder)))
}

func roundTrip(t *testing.T, s *Server, req string) protocol.Response {
	t.Helper()
	respBytes, err := s.HandleMessage(context.Background(), []byte(req))
	require.NoError(t, err)
	require.NotNil(t, respBytes)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	return resp
}

func TestServer_Initialize(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test-client","version":"1.0"}}}`)

	require.Nil(t, resp.Error)

	var result protocol.InitializeResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Equal(t, protocol.ProtocolVersion, result.ProtocolVersion)
	assert.Equal(t, "beamline-test", result.ServerInfo.Name)
	assert.NotNil(t, result.Capabilities.Tools)

	require.NotNil(t, s.ClientInfo())
	assert.Equal(t, "test-client", s.ClientInfo().Name)
}

func TestServer_Ping(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s, `{"jsonrpc":"2.0","id":"p1","method":"ping"}`)

	assert.Nil(t, resp.Error)
	assert.Equal(t, "p1", resp.ID.String())
}

func TestServer_ToolsList(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	require.Nil(t, resp.Error)
	var result protocol.ToolListResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "echo", result.Tools[0].Name)
	assert.Equal(t, "object", result.Tools[0].InputSchema["type"])
}

func TestServer_ToolsCall(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hi"}}}`)

	require.Nil(t, resp.Error)
	var result protocol.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "hi", result.Content[0].Text)
}

func TestServer_ToolsCall_DomainFailureIsToolError(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hi","fail":true}}}`)

	// Domain failures travel as isError content, not JSON-RPC errors.
	require.Nil(t, resp.Error)
	var result protocol.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "VALIDATION_ERROR")
	assert.Contains(t, result.Content[0].Text, "Suggestion:")
}

func TestServer_ToolsCall_SchemaRejectsBadArguments(t *testing.T) {
	s := newTestServer(t, nil)

	// message is required but missing.
	resp := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"echo","arguments":{}}}`)

	require.Nil(t, resp.Error)
	var result protocol.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "message")
}

func TestServer_ToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"nope","arguments":{}}}`)

	require.Nil(t, resp.Error)
	var result protocol.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "unknown tool")
}

func TestServer_MethodNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s, `{"jsonrpc":"2.0","id":7,"method":"no/such/method"}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.MethodNotFound, resp.Error.Code)
}

func TestServer_ParseError(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s, `{this is not json`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.ParseError, resp.Error.Code)
}

func TestServer_InvalidVersion(t *testing.T) {
	s := newTestServer(t, nil)

	resp := roundTrip(t, s, `{"jsonrpc":"1.0","id":8,"method":"ping"}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.InvalidRequest, resp.Error.Code)
}

func TestServer_NotificationsProduceNoResponse(t *testing.T) {
	s := newTestServer(t, nil)

	respBytes, err := s.HandleMessage(context.Background(),
		[]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))

	require.NoError(t, err)
	assert.Nil(t, respBytes)
}

func TestRegistryProvider_RecordsInvocations(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	s := newTestServer(t, store)

	roundTrip(t, s,
		`{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hi"}}}`)
	roundTrip(t, s,
		`{"jsonrpc":"2.0","id":10,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hi","fail":true}}}`)

	recent, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	var successes, failures int
	for _, inv := range recent {
		assert.Equal(t, "echo", inv.Tool)
		assert.NotEmpty(t, inv.ID)
		if inv.Success {
			successes++
		} else {
			failures++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
}
