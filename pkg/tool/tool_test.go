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
package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct{ name string }

func (s stubTool) Name() string             { return s.name }
func (s stubTool) Description() string      { return "stub" }
func (s stubTool) InputSchema() *JSONSchema { return NewObjectSchema("stub", nil, nil) }
func (s stubTool) Execute(ctx context.Context, params map[string]interface{}) (*Result, error) {
	return TextResult("ok", 0), nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{name: "b"})
	r.Register(stubTool{name: "a"})
	r.Register(stubTool{name: "c"})

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{"a", "b", "c"}, r.List())

	got, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", got.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)

	tools := r.ListTools()
	require.Len(t, tools, 3)
	assert.Equal(t, "a", tools[0].Name())
}

func TestRegistry_ReplaceOnSameName(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{name: "x"})
	r.Register(stubTool{name: "x"})
	assert.Equal(t, 1, r.Count())
}

func TestJSONSchema_ToMap(t *testing.T) {
	schema := NewObjectSchema("params",
		map[string]*JSONSchema{
			"status": NewStringSchema("filter").WithEnum("active", "all").WithDefault("active"),
			"limit":  NewIntegerSchema("max results"),
		},
		[]string{"status"})

	m, err := schema.ToMap()
	require.NoError(t, err)
	assert.Equal(t, "object", m["type"])

	props := m["properties"].(map[string]interface{})
	status := props["status"].(map[string]interface{})
	assert.Equal(t, "active", status["default"])
	assert.Len(t, status["enum"], 2)
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"name":    "wordcount",
		"limit":   float64(10), // JSON numbers decode as float64
		"verbose": true,
		"tags":    []interface{}{"a", "b", 3},
	}

	v, ok := StringParam(params, "name")
	assert.True(t, ok)
	assert.Equal(t, "wordcount", v)

	_, ok = StringParam(params, "missing")
	assert.False(t, ok)

	assert.Equal(t, "wordcount", StringParamDefault(params, "name", "x"))
	assert.Equal(t, "x", StringParamDefault(params, "missing", "x"))
	assert.Equal(t, 10, IntParamDefault(params, "limit", 1))
	assert.Equal(t, 1, IntParamDefault(params, "missing", 1))
	assert.True(t, BoolParamDefault(params, "verbose", false))
	assert.False(t, BoolParamDefault(params, "missing", false))

	// Non-string items are dropped, not coerced.
	assert.Equal(t, []string{"a", "b"}, StringSliceParam(params, "tags"))
	assert.Nil(t, StringSliceParam(params, "missing"))
}

func TestErrorResult(t *testing.T) {
	r := ErrorResult(CodeNotFound, "job not found", "check the job ID", 12)
	assert.False(t, r.Success)
	require.NotNil(t, r.Error)
	assert.Equal(t, CodeNotFound, r.Error.Code)
	assert.Equal(t, int64(12), r.ExecutionTimeMs)
}
