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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflow-labs/beamline/pkg/tool"
)

func TestTransformsListTool(t *testing.T) {
	lt := NewTransformsListTool()

	result, err := lt.Execute(context.Background(), map[string]interface{}{"category": "ml"})

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 4, result.Metadata["count"])
	assert.Contains(t, result.Data.(string), "RunInference")
	assert.NotContains(t, result.Data.(string), "ReadFromBigQuery")
}

func TestTransformsListTool_UnknownCategoryListsAll(t *testing.T) {
	lt := NewTransformsListTool()

	result, err := lt.Execute(context.Background(), map[string]interface{}{"category": "whatever"})

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "all", result.Metadata["category"])
	assert.Contains(t, result.Data.(string), "Filter")
	assert.Contains(t, result.Data.(string), "ReadFromBigQuery")
}

func TestTransformDetailsTool(t *testing.T) {
	dt := NewTransformDetailsTool()

	result, err := dt.Execute(context.Background(), map[string]interface{}{"transform": "Filter"})

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.Data.(string), "condition")
	assert.Contains(t, result.Data.(string), "```yaml")
}

func TestTransformDetailsTool_KnownButUndocumented(t *testing.T) {
	dt := NewTransformDetailsTool()

	result, err := dt.Execute(context.Background(), map[string]interface{}{"transform": "ReadFromIceberg"})

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.Data.(string), "No detailed documentation")
}

func TestTransformDetailsTool_Unknown(t *testing.T) {
	dt := NewTransformDetailsTool()

	result, err := dt.Execute(context.Background(), map[string]interface{}{"transform": "Nonsense"})

	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, tool.CodeNotFound, result.Error.Code)
}

func TestConnectorSchemaTool(t *testing.T) {
	ct := NewConnectorSchemaTool()

	result, err := ct.Execute(context.Background(), map[string]interface{}{"connector": "ReadFromPubSub"})

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, result.Data.(string), "subscription")
}

func TestConnectorSchemaTool_UnknownSuggestsNames(t *testing.T) {
	ct := NewConnectorSchemaTool()

	result, err := ct.Execute(context.Background(), map[string]interface{}{"connector": "ReadFromNowhere"})

	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, tool.CodeNotFound, result.Error.Code)
	assert.Contains(t, result.Error.Suggestion, "ReadFromBigQuery")
}

func TestValidatePipelineTool_Valid(t *testing.T) {
	vt := NewValidatePipelineTool()

	result, err := vt.Execute(context.Background(), map[string]interface{}{
		"yaml_content": "pipeline:\n  transforms:\n    - name: S\n      type: ReadFromText\n      config:\n        path: x\n",
	})

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, true, result.Metadata["valid"])
}

func TestValidatePipelineTool_InvalidIsStillSuccess(t *testing.T) {
	vt := NewValidatePipelineTool()

	result, err := vt.Execute(context.Background(), map[string]interface{}{
		"yaml_content": "pipeline:\n  transforms:\n    - type: Bogus\n",
	})

	require.NoError(t, err)

	// A pipeline that fails validation is a finding, not a tool error.
	require.True(t, result.Success)
	assert.Equal(t, false, result.Metadata["valid"])
	errs := result.Metadata["errors"].([]string)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Bogus")
}

func TestValidatePipelineTool_MissingContent(t *testing.T) {
	vt := NewValidatePipelineTool()

	result, err := vt.Execute(context.Background(), map[string]interface{}{})

	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, tool.CodeInvalidParams, result.Error.Code)
}

func TestGeneratePipelineTool(t *testing.T) {
	gt := NewGeneratePipelineTool()

	result, err := gt.Execute(context.Background(), map[string]interface{}{
		"description":     "read from bigquery, filter, write to pubsub",
		"transformations": []interface{}{"filter rows"},
	})

	require.NoError(t, err)
	require.True(t, result.Success)

	yamlText := result.Metadata["yaml"].(string)
	assert.Contains(t, yamlText, "ReadFromBigQuery")
	assert.Contains(t, yamlText, "Filter")
	assert.Contains(t, yamlText, "WriteToPubSub")
}

func TestGeneratePipelineTool_UnknownSourceType(t *testing.T) {
	gt := NewGeneratePipelineTool()

	result, err := gt.Execute(context.Background(), map[string]interface{}{
		"description": "anything",
		"source_type": "ReadFromNowhere",
	})

	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, tool.CodeInvalidParams, result.Error.Code)
}
