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
package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPipeline = `
pipeline:
  transforms:
    - name: ReadData
      type: ReadFromBigQuery
      config:
        table: "my-project:my_dataset.my_table"
    - name: FilterAdults
      type: Filter
      input: ReadData
      config:
        condition: "age > 18"
    - name: WriteResults
      type: WriteToBigQuery
      input: FilterAdults
      config:
        table: "my-project:my_dataset.output"
`

func TestValidateContent_ValidPipeline(t *testing.T) {
	result := ValidateContent(validPipeline)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateContent_ValidIffNoErrors(t *testing.T) {
	docs := []string{
		validPipeline,
		"not yaml: [unclosed",
		"pipeline:\n  transforms:\n    - type: NoSuchTransform\n",
		"transforms:\n  - type: Filter\n",
	}
	for _, doc := range docs {
		result := ValidateContent(doc)
		assert.Equal(t, len(result.Errors) == 0, result.Valid)
	}
}

func TestValidateContent_SyntaxError(t *testing.T) {
	result := ValidateContent("pipeline:\n  transforms:\n    - type: Filter\n   bad_indent: true\n")

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "yaml syntax error")
}

func TestValidateContent_NonMappingRoot(t *testing.T) {
	result := ValidateContent("- just\n- a\n- list\n")

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "must be a YAML mapping")
}

func TestValidateContent_MissingTransformsKey(t *testing.T) {
	result := ValidateContent("options:\n  streaming: true\n")

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "'pipeline' or 'transforms' key")
}

func TestValidateContent_TopLevelTransforms(t *testing.T) {
	content := `
transforms:
  - name: Source
    type: ReadFromText
    config:
      path: "gs://bucket/in.txt"
  - name: Sink
    type: WriteToText
    input: Source
    config:
      path: "gs://bucket/out"
`
	result := ValidateContent(content)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateContent_UnknownType(t *testing.T) {
	content := `
pipeline:
  transforms:
    - name: Mystery
      type: FrobnicateRows
`
	result := ValidateContent(content)

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Mystery")
	assert.Contains(t, result.Errors[0], "FrobnicateRows")
}

func TestValidateContent_CaseSensitiveType(t *testing.T) {
	result := ValidateContent("transforms:\n  - type: filter\n")

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], `"filter"`)
}

func TestValidateContent_MissingType(t *testing.T) {
	result := ValidateContent("transforms:\n  - name: Nameless\n    config: {}\n")

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "missing required 'type' field")
}

func TestValidateContent_BigQueryTableOrQueryWarning(t *testing.T) {
	content := `
pipeline:
  transforms:
    - name: A
      type: ReadFromBigQuery
      config:
        use_standard_sql: true
`
	result := ValidateContent(content)

	// Missing table/query degrades to a warning; the document stays valid.
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "step A should specify either 'table' or 'query'", result.Warnings[0])
}

func TestValidateContent_TableOrQuerySatisfied(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"table", `table: "p:d.t"`},
		{"query", `query: "SELECT 1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "transforms:\n  - name: A\n    type: ReadFromBigQuery\n    config:\n      " + tt.config + "\n"
			result := ValidateContent(content)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestValidateContent_UndefinedInputReference(t *testing.T) {
	content := `
transforms:
  - name: Sink
    type: WriteToText
    input: NoSuchStep
    config:
      path: "gs://bucket/out"
`
	result := ValidateContent(content)

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "undefined input reference")
	assert.Contains(t, result.Errors[0], "NoSuchStep")
}

func TestValidateContent_ForwardReferenceRejected(t *testing.T) {
	content := `
transforms:
  - name: First
    type: Filter
    input: Second
    config:
      condition: "x > 0"
  - name: Second
    type: ReadFromText
    config:
      path: "gs://bucket/in.txt"
`
	result := ValidateContent(content)

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], `undefined input reference "Second"`)
}

func TestValidateContent_DuplicateStepName(t *testing.T) {
	content := `
transforms:
  - name: X
    type: ReadFromText
    config:
      path: "gs://bucket/in.txt"
  - name: X
    type: WriteToText
    input: X
    config:
      path: "gs://bucket/out"
`
	result := ValidateContent(content)

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `duplicate step name "X"`, result.Errors[0])
}

func TestValidateContent_ErrorsInDocumentOrder(t *testing.T) {
	content := `
transforms:
  - name: A
    type: Bogus
  - name: B
    type: WriteToText
    input: Missing
    config:
      path: "gs://bucket/out"
`
	result := ValidateContent(content)

	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "A")
	assert.Contains(t, result.Errors[1], "B")
}

func TestValidateContent_Recommendations(t *testing.T) {
	result := ValidateContent("transforms:\n  - type: ReadFromText\n    config:\n      path: x\n")

	assert.True(t, result.Valid)
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "descriptive name")
}

func TestValidationResult_Format(t *testing.T) {
	result := ValidationResult{
		Valid:    false,
		Errors:   []string{"step A: unknown transform type \"Bogus\""},
		Warnings: []string{"step B should specify either 'table' or 'query'"},
	}
	report := result.Format()

	assert.Contains(t, report, "validation failed")
	assert.Contains(t, report, "Errors (1)")
	assert.Contains(t, report, "Warnings (1)")
}

func TestParsePipeline(t *testing.T) {
	p, err := ParsePipeline(validPipeline)

	require.NoError(t, err)
	require.Len(t, p.Transforms, 3)
	assert.Equal(t, "ReadData", p.Transforms[0].Name)
	assert.Equal(t, "FilterAdults", p.Transforms[1].Input)
}

func TestParsePipeline_BadYAML(t *testing.T) {
	_, err := ParsePipeline("{{not yaml")

	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
