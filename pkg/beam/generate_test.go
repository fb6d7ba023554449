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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RoundTripsThroughValidator(t *testing.T) {
	tests := []struct {
		name string
		req  GenerateRequest
	}{
		{"defaults", GenerateRequest{Description: "copy some data"}},
		{"bigquery to pubsub", GenerateRequest{
			Description: "read from BigQuery, publish to Pub/Sub",
		}},
		{"explicit types", GenerateRequest{
			Description: "etl job",
			SourceType:  "ReadFromCsv",
			SinkType:    "WriteToParquet",
		}},
		{"with transformations", GenerateRequest{
			Description:     "read csv and write to bigquery",
			Transformations: []string{"filter out nulls", "aggregate by region", "Sql"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.req)
			require.NoError(t, err)

			check := ValidateContent(result.YAML)
			assert.True(t, check.Valid, "generated draft must validate: %v", check.Errors)
		})
	}
}

func TestGenerate_KeywordInference(t *testing.T) {
	result, err := Generate(GenerateRequest{
		Description: "read events from pubsub and load them into bigquery",
	})
	require.NoError(t, err)

	p, err := ParsePipeline(result.YAML)
	require.NoError(t, err)
	require.Len(t, p.Transforms, 2)
	assert.Equal(t, "ReadFromPubSub", p.Transforms[0].Type)
	assert.Equal(t, "WriteToBigQuery", p.Transforms[1].Type)
}

func TestGenerate_ExplicitTypesWinOverKeywords(t *testing.T) {
	result, err := Generate(GenerateRequest{
		Description: "read from bigquery",
		SourceType:  "ReadFromKafka",
	})
	require.NoError(t, err)

	p, err := ParsePipeline(result.YAML)
	require.NoError(t, err)
	assert.Equal(t, "ReadFromKafka", p.Transforms[0].Type)
}

func TestGenerate_UnknownExplicitTypeFails(t *testing.T) {
	_, err := Generate(GenerateRequest{SourceType: "ReadFromNowhere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReadFromNowhere")
}

func TestGenerate_ChainsInputs(t *testing.T) {
	result, err := Generate(GenerateRequest{
		Description:     "text processing",
		Transformations: []string{"Filter", "MapToFields"},
	})
	require.NoError(t, err)

	p, err := ParsePipeline(result.YAML)
	require.NoError(t, err)
	require.Len(t, p.Transforms, 4)

	// Every step after the source consumes its predecessor.
	assert.Empty(t, p.Transforms[0].Input)
	for i := 1; i < len(p.Transforms); i++ {
		assert.Equal(t, p.Transforms[i-1].Name, p.Transforms[i].Input)
	}
}

func TestGenerate_UnresolvableHintBecomesNote(t *testing.T) {
	result, err := Generate(GenerateRequest{
		Description:     "simple copy",
		Transformations: []string{"do something mysterious"},
	})
	require.NoError(t, err)

	p, err := ParsePipeline(result.YAML)
	require.NoError(t, err)
	assert.Len(t, p.Transforms, 2)

	found := false
	for _, note := range result.Notes {
		if strings.Contains(note, "skipped") && strings.Contains(note, "do something mysterious") {
			found = true
		}
	}
	assert.True(t, found, "expected a skip note, got %v", result.Notes)
}

func TestGenerate_DuplicateTransformsGetUniqueNames(t *testing.T) {
	result, err := Generate(GenerateRequest{
		Description:     "double filter",
		Transformations: []string{"Filter", "Filter"},
	})
	require.NoError(t, err)

	p, err := ParsePipeline(result.YAML)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, tr := range p.Transforms {
		assert.False(t, seen[tr.Name], "duplicate step name %q", tr.Name)
		seen[tr.Name] = true
	}
}

func TestGenerate_BigQueryDraftCarriesPlaceholderTable(t *testing.T) {
	result, err := Generate(GenerateRequest{
		Description: "load into bigquery",
		SourceType:  "ReadFromBigQuery",
	})
	require.NoError(t, err)

	// Placeholders keep the draft warning-free on the table/query check.
	assert.Empty(t, result.Warnings)
	assert.Contains(t, result.YAML, "your-project:your_dataset.your_table")
}
