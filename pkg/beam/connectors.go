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
	"fmt"
	"sort"
)

// Param describes one configuration parameter of a connector.
type Param struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// ConnectorSchema is the static, read-only schema entry for one IO
// connector: what it emits or consumes plus its configuration surface.
type ConnectorSchema struct {
	Name          string
	OutputSchema  string
	InputSchema   string
	ExampleOutput string
	ExampleInput  string
	Params        []Param
	Tips          []string

	// RequiresTableOrQuery marks connectors whose config must carry
	// either a `table` or a `query` key. The validator downgrades a
	// miss to a warning rather than an error.
	RequiresTableOrQuery bool
}

var bigQueryTips = []string{
	"Ensure your Google Cloud project has the BigQuery API enabled",
	"Use fully qualified table names (project:dataset.table)",
	"Consider selected_fields on large tables to reduce scan cost",
}

var pubSubTips = []string{
	"Ensure the Pub/Sub API is enabled in your Google Cloud project",
	"Read from subscriptions rather than topics to guarantee delivery",
	"Set id_label when exactly-once processing matters",
}

var textTips = []string{
	"Supports local paths and cloud storage (gs://, s3://)",
	"Use glob patterns to read multiple files",
}

var csvTips = []string{
	"The schema is inferred from the first rows unless given explicitly",
	"Provide an explicit schema for better type control",
}

// connectorSchemas is keyed by exact connector name. Loaded once,
// never mutated.
var connectorSchemas = map[string]ConnectorSchema{
	"ReadFromBigQuery": {
		Name:                 "ReadFromBigQuery",
		OutputSchema:         "Depends on the BigQuery table schema - inferred from table metadata",
		ExampleOutput:        "Row(id: int64, name: string, timestamp: timestamp, amount: float64)",
		RequiresTableOrQuery: true,
		Params: []Param{
			{Name: "table", Type: "string", Description: "Table reference (project:dataset.table); required if query not given"},
			{Name: "query", Type: "string", Description: "SQL query to execute; required if table not given"},
			{Name: "use_standard_sql", Type: "boolean", Description: "Use standard SQL syntax (default: true)"},
			{Name: "selected_fields", Type: "array[string]", Description: "Specific fields to read"},
			{Name: "row_restriction", Type: "string", Description: "WHERE clause for server-side filtering"},
		},
		Tips: bigQueryTips,
	},
	"WriteToBigQuery": {
		Name:                 "WriteToBigQuery",
		InputSchema:          "Beam Row with fields matching the target table schema",
		ExampleInput:         "Row(id: int64, name: string, timestamp: timestamp, amount: float64)",
		RequiresTableOrQuery: true,
		Params: []Param{
			{Name: "table", Type: "string", Required: true, Description: "Target table reference (project:dataset.table)"},
			{Name: "create_disposition", Type: "string", Description: "CREATE_IF_NEEDED or CREATE_NEVER"},
			{Name: "write_disposition", Type: "string", Description: "WRITE_TRUNCATE, WRITE_APPEND, or WRITE_EMPTY"},
			{Name: "schema", Type: "array[object]", Description: "Table schema when creating a new table"},
			{Name: "clustering_fields", Type: "array[string]", Description: "Fields for table clustering"},
		},
		Tips: bigQueryTips,
	},
	"ReadFromText": {
		Name:          "ReadFromText",
		OutputSchema:  "Row(line: string) - each input line as a string field",
		ExampleOutput: "Row(line: 'sample text line')",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Input file path or glob pattern"},
			{Name: "compression_type", Type: "string", Description: "AUTO, UNCOMPRESSED, GZIP, or BZIP2"},
		},
		Tips: textTips,
	},
	"WriteToText": {
		Name:         "WriteToText",
		InputSchema:  "Any Beam type - converted to its string representation",
		ExampleInput: "Row(message: 'Hello World') -> 'Row(message=Hello World)'",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Output location"},
			{Name: "file_name_suffix", Type: "string", Description: "Suffix for output files"},
			{Name: "num_shards", Type: "integer", Description: "Number of output shards"},
		},
		Tips: textTips,
	},
	"ReadFromCsv": {
		Name:          "ReadFromCsv",
		OutputSchema:  "Row with fields based on CSV headers and inferred types",
		ExampleOutput: "Row(id: int64, name: string, age: int64, salary: float64)",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Input CSV location"},
			{Name: "delimiter", Type: "string", Description: "Field separator (default: ',')"},
			{Name: "header", Type: "boolean", Description: "Whether the first row contains headers (default: true)"},
			{Name: "schema", Type: "array[object]", Description: "Explicit schema definition"},
		},
		Tips: csvTips,
	},
	"WriteToCsv": {
		Name:         "WriteToCsv",
		InputSchema:  "Beam Row with named fields",
		ExampleInput: "Row(id: int64, name: string, age: int64)",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Output CSV location"},
			{Name: "delimiter", Type: "string", Description: "Field separator (default: ',')"},
			{Name: "header", Type: "boolean", Description: "Include a header row (default: true)"},
		},
		Tips: csvTips,
	},
	"ReadFromPubSub": {
		Name:          "ReadFromPubSub",
		OutputSchema:  "Row(data: bytes, attributes: map[string, string], timestamp: timestamp)",
		ExampleOutput: "Row(data: b'message content', attributes: {'key': 'value'}, timestamp: 2023-01-01T00:00:00Z)",
		Params: []Param{
			{Name: "topic", Type: "string", Description: "Topic (projects/project/topics/topic)"},
			{Name: "subscription", Type: "string", Description: "Subscription (projects/project/subscriptions/sub)"},
			{Name: "id_label", Type: "string", Description: "Attribute used for deduplication"},
			{Name: "timestamp_attribute", Type: "string", Description: "Attribute holding the event timestamp"},
		},
		Tips: pubSubTips,
	},
	"WriteToPubSub": {
		Name:         "WriteToPubSub",
		InputSchema:  "Row with a 'data' field (bytes) and optional 'attributes' map",
		ExampleInput: "Row(data: b'message', attributes: {'source': 'pipeline'})",
		Params: []Param{
			{Name: "topic", Type: "string", Required: true, Description: "Target topic (projects/project/topics/topic)"},
			{Name: "id_label", Type: "string", Description: "Attribute used for deduplication"},
			{Name: "timestamp_attribute", Type: "string", Description: "Attribute holding the event timestamp"},
		},
		Tips: pubSubTips,
	},
	"ReadFromParquet": {
		Name:          "ReadFromParquet",
		OutputSchema:  "Row with fields based on the Parquet schema",
		ExampleOutput: "Row(id: int64, name: string, nested: Row(field1: string, field2: int64))",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Input Parquet location"},
			{Name: "columns", Type: "array[string]", Description: "Specific columns to read"},
		},
	},
	"WriteToParquet": {
		Name:         "WriteToParquet",
		InputSchema:  "Beam Row with typed fields",
		ExampleInput: "Row(id: int64, name: string, data: array[float64])",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Output Parquet location"},
			{Name: "file_name_suffix", Type: "string", Description: "Suffix for output files"},
			{Name: "num_shards", Type: "integer", Description: "Number of output shards"},
		},
	},
	"ReadFromJson": {
		Name:          "ReadFromJson",
		OutputSchema:  "Row with fields based on the JSON structure",
		ExampleOutput: "Row(id: int64, data: Row(name: string, values: array[int64]))",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Input JSON location"},
			{Name: "schema", Type: "object", Description: "Explicit schema for JSON parsing"},
		},
	},
	"WriteToJson": {
		Name:         "WriteToJson",
		InputSchema:  "Beam Row - serialized to JSON",
		ExampleInput: "Row(id: 123, name: 'example', data: [1, 2, 3])",
		Params: []Param{
			{Name: "path", Type: "string", Required: true, Description: "Output JSON location"},
			{Name: "file_name_suffix", Type: "string", Description: "Suffix for output files"},
		},
	},
}

// LookupConnectorSchema returns the schema entry for a connector.
// A miss is not an error; the second return is false.
func LookupConnectorSchema(name string) (ConnectorSchema, bool) {
	s, ok := connectorSchemas[name]
	return s, ok
}

// ConnectorNames returns the sorted names of connectors that have
// schema entries.
func ConnectorNames() []string {
	names := make([]string, 0, len(connectorSchemas))
	for name := range connectorSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiresTableOrQuery reports whether the given transform type must
// carry either a `table` or `query` config key.
func RequiresTableOrQuery(transformType string) bool {
	s, ok := connectorSchemas[transformType]
	return ok && s.RequiresTableOrQuery
}

// FormatConnectorSchema renders a connector schema entry as a report.
func FormatConnectorSchema(s ConnectorSchema) string {
	out := fmt.Sprintf("Schema information for %s\n", s.Name)

	if s.OutputSchema != "" {
		out += fmt.Sprintf("\nOutput schema:\n  %s\n", s.OutputSchema)
		if s.ExampleOutput != "" {
			out += fmt.Sprintf("  Example: %s\n", s.ExampleOutput)
		}
	}
	if s.InputSchema != "" {
		out += fmt.Sprintf("\nInput schema:\n  %s\n", s.InputSchema)
		if s.ExampleInput != "" {
			out += fmt.Sprintf("  Example: %s\n", s.ExampleInput)
		}
	}

	out += "\nConfiguration parameters:\n"
	for _, p := range s.Params {
		req := "optional"
		if p.Required {
			req = "required"
		}
		out += fmt.Sprintf("  - %s (%s, %s): %s\n", p.Name, p.Type, req, p.Description)
	}

	if len(s.Tips) > 0 {
		out += "\nUsage tips:\n"
		for _, tip := range s.Tips {
			out += "  - " + tip + "\n"
		}
	}
	return out
}
