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

import "fmt"

// TransformDoc is the static documentation entry for one transform.
type TransformDoc struct {
	Name        string
	Description string
	Params      []Param
	Example     string
}

// transformDocs holds usage documentation for the transforms that have
// local entries. Transforms in the catalog but absent here exist; they
// just have no cached documentation.
var transformDocs = map[string]TransformDoc{
	"Filter": {
		Name:        "Filter",
		Description: "Filters elements based on a condition",
		Params: []Param{
			{Name: "condition", Type: "string", Required: true, Description: "Expression or callable to filter elements"},
			{Name: "language", Type: "string", Description: "Language for the condition (python, javascript)"},
		},
		Example: `type: Filter
input: InputData
config:
  condition: "element.age > 18"
  language: python`,
	},
	"LogForTesting": {
		Name:        "LogForTesting",
		Description: "Logs elements for debugging and testing purposes",
		Params: []Param{
			{Name: "level", Type: "string", Description: "Log level (INFO, DEBUG, WARN, ERROR)"},
			{Name: "prefix", Type: "string", Description: "Optional prefix for log messages"},
		},
		Example: `type: LogForTesting
input: InputData
config:
  level: "INFO"
  prefix: "Processing: "`,
	},
	"Combine": {
		Name:        "Combine",
		Description: "Groups and combines records sharing common fields",
		Params: []Param{
			{Name: "group_by", Type: "array[string]", Required: true, Description: "Fields to group by"},
			{Name: "combine", Type: "object", Required: true, Description: "Aggregation functions (sum, max, min, count)"},
		},
		Example: `type: Combine
input: InputData
config:
  group_by: ["category"]
  combine:
    total_sales:
      sum: "sales_amount"
    count:
      count: "*"`,
	},
	"MapToFields": {
		Name:        "MapToFields",
		Description: "Projects and derives new fields from each element",
		Params: []Param{
			{Name: "fields", Type: "object", Required: true, Description: "Output field names mapped to expressions"},
			{Name: "language", Type: "string", Description: "Language for expressions (python, sql)"},
			{Name: "append", Type: "boolean", Description: "Keep input fields alongside the mapped ones"},
		},
		Example: `type: MapToFields
input: InputData
config:
  language: python
  fields:
    full_name: "first + ' ' + last"`,
	},
	"ReadFromBigQuery": {
		Name:        "ReadFromBigQuery",
		Description: "Reads data from Google BigQuery",
		Params: []Param{
			{Name: "table", Type: "string", Description: "Table reference (project:dataset.table)"},
			{Name: "query", Type: "string", Description: "SQL query to execute (alternative to table)"},
			{Name: "use_standard_sql", Type: "boolean", Description: "Use standard SQL (default: true)"},
		},
		Example: `type: ReadFromBigQuery
config:
  table: "my-project:my_dataset.my_table"`,
	},
	"WriteToBigQuery": {
		Name:        "WriteToBigQuery",
		Description: "Writes data to Google BigQuery",
		Params: []Param{
			{Name: "table", Type: "string", Required: true, Description: "Table reference (project:dataset.table)"},
			{Name: "create_disposition", Type: "string", Description: "CREATE_IF_NEEDED or CREATE_NEVER"},
			{Name: "write_disposition", Type: "string", Description: "WRITE_TRUNCATE, WRITE_APPEND, or WRITE_EMPTY"},
		},
		Example: `type: WriteToBigQuery
input: ProcessedData
config:
  table: "my-project:my_dataset.output_table"
  create_disposition: "CREATE_IF_NEEDED"
  write_disposition: "WRITE_APPEND"`,
	},
	"Sql": {
		Name:        "Sql",
		Description: "Runs a SQL statement over one or more named inputs",
		Params: []Param{
			{Name: "query", Type: "string", Required: true, Description: "SQL statement; inputs are referenced by step name"},
		},
		Example: `type: Sql
input: InputData
config:
  query: "SELECT category, COUNT(*) AS n FROM InputData GROUP BY category"`,
	},
}

// LookupTransformDoc returns the documentation entry for a transform.
// A miss means no local documentation, not an unknown transform.
func LookupTransformDoc(name string) (TransformDoc, bool) {
	doc, ok := transformDocs[name]
	return doc, ok
}

// FormatTransformDoc renders a documentation entry as a report.
func FormatTransformDoc(doc TransformDoc) string {
	out := fmt.Sprintf("Transform: %s\n\nDescription: %s\n\nConfiguration:\n", doc.Name, doc.Description)
	for _, p := range doc.Params {
		req := "optional"
		if p.Required {
			req = "required"
		}
		out += fmt.Sprintf("  - %s (%s, %s): %s\n", p.Name, p.Type, req, p.Description)
	}
	out += fmt.Sprintf("\nExample:\n```yaml\n%s\n```\n", doc.Example)
	return out
}
