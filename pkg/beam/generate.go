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
	"strings"
)

// GenerateRequest describes the pipeline to draft. SourceType and
// SinkType, when set, must be exact connector names and win over any
// keyword inferred from Description.
type GenerateRequest struct {
	Description     string
	SourceType      string
	SinkType        string
	Transformations []string
}

// GenerateResult carries the drafted document plus anything the caller
// must fix by hand before the draft is runnable.
type GenerateResult struct {
	YAML     string
	Notes    []string
	Warnings []string
}

// sourceKeywords maps description keywords to read connectors, checked
// in order so more specific formats win over generic file words.
var sourceKeywords = []struct {
	keyword   string
	connector string
}{
	{"bigquery", "ReadFromBigQuery"},
	{"big query", "ReadFromBigQuery"},
	{"pub/sub", "ReadFromPubSub"},
	{"pubsub", "ReadFromPubSub"},
	{"kafka", "ReadFromKafka"},
	{"spanner", "ReadFromSpanner"},
	{"parquet", "ReadFromParquet"},
	{"csv", "ReadFromCsv"},
	{"json", "ReadFromJson"},
	{"avro", "ReadFromAvro"},
	{"text", "ReadFromText"},
	{"file", "ReadFromText"},
}

var sinkKeywords = []struct {
	keyword   string
	connector string
}{
	{"bigquery", "WriteToBigQuery"},
	{"big query", "WriteToBigQuery"},
	{"pub/sub", "WriteToPubSub"},
	{"pubsub", "WriteToPubSub"},
	{"kafka", "WriteToKafka"},
	{"spanner", "WriteToSpanner"},
	{"parquet", "WriteToParquet"},
	{"csv", "WriteToCsv"},
	{"json", "WriteToJson"},
	{"avro", "WriteToAvro"},
	{"text", "WriteToText"},
	{"file", "WriteToText"},
}

// transformKeywords maps free-text transformation hints to transform
// types. An exact catalog name in the hint always wins over these.
var transformKeywords = []struct {
	keyword string
	typ     string
}{
	{"filter", "Filter"},
	{"sql", "Sql"},
	{"join", "Join"},
	{"aggregate", "Combine"},
	{"group", "Combine"},
	{"combine", "Combine"},
	{"sum", "Combine"},
	{"count", "Combine"},
	{"window", "WindowInto"},
	{"explode", "Explode"},
	{"flatten", "Flatten"},
	{"log", "LogForTesting"},
	{"map", "MapToFields"},
	{"field", "MapToFields"},
	{"transform", "MapToFields"},
	{"enrich", "Enrichment"},
	{"inference", "RunInference"},
	{"predict", "RunInference"},
}

// Generate drafts a pipeline document from a natural-language request.
// The draft always validates structurally; placeholder values mark
// everything the caller still has to fill in.
func Generate(req GenerateRequest) (GenerateResult, error) {
	var result GenerateResult

	source := pickConnector(req.SourceType, req.Description, sourceKeywords, false, "ReadFromText")
	sink := pickConnector(req.SinkType, req.Description, sinkKeywords, true, "WriteToText")
	if req.SourceType != "" && !KnownTransform(req.SourceType) {
		return result, fmt.Errorf("unknown source type %q", req.SourceType)
	}
	if req.SinkType != "" && !KnownTransform(req.SinkType) {
		return result, fmt.Errorf("unknown sink type %q", req.SinkType)
	}

	pipeline := Pipeline{}
	names := make(map[string]int)

	addStep := func(typ, input string, config map[string]interface{}) string {
		name := stepName(typ, names)
		pipeline.Transforms = append(pipeline.Transforms, Transform{
			Name:   name,
			Type:   typ,
			Input:  input,
			Config: config,
		})
		return name
	}

	prev := addStep(source, "", sourceConfig(source))

	for _, hint := range req.Transformations {
		typ, ok := resolveTransform(hint)
		if !ok {
			result.Notes = append(result.Notes, fmt.Sprintf("skipped transformation %q: no matching transform", hint))
			continue
		}
		prev = addStep(typ, prev, transformConfig(typ))
	}

	addStep(sink, prev, sinkConfig(sink))

	yamlText, err := pipeline.MarshalYAML()
	if err != nil {
		return result, err
	}
	result.YAML = yamlText
	result.Notes = append(result.Notes, "replace placeholder values (your-project, gs://your-bucket) before running")

	// The draft must round-trip through the validator cleanly; any
	// advisory findings travel back as warnings.
	check := ValidateContent(yamlText)
	if !check.Valid {
		return result, fmt.Errorf("generated pipeline failed validation: %s", strings.Join(check.Errors, "; "))
	}
	result.Warnings = append(result.Warnings, check.Warnings...)

	return result, nil
}

// pickConnector resolves the connector for one end of the pipeline:
// explicit type, then description keyword, then the text fallback.
// A description like "read from pubsub and load into bigquery" names
// both ends, so position decides: the earliest keyword is the source
// and the latest is the sink.
func pickConnector(explicit, description string, keywords []struct {
	keyword   string
	connector string
}, pickLast bool, fallback string) string {
	if explicit != "" {
		return explicit
	}

	lower := strings.ToLower(description)
	best := fallback
	bestPos := -1
	for _, k := range keywords {
		var pos int
		if pickLast {
			pos = strings.LastIndex(lower, k.keyword)
		} else {
			pos = strings.Index(lower, k.keyword)
		}
		if pos < 0 {
			continue
		}
		if bestPos == -1 ||
			(pickLast && pos > bestPos) ||
			(!pickLast && pos < bestPos) {
			best = k.connector
			bestPos = pos
		}
	}
	return best
}

// resolveTransform maps one transformation hint to a catalog type.
func resolveTransform(hint string) (string, bool) {
	trimmed := strings.TrimSpace(hint)
	if KnownTransform(trimmed) {
		return trimmed, true
	}
	lower := strings.ToLower(trimmed)
	for _, k := range transformKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.typ, true
		}
	}
	return "", false
}

// stepName derives a deterministic, unique step name from the type.
// First use of a type keeps the bare type name; repeats get a counter.
func stepName(typ string, seen map[string]int) string {
	seen[typ]++
	if seen[typ] == 1 {
		return typ
	}
	return fmt.Sprintf("%s%d", typ, seen[typ])
}

func sourceConfig(connector string) map[string]interface{} {
	switch connector {
	case "ReadFromBigQuery":
		return map[string]interface{}{"table": "your-project:your_dataset.your_table"}
	case "ReadFromPubSub":
		return map[string]interface{}{"subscription": "projects/your-project/subscriptions/your-subscription"}
	case "ReadFromKafka":
		return map[string]interface{}{
			"topic":            "your-topic",
			"bootstrap_servers": "your-broker:9092",
		}
	case "ReadFromSpanner":
		return map[string]interface{}{
			"instance_id": "your-instance",
			"database_id": "your-database",
			"table":       "your_table",
		}
	case "ReadFromCsv":
		return map[string]interface{}{"path": "gs://your-bucket/input.csv"}
	case "ReadFromJson":
		return map[string]interface{}{"path": "gs://your-bucket/input.json"}
	case "ReadFromParquet":
		return map[string]interface{}{"path": "gs://your-bucket/input.parquet"}
	case "ReadFromAvro":
		return map[string]interface{}{"path": "gs://your-bucket/input.avro"}
	default:
		return map[string]interface{}{"path": "gs://your-bucket/input.txt"}
	}
}

func sinkConfig(connector string) map[string]interface{} {
	switch connector {
	case "WriteToBigQuery":
		return map[string]interface{}{
			"table":              "your-project:your_dataset.output_table",
			"create_disposition": "CREATE_IF_NEEDED",
			"write_disposition":  "WRITE_APPEND",
		}
	case "WriteToPubSub":
		return map[string]interface{}{"topic": "projects/your-project/topics/your-topic"}
	case "WriteToKafka":
		return map[string]interface{}{
			"topic":            "your-topic",
			"bootstrap_servers": "your-broker:9092",
		}
	case "WriteToSpanner":
		return map[string]interface{}{
			"instance_id": "your-instance",
			"database_id": "your-database",
			"table":       "your_table",
		}
	case "WriteToCsv":
		return map[string]interface{}{"path": "gs://your-bucket/output.csv"}
	case "WriteToJson":
		return map[string]interface{}{"path": "gs://your-bucket/output.json"}
	case "WriteToParquet":
		return map[string]interface{}{"path": "gs://your-bucket/output.parquet"}
	case "WriteToAvro":
		return map[string]interface{}{"path": "gs://your-bucket/output.avro"}
	default:
		return map[string]interface{}{"path": "gs://your-bucket/output.txt"}
	}
}

func transformConfig(typ string) map[string]interface{} {
	switch typ {
	case "Filter":
		return map[string]interface{}{
			"condition": "YOUR_FILTER_CONDITION",
			"language":  "python",
		}
	case "MapToFields":
		return map[string]interface{}{
			"language": "python",
			"fields": map[string]interface{}{
				"your_field": "YOUR_EXPRESSION",
			},
		}
	case "Combine":
		return map[string]interface{}{
			"group_by": []interface{}{"your_key_field"},
			"combine": map[string]interface{}{
				"total": map[string]interface{}{"sum": "your_value_field"},
			},
		}
	case "Sql":
		return map[string]interface{}{"query": "SELECT * FROM PCOLLECTION"}
	case "LogForTesting":
		return map[string]interface{}{"level": "INFO"}
	case "WindowInto":
		return map[string]interface{}{"windowing": map[string]interface{}{"type": "fixed", "size": "60s"}}
	default:
		return nil
	}
}
