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

	"gopkg.in/yaml.v3"
)

// ValidateContent validates a YAML pipeline document. Messages are
// ordered by step position in the document, then by check order within
// a step. Valid is false exactly when Errors is non-empty; warnings and
// recommendations are advisory.
func ValidateContent(content string) ValidationResult {
	result := ValidationResult{Valid: true}

	var root interface{}
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("yaml syntax error: %v", err))
		return result
	}

	doc, ok := root.(map[string]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, "pipeline must be a YAML mapping")
		return result
	}

	steps, errs := extractTransforms(doc)
	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		result.Valid = false
		return result
	}

	result.Errors, result.Warnings = checkSteps(steps)
	result.Recommendations = recommend(steps)
	result.Valid = len(result.Errors) == 0
	return result
}

// extractTransforms locates the transform sequence under either a
// `pipeline` root or a top-level `transforms` key.
func extractTransforms(doc map[string]interface{}) ([]interface{}, []string) {
	var raw interface{}

	if p, ok := doc["pipeline"]; ok {
		pm, ok := p.(map[string]interface{})
		if !ok {
			return nil, []string{"'pipeline' must be a mapping"}
		}
		raw = pm["transforms"]
	} else if t, ok := doc["transforms"]; ok {
		raw = t
	} else {
		return nil, []string{"pipeline must contain either a 'pipeline' or 'transforms' key"}
	}

	steps, ok := raw.([]interface{})
	if !ok {
		return nil, []string{"'transforms' must be a sequence of steps"}
	}
	return steps, nil
}

// stepLabel names a step for messages: its declared name when present,
// otherwise its 1-based position.
func stepLabel(step map[string]interface{}, index int) string {
	if name, ok := step["name"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("step %d", index+1)
}

// checkSteps runs the per-step checks in order: known type, required
// connector parameters, backward input references, name uniqueness.
func checkSteps(steps []interface{}) (errors, warnings []string) {
	declared := make(map[string]bool)

	for i, raw := range steps {
		step, ok := raw.(map[string]interface{})
		if !ok {
			errors = append(errors, fmt.Sprintf("step %d must be a mapping", i+1))
			continue
		}
		label := stepLabel(step, i)
		name, _ := step["name"].(string)

		// Known transform type (case-sensitive exact match).
		typ, hasType := step["type"].(string)
		if !hasType || typ == "" {
			errors = append(errors, fmt.Sprintf("step %s: missing required 'type' field", label))
		} else if !KnownTransform(typ) {
			errors = append(errors, fmt.Sprintf("step %s: unknown transform type %q", label, typ))
		}

		// Connectors that need a table or query get a warning, not an
		// error, when neither is configured.
		if hasType && RequiresTableOrQuery(typ) {
			config, _ := step["config"].(map[string]interface{})
			if !hasConfigKey(config, "table") && !hasConfigKey(config, "query") {
				warnings = append(warnings, fmt.Sprintf("step %s should specify either 'table' or 'query'", label))
			}
		}

		// Input must reference an earlier step. Forward references and
		// unknown names are both rejected; the document is a DAG built
		// front to back.
		if input, ok := step["input"].(string); ok && input != "" {
			if !declared[input] {
				errors = append(errors, fmt.Sprintf("step %s: undefined input reference %q", label, input))
			}
		}

		if name != "" {
			if declared[name] {
				errors = append(errors, fmt.Sprintf("duplicate step name %q", name))
			}
			declared[name] = true
		}
	}
	return errors, warnings
}

// recommend produces non-blocking suggestions. These never affect
// validity.
func recommend(steps []interface{}) []string {
	var recs []string

	unnamed := false
	hasLogging := false
	for _, raw := range steps {
		step, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if name, _ := step["name"].(string); name == "" {
			unnamed = true
		}
		if typ, _ := step["type"].(string); typ == "LogForTesting" {
			hasLogging = true
		}
	}

	if unnamed {
		recs = append(recs, "give every step a descriptive name to make input references and logs readable")
	}
	if !hasLogging {
		recs = append(recs, "consider a LogForTesting step while developing to surface per-element errors")
	}
	recs = append(recs, "test the pipeline against a small dataset before deploying it as a Dataflow job")
	return recs
}

func hasConfigKey(config map[string]interface{}, key string) bool {
	if config == nil {
		return false
	}
	v, ok := config[key]
	if !ok {
		return false
	}
	s, isString := v.(string)
	return !isString || s != ""
}

// ParsePipeline decodes YAML text into a typed Pipeline. It accepts
// the same two roots the validator does. A syntactically broken
// document yields a *ParseError.
func ParsePipeline(content string) (*Pipeline, error) {
	var doc document
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(doc.Pipeline.Transforms) > 0 {
		return &doc.Pipeline, nil
	}

	var flat Pipeline
	if err := yaml.Unmarshal([]byte(content), &flat); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &flat, nil
}
