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
// Package beam implements the Beam YAML pipeline document model: static
// reference tables for transforms and IO connectors, a structural
// validator, and a template-based generator.
package beam

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Transform is one named unit of work in a pipeline document.
// Input, when present, must reference an earlier transform's name.
type Transform struct {
	Name   string                 `yaml:"name,omitempty" json:"name,omitempty"`
	Type   string                 `yaml:"type" json:"type"`
	Input  string                 `yaml:"input,omitempty" json:"input,omitempty"`
	Config map[string]interface{} `yaml:"config,omitempty" json:"config,omitempty"`
}

// Pipeline is an ordered sequence of transforms plus optional top-level
// pipeline options. It lives only for the duration of a single
// validate/generate/submit exchange.
type Pipeline struct {
	Transforms []Transform            `yaml:"transforms" json:"transforms"`
	Options    map[string]interface{} `yaml:"options,omitempty" json:"options,omitempty"`
}

// document is the YAML wire shape: a `pipeline` root holding the
// transform sequence.
type document struct {
	Pipeline Pipeline `yaml:"pipeline"`
}

// ParseError reports YAML text that could not be parsed at all,
// as opposed to a well-formed document that fails validation.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("yaml parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalYAML renders a pipeline to its YAML wire form.
func (p *Pipeline) MarshalYAML() (string, error) {
	doc := document{Pipeline: *p}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("marshal pipeline: %w", err)
	}
	return string(out), nil
}

// ValidationResult is the outcome of validating one pipeline document.
// Valid is false if and only if Errors is non-empty; warnings and
// recommendations never affect validity.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Errors          []string `json:"errors,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Format renders the result as a human-readable report suitable for
// returning to the calling agent.
func (r *ValidationResult) Format() string {
	if r.Valid && !r.HasWarnings() && len(r.Recommendations) == 0 {
		return "Pipeline validation passed - no issues detected"
	}

	var out string
	if r.Valid {
		out = "Pipeline validation passed\n"
	} else {
		out = "Pipeline validation failed\n"
	}

	if len(r.Errors) > 0 {
		out += fmt.Sprintf("\nErrors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			out += "  - " + e + "\n"
		}
	}
	if len(r.Warnings) > 0 {
		out += fmt.Sprintf("\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			out += "  - " + w + "\n"
		}
	}
	if len(r.Recommendations) > 0 {
		out += fmt.Sprintf("\nRecommendations (%d):\n", len(r.Recommendations))
		for _, rec := range r.Recommendations {
			out += "  - " + rec + "\n"
		}
	}
	return out
}
