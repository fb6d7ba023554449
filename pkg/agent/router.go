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
package agent

import "strings"

// jobKeywords and pipelineKeywords drive coordinator routing. Scoring
// is a simple hit count; the pipeline persona wins ties since pipeline
// questions are the common case.
var jobKeywords = []string{
	"job", "jobs", "status", "running", "failed", "cancel", "drain",
	"logs", "log", "stuck", "monitor", "submitted", "launch",
}

var pipelineKeywords = []string{
	"pipeline", "yaml", "transform", "connector", "schema", "validate",
	"generate", "create", "write", "filter", "bigquery", "pubsub",
	"read", "sql", "combine",
}

// Route picks the persona for a user request.
func Route(query string) Persona {
	lower := strings.ToLower(query)

	jobScore := scoreKeywords(lower, jobKeywords)
	pipelineScore := scoreKeywords(lower, pipelineKeywords)

	if jobScore > pipelineScore {
		return JobsPersona
	}
	return PipelinePersona
}

func scoreKeywords(text string, keywords []string) int {
	score := 0
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '_' || r == '-' || r == '/')
	}) {
		for _, kw := range keywords {
			if word == kw {
				score++
				break
			}
		}
	}
	return score
}
