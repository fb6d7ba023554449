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
// Package dataflow exposes Google Cloud Dataflow job operations as
// tools: status, listing, error logs, cancel, drain, and submission.
// All of them shell out through a gcloud.Runner and resolve every
// failure into a structured tool result.
package dataflow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dataflow-labs/beamline/pkg/gcloud"
	"github.com/dataflow-labs/beamline/pkg/tool"
)

// DefaultRegion is used when neither the call nor the configuration
// names a region.
const DefaultRegion = "us-central1"

// jobNameRE constrains user-supplied job names the way the Dataflow
// service does.
var jobNameRE = regexp.MustCompile(`^[a-z]([-a-z0-9]{0,61}[a-z0-9])?$`)

// Options carries the per-deployment defaults shared by every Dataflow
// tool.
type Options struct {
	Runner  gcloud.Runner
	Project string
	Region  string
}

func (o Options) region(params map[string]interface{}) string {
	region := tool.StringParamDefault(params, "region", o.Region)
	if region == "" {
		region = DefaultRegion
	}
	return region
}

// project resolves the target project: explicit parameter first, then
// the configured default. An empty result is a configuration error.
func (o Options) project(params map[string]interface{}) (string, bool) {
	p := tool.StringParamDefault(params, "project", o.Project)
	return p, p != ""
}

// JobRecord is the subset of the gcloud job JSON this package reads.
// `describe` populates CurrentState; `list` populates State.
type JobRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	ProjectID    string `json:"projectId"`
	Location     string `json:"location"`
	CreateTime   string `json:"createTime"`
	CreationTime string `json:"creationTime"`
	CurrentState string `json:"currentState"`
	RawState     string `json:"state"`
	StateTime    string `json:"currentStateTime"`
}

// State returns the job state with the JOB_STATE_ prefix stripped,
// preferring the describe-shaped field.
func (j JobRecord) State() string {
	s := j.CurrentState
	if s == "" {
		s = j.RawState
	}
	return strings.TrimPrefix(s, "JOB_STATE_")
}

// Created returns whichever creation timestamp the record carries.
func (j JobRecord) Created() string {
	if j.CreateTime != "" {
		return j.CreateTime
	}
	return j.CreationTime
}

func (j JobRecord) format() string {
	return fmt.Sprintf("Job: %s\n  ID: %s\n  Type: %s\n  State: %s\n  Created: %s\n  Location: %s\n",
		j.Name, j.ID, j.Type, j.State(), j.Created(), j.Location)
}

// ms reports elapsed milliseconds since start.
func ms(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

// missingProject is the shared configuration failure for tools that
// need a project and got none.
func missingProject(start time.Time) *tool.Result {
	return tool.ErrorResult(tool.CodeConfig,
		"no Google Cloud project configured",
		"pass a 'project' parameter or set project in the configuration file",
		ms(start))
}

var notFoundMarkers = []string{
	"does not exist",
	"NOT_FOUND",
	"Could not find",
	"was not found",
}

// runError maps a runner failure onto the tool error taxonomy. The
// returned result always has Success=false; Execute itself stays nil.
func runError(err error, start time.Time) *tool.Result {
	var notInstalled *gcloud.NotInstalledError
	if errors.As(err, &notInstalled) {
		return tool.ErrorResult(tool.CodeConfig, notInstalled.Error(),
			"install the Google Cloud SDK and ensure 'gcloud' is on PATH", ms(start))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		r := tool.ErrorResult(tool.CodeTimeout, err.Error(),
			"retry, or raise GCLOUD_TIMEOUT for slow operations", ms(start))
		r.Error.Retryable = true
		return r
	}

	var exitErr *gcloud.ExitError
	if errors.As(err, &exitErr) {
		for _, marker := range notFoundMarkers {
			if strings.Contains(exitErr.Stderr, marker) {
				return tool.ErrorResult(tool.CodeNotFound, err.Error(),
					"check the job ID and region; jobs are region-scoped", ms(start))
			}
		}
		return tool.ErrorResult(tool.CodeExternalTool, err.Error(),
			"inspect the gcloud stderr output above", ms(start))
	}

	return tool.ErrorResult(tool.CodeExternalTool, err.Error(), "", ms(start))
}
