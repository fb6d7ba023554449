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
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataflow-labs/beamline/pkg/beam"
)

var (
	generateSource     string
	generateSink       string
	generateTransforms []string
	generateOutput     string
)

var validateCmd = &cobra.Command{
	Use:   "validate <pipeline.yaml>",
	Short: "Validate a Beam YAML pipeline file",
	Long: `Validate a Beam YAML pipeline without running it: YAML syntax,
transform types, input references, and connector configuration.

Exits non-zero when the pipeline has errors. Warnings and
recommendations do not affect the exit code.

Examples:
  beamline validate pipeline.yaml
`,
	Args: cobra.ExactArgs(1),
	Run:  runValidateCommand,
}

var generateCmd = &cobra.Command{
	Use:   "generate [description...]",
	Short: "Generate a draft Beam YAML pipeline",
	Long: `Generate a draft Beam YAML pipeline from a plain-language
description and optional explicit connector choices. The draft uses
placeholder values (your-project, gs://your-bucket) that must be
replaced before running.

Examples:
  beamline generate "read from pubsub and write to bigquery"
  beamline generate --source ReadFromKafka --sink WriteToBigQuery
  beamline generate --transform Filter --transform MapToFields "clean csv data"
`,
	Run: runGenerateCommand,
}

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "Browse the Beam YAML transform catalog",
}

var transformsListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List known transform types",
	Long: `List the Beam YAML transform catalog, optionally filtered by
category: io, transform, ml, or sql. An unknown category lists
everything.

Examples:
  beamline transforms list
  beamline transforms list io
`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTransformsListCommand,
}

var transformsShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show documentation for one transform type",
	Long: `Show cached documentation for a transform type. Names are
case-sensitive, e.g. MapToFields, not maptofields.

Examples:
  beamline transforms show MapToFields
`,
	Args: cobra.ExactArgs(1),
	Run:  runTransformsShowCommand,
}

var connectorsCmd = &cobra.Command{
	Use:   "connectors",
	Short: "Browse IO connector configuration schemas",
}

var connectorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connectors with cached schemas",
	Run:   runConnectorsListCommand,
}

var connectorsShowCmd = &cobra.Command{
	Use:   "show <connector>",
	Short: "Show one connector's configuration schema",
	Long: `Show the configuration fields of an IO connector.

Examples:
  beamline connectors show ReadFromBigQuery
`,
	Args: cobra.ExactArgs(1),
	Run:  runConnectorsShowCommand,
}

func init() {
	generateCmd.Flags().StringVar(&generateSource, "source", "", "source connector type (e.g. ReadFromPubSub)")
	generateCmd.Flags().StringVar(&generateSink, "sink", "", "sink connector type (e.g. WriteToBigQuery)")
	generateCmd.Flags().StringArrayVar(&generateTransforms, "transform", nil, "intermediate transform, repeatable")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the draft to a file instead of stdout")

	transformsCmd.AddCommand(transformsListCmd)
	transformsCmd.AddCommand(transformsShowCmd)
	connectorsCmd.AddCommand(connectorsListCmd)
	connectorsCmd.AddCommand(connectorsShowCmd)
}

func runValidateCommand(cmd *cobra.Command, args []string) {
	loadConfig()

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read %s: %v\n", args[0], err)
		os.Exit(1)
	}

	check := beam.ValidateContent(string(content))
	fmt.Println(check.Format())
	if !check.Valid {
		os.Exit(1)
	}
}

func runGenerateCommand(cmd *cobra.Command, args []string) {
	loadConfig()

	req := beam.GenerateRequest{
		Description:     strings.Join(args, " "),
		SourceType:      generateSource,
		SinkType:        generateSink,
		Transformations: generateTransforms,
	}
	result, err := beam.Generate(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(result.YAML), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", generateOutput, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote draft pipeline to %s\n", generateOutput)
	} else {
		fmt.Print(result.YAML)
	}

	for _, note := range result.Notes {
		fmt.Fprintf(os.Stderr, "Note: %s\n", note)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
}

func runTransformsListCommand(cmd *cobra.Command, args []string) {
	loadConfig()

	category := beam.CategoryAll
	if len(args) == 1 {
		category = beam.ParseCategory(args[0])
	}

	names := beam.TransformsByCategory(category)
	for _, name := range names {
		cat, _ := beam.TransformCategory(name)
		fmt.Printf("%-22s %s\n", name, cat)
	}
	fmt.Printf("\n%d transform(s)\n", len(names))
}

func runTransformsShowCommand(cmd *cobra.Command, args []string) {
	loadConfig()
	name := args[0]

	if !beam.KnownTransform(name) {
		fmt.Fprintf(os.Stderr, "Error: unknown transform type %q (names are case-sensitive)\n", name)
		os.Exit(1)
	}

	doc, ok := beam.LookupTransformDoc(name)
	if !ok {
		fmt.Printf("No detailed documentation cached for %s.\n", name)
		return
	}
	fmt.Println(beam.FormatTransformDoc(doc))
}

func runConnectorsListCommand(cmd *cobra.Command, args []string) {
	loadConfig()

	for _, name := range beam.ConnectorNames() {
		fmt.Println(name)
	}
}

func runConnectorsShowCommand(cmd *cobra.Command, args []string) {
	loadConfig()
	name := args[0]

	schema, ok := beam.LookupConnectorSchema(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no schema cached for connector %q\n", name)
		fmt.Fprintf(os.Stderr, "Known connectors: %s\n", strings.Join(beam.ConnectorNames(), ", "))
		os.Exit(1)
	}
	fmt.Println(beam.FormatConnectorSchema(schema))
}
