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

import "sort"

// Category groups transforms for the listing operation.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryIO        Category = "io"
	CategoryTransform Category = "transform"
	CategoryML        Category = "ml"
	CategorySQL       Category = "sql"
)

// ParseCategory maps a raw filter value to a Category. Unrecognized
// values behave as "all".
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryIO, CategoryTransform, CategoryML, CategorySQL, CategoryAll:
		return Category(s)
	default:
		return CategoryAll
	}
}

// catalog is the static transform table, keyed by exact (case-sensitive)
// transform name. Loaded once at init, never mutated.
var catalog = map[string]Category{
	// Element-wise and grouping transforms
	"AssertEqual":           CategoryTransform,
	"AssignTimestamps":      CategoryTransform,
	"Combine":               CategoryTransform,
	"Create":                CategoryTransform,
	"Explode":               CategoryTransform,
	"ExtractWindowingInfo":  CategoryTransform,
	"Filter":                CategoryTransform,
	"Flatten":               CategoryTransform,
	"Join":                  CategoryTransform,
	"LogForTesting":         CategoryTransform,
	"MapToFields":           CategoryTransform,
	"Partition":             CategoryTransform,
	"PyTransform":           CategoryTransform,
	"StripErrorMetadata":    CategoryTransform,
	"ValidateWithSchema":    CategoryTransform,
	"WindowInto":            CategoryTransform,

	// ML transforms
	"AnomalyDetection": CategoryML,
	"Enrichment":       CategoryML,
	"MLTransform":      CategoryML,
	"RunInference":     CategoryML,

	// SQL
	"Sql": CategorySQL,

	// IO connectors
	"ReadFromAvro":       CategoryIO,
	"WriteToAvro":        CategoryIO,
	"ReadFromBigQuery":   CategoryIO,
	"WriteToBigQuery":    CategoryIO,
	"WriteToBigTable":    CategoryIO,
	"ReadFromCsv":        CategoryIO,
	"WriteToCsv":         CategoryIO,
	"ReadFromIceberg":    CategoryIO,
	"WriteToIceberg":     CategoryIO,
	"ReadFromJdbc":       CategoryIO,
	"WriteToJdbc":        CategoryIO,
	"ReadFromJson":       CategoryIO,
	"WriteToJson":        CategoryIO,
	"ReadFromKafka":      CategoryIO,
	"WriteToKafka":       CategoryIO,
	"ReadFromMySql":      CategoryIO,
	"WriteToMySql":       CategoryIO,
	"ReadFromOracle":     CategoryIO,
	"WriteToOracle":      CategoryIO,
	"ReadFromParquet":    CategoryIO,
	"WriteToParquet":     CategoryIO,
	"ReadFromPostgres":   CategoryIO,
	"WriteToPostgres":    CategoryIO,
	"ReadFromPubSub":     CategoryIO,
	"WriteToPubSub":      CategoryIO,
	"ReadFromPubSubLite": CategoryIO,
	"WriteToPubSubLite":  CategoryIO,
	"ReadFromSpanner":    CategoryIO,
	"WriteToSpanner":     CategoryIO,
	"ReadFromSqlServer":  CategoryIO,
	"WriteToSqlServer":   CategoryIO,
	"ReadFromTFRecord":   CategoryIO,
	"WriteToTFRecord":    CategoryIO,
	"ReadFromText":       CategoryIO,
	"WriteToText":        CategoryIO,
}

// KnownTransform reports whether name is in the transform catalog.
// Matching is case-sensitive.
func KnownTransform(name string) bool {
	_, ok := catalog[name]
	return ok
}

// TransformCategory returns the category for a known transform.
func TransformCategory(name string) (Category, bool) {
	cat, ok := catalog[name]
	return cat, ok
}

// TransformsByCategory returns the sorted transform names in the given
// category. CategoryAll returns the full catalog.
func TransformsByCategory(cat Category) []string {
	var names []string
	for name, c := range catalog {
		if cat == CategoryAll || c == cat {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
