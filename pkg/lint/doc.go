// Package lint provides the naming-convention rule framework: rule
// definitions, the global registry, configuration, and the batch runner
// that aggregates per-identifier diagnostics into a report.
//
// Rules are registered from init() functions in the rules package:
//
//	import _ "github.com/leapstack-labs/layerlint/pkg/lint/rules"
//
// The runner validates each identifier independently. A failure for one
// identifier is recorded as a diagnostic and never aborts the batch.
package lint
