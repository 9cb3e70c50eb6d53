// Package rules contains the built-in naming rules.
// Importing this package registers all rules via init():
//
//	import _ "github.com/leapstack-labs/layerlint/pkg/lint/rules"
package rules
