package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func init() {
	lint.Register(KeyNaming)
}

// KeyNaming checks key-column suffixes against the architecture's key
// style. The style can be overridden per project via the "style"
// option ("_key" or "_id").
var KeyNaming = lint.RuleDef{
	ID:          "NC05",
	Name:        "naming.key-naming",
	Group:       "convention",
	Description: "Key column suffix does not match the architecture's key style.",
	Kind:        lint.KindKeyNaming,
	Severity:    lint.SeverityWarning,
	Check:       checkKeyNaming,
	ConfigKeys:  []string{"style"},
	Rationale: "Joins are written against key columns constantly; a project that mixes " +
		"_key and _id suffixes forces every join author to open the schema first. One " +
		"suffix style per project keeps joins mechanical.",
	BadExample:  "customer_id",
	GoodExample: "customer_key",
	Fix:         "Rename the column to use the project's key suffix.",
}

func checkKeyNaming(ctx *lint.Context, opts map[string]any) []lint.Diagnostic {
	if ctx.Identifier == nil || ctx.Kind != naming.KindColumn {
		return nil
	}

	base, suffix, ok := naming.KeySuffix(ctx.Raw)
	if !ok {
		return nil // not a key column
	}

	style := ctx.Table.KeyStyle()
	if s, valid := naming.ParseKeyStyle(lint.GetStringOption(opts, "style", "")); valid {
		style = s
	}

	if suffix == string(style) {
		return nil
	}
	// _pk is the documented fallback under the _key style for models
	// whose grain column already ends in _key.
	if suffix == "_pk" && style == naming.KeyStyleKey && strings.HasSuffix(base, "_key") {
		return nil
	}

	expected := base + string(style)
	return []lint.Diagnostic{{
		RuleID:   "NC05",
		Severity: lint.SeverityWarning,
		Kind:     lint.KindKeyNaming,
		Message: fmt.Sprintf("key columns use the %s suffix: %q should be %q",
			style, ctx.Raw, expected),
		Expected:         expected,
		Actual:           ctx.Raw,
		DocumentationURL: lint.BuildDocURL("NC05"),
		ImpactScore:      lint.ImpactLow.Int(),
	}}
}
