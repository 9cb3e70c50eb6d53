package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func init() {
	lint.Register(UnknownLayer)
}

// UnknownLayer reports model names whose prefix matches no layer in the
// selected architecture. Unrecognized names are reported, never
// silently skipped.
var UnknownLayer = lint.RuleDef{
	ID:          "NC02",
	Name:        "naming.unknown-layer",
	Group:       "structure",
	Description: "Model prefix does not match any layer of the selected architecture.",
	Kind:        lint.KindUnknownLayer,
	Severity:    lint.SeverityError,
	Check:       checkUnknownLayer,
	Rationale: "Every model must be attributable to exactly one layer so its refresh " +
		"cadence, access rules and lineage position are unambiguous. A name outside " +
		"the layer prefixes is either a typo or an undocumented convention.",
	BadExample:  "curated_acme__salesforce__account",
	GoodExample: "int_acme__salesforce__account",
	Fix:         "Prefix the model with one of the architecture's layer tokens.",
}

func checkUnknownLayer(ctx *lint.Context, _ map[string]any) []lint.Diagnostic {
	id := ctx.Identifier
	if id == nil || ctx.Kind != naming.KindModel {
		return nil
	}
	if _, ok := ctx.Table.Lookup(id.Prefix); ok {
		return nil
	}
	// Bare fact_/dim_ names (and their abbreviations) belong to the
	// fact/dim layer; NC03/NC04 validate them.
	if id.IsBareFactDim() {
		return nil
	}

	prefixes := make([]string, 0)
	for _, r := range ctx.Table.Layers() {
		prefixes = append(prefixes, r.Prefix)
	}

	return []lint.Diagnostic{{
		RuleID:   "NC02",
		Severity: lint.SeverityError,
		Kind:     lint.KindUnknownLayer,
		Message: fmt.Sprintf("prefix %q matches no %s layer (known: %s)",
			id.Prefix, ctx.Table.Architecture(), strings.Join(prefixes, ", ")),
		Expected:         strings.Join(prefixes, "|"),
		Actual:           id.Prefix,
		DocumentationURL: lint.BuildDocURL("NC02"),
		ImpactScore:      lint.ImpactMedium.Int(),
	}}
}
