package rules

import (
	"fmt"

	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func init() {
	lint.Register(Abbreviation)
}

// Abbreviation rejects shortened fact/dim markers (f_, fi_, d_) where
// the full word is required.
var Abbreviation = lint.RuleDef{
	ID:          "NC04",
	Name:        "naming.abbreviation",
	Group:       "convention",
	Description: "Fact/dim marker is abbreviated; the full word fact_ or dim_ is required.",
	Kind:        lint.KindAbbreviation,
	Severity:    lint.SeverityError,
	Check:       checkAbbreviation,
	Rationale: "Abbreviated markers save two keystrokes and cost every reader a lookup. " +
		"Full-word fact_ and dim_ prefixes keep analytics models self-describing and " +
		"greppable across the project.",
	BadExample:  "anl_sales__f_orders",
	GoodExample: "anl_sales__fact_orders",
	Fix:         "Spell out fact_ or dim_ in full.",
}

func checkAbbreviation(ctx *lint.Context, _ map[string]any) []lint.Diagnostic {
	id := ctx.Identifier
	if id == nil || ctx.Kind != naming.KindModel {
		return nil
	}

	segment, ok := factDimSegmentFor(ctx)
	if !ok {
		return nil
	}

	parsed, ok := naming.ParseFactDim(segment)
	if !ok {
		rule, _ := layerRuleFor(ctx)
		return []lint.Diagnostic{{
			RuleID:   "NC04",
			Severity: lint.SeverityError,
			Kind:     lint.KindAbbreviation,
			Message: fmt.Sprintf("%s layer requires a fact_ or dim_ qualified name, got %q",
				rule.Layer, segment),
			Expected:         "fact_<name> or dim_<name>",
			Actual:           segment,
			DocumentationURL: lint.BuildDocURL("NC04"),
			ImpactScore:      lint.ImpactMedium.Int(),
		}}
	}
	if !parsed.Abbreviated {
		return nil
	}

	expected := parsed.Canonical + "_" + parsed.Name
	return []lint.Diagnostic{{
		RuleID:   "NC04",
		Severity: lint.SeverityError,
		Kind:     lint.KindAbbreviation,
		Message: fmt.Sprintf("abbreviated marker %q: expected %q",
			parsed.Marker+"_"+parsed.Name, expected),
		Expected:         expected,
		Actual:           parsed.Marker + "_" + parsed.Name,
		DocumentationURL: lint.BuildDocURL("NC04"),
		ImpactScore:      lint.ImpactMedium.Int(),
	}}
}

// factDimSegmentFor returns the segment that must carry a fact_/dim_
// marker, when the identifier belongs to a fact/dim layer.
func factDimSegmentFor(ctx *lint.Context) (string, bool) {
	id := ctx.Identifier
	if id.IsBareFactDim() {
		return ctx.Raw, true
	}
	rule, ok := layerRuleFor(ctx)
	if !ok || !rule.FactDim || len(id.Segments) == 0 {
		return "", false
	}
	return id.Segments[len(id.Segments)-1], true
}
