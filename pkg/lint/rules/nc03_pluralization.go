package rules

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func init() {
	lint.Register(Pluralization)
}

// Pluralization checks the trailing entity noun against the layer's
// singular/plural policy. The trailing-s heuristic is cross-checked
// with the inflection library so singular nouns ending in "s"
// (address, status) are not flagged.
var Pluralization = lint.RuleDef{
	ID:          "NC03",
	Name:        "naming.pluralization",
	Group:       "convention",
	Description: "Entity noun does not match the layer's singular/plural policy.",
	Kind:        lint.KindPluralization,
	Severity:    lint.SeverityWarning,
	Check:       checkPluralization,
	ConfigKeys:  []string{"ignore"},
	Rationale: "Source-aligned layers mirror source tables and use singular nouns; " +
		"analytics-facing facts and dimensions describe sets of rows and use plural " +
		"nouns. Mixing the two makes a model's layer ambiguous at a glance.",
	BadExample:  "raw_acme__salesforce__accounts",
	GoodExample: "raw_acme__salesforce__account",
	Fix:         "Rename the entity segment to match the layer policy.",
}

func checkPluralization(ctx *lint.Context, opts map[string]any) []lint.Diagnostic {
	id := ctx.Identifier
	if id == nil || ctx.Kind != naming.KindModel {
		return nil
	}

	rule, ok := layerRuleFor(ctx)
	if !ok {
		return nil
	}

	word := id.EntityWord()
	for _, ignored := range lint.GetStringSliceOption(opts, "ignore", nil) {
		if word == ignored {
			return nil
		}
	}

	switch rule.Plural {
	case naming.PolicySingular:
		if !isPlural(word) {
			return nil
		}
		singular := inflection.Singular(word)
		return []lint.Diagnostic{{
			RuleID:   "NC03",
			Severity: lint.SeverityWarning,
			Kind:     lint.KindPluralization,
			Message: fmt.Sprintf("%s layer uses singular nouns: %q should be %q",
				rule.Layer, word, singular),
			Expected:         singular,
			Actual:           word,
			DocumentationURL: lint.BuildDocURL("NC03"),
			ImpactScore:      lint.ImpactLow.Int(),
		}}
	case naming.PolicyPlural:
		if isPlural(word) {
			return nil
		}
		plural := inflection.Plural(word)
		if plural == word {
			return nil // uncountable noun; nothing to pluralize
		}
		return []lint.Diagnostic{{
			RuleID:   "NC03",
			Severity: lint.SeverityWarning,
			Kind:     lint.KindPluralization,
			Message: fmt.Sprintf("%s layer uses plural nouns: %q should be %q",
				rule.Layer, word, plural),
			Expected:         plural,
			Actual:           word,
			DocumentationURL: lint.BuildDocURL("NC03"),
			ImpactScore:      lint.ImpactLow.Int(),
		}}
	}
	return nil
}

// layerRuleFor resolves the layer rule an identifier is judged against,
// treating bare fact_/dim_ names as members of the fact/dim layer.
// Returns false when the layer is unknown or the segment count is off;
// NC01/NC02 own those reports.
func layerRuleFor(ctx *lint.Context) (naming.LayerRule, bool) {
	id := ctx.Identifier
	if id.IsBareFactDim() {
		return ctx.Table.AnalyticsRule(), true
	}
	rule, ok := ctx.Table.Lookup(id.Prefix)
	if !ok || len(id.Segments) != rule.Arity {
		return naming.LayerRule{}, false
	}
	return rule, true
}

// isPlural applies the trailing-s heuristic cross-checked with the
// inflection library: a word is plural only when it ends in "s" and
// singularizing it actually changes it.
func isPlural(word string) bool {
	return strings.HasSuffix(word, "s") && inflection.Singular(word) != word
}
