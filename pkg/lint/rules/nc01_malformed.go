package rules

import (
	"fmt"

	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

func init() {
	lint.Register(Malformed)
}

// Malformed rejects identifiers that cannot be tokenized, and model
// names whose segment count does not match their layer's pattern.
var Malformed = lint.RuleDef{
	ID:          "NC01",
	Name:        "naming.malformed-identifier",
	Group:       "structure",
	Description: "Identifier contains invalid characters or inconsistent delimiter structure.",
	Kind:        lint.KindMalformedIdentifier,
	Severity:    lint.SeverityError,
	Check:       checkMalformed,
	Rationale: "Warehouse object names are referenced from SQL, YAML and BI tools alike; " +
		"a name outside the [a-z0-9_] charset or with broken __ delimiters breaks " +
		"downstream tooling and makes the layer pattern unparseable.",
	BadExample:  "raw_acme_salesforce_account",
	GoodExample: "raw_acme__salesforce__account",
	Fix:         "Use lowercase a-z, 0-9 and underscores only, with double underscores between pattern segments.",
}

func checkMalformed(ctx *lint.Context, _ map[string]any) []lint.Diagnostic {
	if ctx.TokenizeErr != nil {
		return []lint.Diagnostic{{
			RuleID:           "NC01",
			Severity:         lint.SeverityError,
			Kind:             lint.KindMalformedIdentifier,
			Message:          ctx.TokenizeErr.Error(),
			Actual:           ctx.Raw,
			DocumentationURL: lint.BuildDocURL("NC01"),
			ImpactScore:      lint.ImpactHigh.Int(),
		}}
	}

	// Arity mismatches are a delimiter-structure problem: a single
	// underscore where __ is required collapses two segments into one.
	id := ctx.Identifier
	if ctx.Kind != naming.KindModel {
		return nil
	}
	rule, ok := ctx.Table.Lookup(id.Prefix)
	if !ok {
		return nil // not this rule's concern; NC02 reports unknown layers
	}
	if len(id.Segments) == rule.Arity {
		return nil
	}

	return []lint.Diagnostic{{
		RuleID:   "NC01",
		Severity: lint.SeverityError,
		Kind:     lint.KindMalformedIdentifier,
		Message: fmt.Sprintf("%s layer expects %d segments (%s), got %d",
			rule.Layer, rule.Arity, rule.Pattern(), len(id.Segments)),
		Expected:         rule.Pattern(),
		Actual:           ctx.Raw,
		DocumentationURL: lint.BuildDocURL("NC01"),
		ImpactScore:      lint.ImpactHigh.Int(),
	}}
}
