package naming

import "strings"

// LayerRule describes the naming pattern for a single layer.
// Rules are constructed once by TableFor and treated as read-only.
type LayerRule struct {
	Prefix       string       // layer prefix token, e.g. "raw", "anl", "stg"
	Layer        string       // human-readable layer name, e.g. "analytics"
	Arity        int          // expected number of __-delimited segments after the prefix
	SegmentNames []string     // documentation names for the segments, in order
	Plural       PluralPolicy // policy for the trailing entity segment
	FactDim      bool         // trailing segment must be a full-word fact_/dim_ name
}

// Pattern renders the documented pattern for this rule,
// e.g. "raw_<party>__<source>__<table>".
func (r LayerRule) Pattern() string {
	parts := make([]string, len(r.SegmentNames))
	for i, name := range r.SegmentNames {
		parts[i] = "<" + name + ">"
	}
	return r.Prefix + "_" + strings.Join(parts, "__")
}

// RuleTable holds the per-layer rules for one architecture plus the
// architecture's key-suffix style. Loaded once, never mutated.
type RuleTable struct {
	arch     Architecture
	layers   map[string]LayerRule // keyed by prefix; a prefix maps to at most one rule
	ordered  []string             // prefixes in layer order, for stable listings
	keyStyle KeyStyle
}

// TableFor builds the rule table for an architecture.
func TableFor(arch Architecture) *RuleTable {
	t := &RuleTable{
		arch:   arch,
		layers: make(map[string]LayerRule),
	}

	switch arch {
	case Traditional:
		t.keyStyle = KeyStyleID
		t.add(LayerRule{Prefix: "dl", Layer: "data lake", Arity: 3, SegmentNames: []string{"party", "source", "entity"}, Plural: PolicySingular})
		t.add(LayerRule{Prefix: "stg", Layer: "staging", Arity: 3, SegmentNames: []string{"party", "source", "entity"}, Plural: PolicySingular})
		t.add(LayerRule{Prefix: "ods", Layer: "operational data store", Arity: 3, SegmentNames: []string{"party", "source", "entity"}, Plural: PolicySingular})
		t.add(LayerRule{Prefix: "dw", Layer: "data warehouse", Arity: 2, SegmentNames: []string{"subject", "fact_or_dim_name"}, Plural: PolicyPlural, FactDim: true})
		t.add(LayerRule{Prefix: "bi", Layer: "business intelligence", Arity: 2, SegmentNames: []string{"subject", "fact_or_dim_name"}, Plural: PolicyPlural, FactDim: true})
	default: // Medallion
		t.keyStyle = KeyStyleKey
		t.add(LayerRule{Prefix: "raw", Layer: "raw", Arity: 3, SegmentNames: []string{"party", "source", "table"}, Plural: PolicySingular})
		t.add(LayerRule{Prefix: "int", Layer: "integration", Arity: 3, SegmentNames: []string{"party", "source", "entity"}, Plural: PolicySingular})
		t.add(LayerRule{Prefix: "anl", Layer: "analytics", Arity: 2, SegmentNames: []string{"subject", "fact_or_dim_name"}, Plural: PolicyPlural, FactDim: true})
	}

	return t
}

func (t *RuleTable) add(r LayerRule) {
	t.layers[r.Prefix] = r
	t.ordered = append(t.ordered, r.Prefix)
}

// Architecture returns the architecture this table was built for.
func (t *RuleTable) Architecture() Architecture {
	return t.arch
}

// Lookup returns the layer rule for a prefix.
func (t *RuleTable) Lookup(prefix string) (LayerRule, bool) {
	r, ok := t.layers[prefix]
	return r, ok
}

// Layers returns all layer rules in layer order.
func (t *RuleTable) Layers() []LayerRule {
	rules := make([]LayerRule, 0, len(t.ordered))
	for _, prefix := range t.ordered {
		rules = append(rules, t.layers[prefix])
	}
	return rules
}

// KeyStyle returns the key-suffix style for this architecture.
func (t *RuleTable) KeyStyle() KeyStyle {
	return t.keyStyle
}

// SetKeyStyle overrides the key-suffix style. Projects migrating between
// conventions set this from configuration before the first check.
func (t *RuleTable) SetKeyStyle(style KeyStyle) {
	t.keyStyle = style
}

// AnalyticsRule returns the fact/dim layer rule for this architecture.
// Bare fact_/dim_ names are validated against this rule even without a
// layer prefix.
func (t *RuleTable) AnalyticsRule() LayerRule {
	for _, prefix := range t.ordered {
		if r := t.layers[prefix]; r.FactDim {
			return r
		}
	}
	// Unreachable for the built-in architectures; both define a fact/dim layer.
	return LayerRule{Plural: PolicyPlural, FactDim: true}
}
