// Package naming defines the warehouse layering architectures and the
// identifier tokenizer used by the lint rules. The rule tables are static
// configuration: they are built once per validation run and never mutated.
package naming

import (
	"fmt"
	"strings"
)

// Architecture identifies the layering convention a project follows.
// It is selected once per validation run and threaded through every
// check as an explicit parameter.
type Architecture string

// Supported architectures.
const (
	// Medallion is the 3-layer convention: raw -> integration -> analytics.
	Medallion Architecture = "medallion"
	// Traditional is the 5-layer convention: DL -> STG -> ODS -> DW -> BI.
	Traditional Architecture = "traditional"
)

// String returns the architecture name.
func (a Architecture) String() string {
	return string(a)
}

// ParseArchitecture converts a string to an Architecture.
// An unknown value is a configuration error; it is the only condition
// that aborts a run before any identifiers are processed.
func ParseArchitecture(s string) (Architecture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medallion":
		return Medallion, nil
	case "traditional":
		return Traditional, nil
	default:
		return "", fmt.Errorf("unknown architecture %q (expected medallion or traditional)", s)
	}
}

// PluralPolicy states whether a layer's entity segment uses singular or
// plural nouns.
type PluralPolicy string

// Pluralization policies.
const (
	PolicySingular PluralPolicy = "singular"
	PolicyPlural   PluralPolicy = "plural"
)

// KeyStyle is the suffix convention for key columns.
type KeyStyle string

// Key-suffix styles.
const (
	// KeyStyleKey uses surrogate-key style suffixes (customer_key).
	KeyStyleKey KeyStyle = "_key"
	// KeyStyleID uses natural-key style suffixes (customer_id).
	KeyStyleID KeyStyle = "_id"
)

// ParseKeyStyle converts a string to a KeyStyle.
func ParseKeyStyle(s string) (KeyStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "_key", "key":
		return KeyStyleKey, true
	case "_id", "id":
		return KeyStyleID, true
	default:
		return "", false
	}
}
