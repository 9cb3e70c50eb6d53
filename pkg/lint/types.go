package lint

import (
	"strings"

	"github.com/leapstack-labs/layerlint/pkg/naming"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a lint diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a convention break that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// =============================================================================
// Violation Kinds
// =============================================================================

// ViolationKind categorizes a diagnostic for report grouping.
type ViolationKind string

// Violation kinds produced by the built-in rules.
const (
	KindMalformedIdentifier ViolationKind = "malformed-identifier"
	KindUnknownLayer        ViolationKind = "unknown-layer"
	KindPluralization       ViolationKind = "pluralization"
	KindAbbreviation        ViolationKind = "abbreviation"
	KindKeyNaming           ViolationKind = "key-naming"
)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a single naming violation.
type Diagnostic struct {
	RuleID     string        `json:"rule_id"`
	Severity   Severity      `json:"-"`
	Kind       ViolationKind `json:"kind"`
	Message    string        `json:"message"`
	Identifier string        `json:"identifier"`
	Expected   string        `json:"expected,omitempty"` // expected pattern or value
	Actual     string        `json:"actual,omitempty"`   // offending value

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"`
	ImpactScore      int    `json:"impact_score,omitempty"` // 0-100, health score weighting
}

// =============================================================================
// Rule Definitions
// =============================================================================

// Context carries everything a check needs for one identifier.
// Checks are stateless; matching is fully deterministic given the same
// rule table and architecture.
type Context struct {
	Raw         string                  // the submitted string, available even when tokenization failed
	Kind        naming.Kind             // model or column
	Identifier  *naming.Identifier      // nil when tokenization failed
	TokenizeErr *naming.MalformedError  // non-nil when tokenization failed
	Table       *naming.RuleTable       // read-only rule table for the selected architecture
}

// CheckFunc analyzes one identifier and returns diagnostics.
// The opts parameter contains rule-specific options from configuration.
type CheckFunc func(ctx *Context, opts map[string]any) []Diagnostic

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string        // Unique identifier, e.g. "NC01"
	Name        string        // Human-readable name, e.g. "naming.pluralization"
	Group       string        // Category, e.g. "structure", "convention"
	Description string        // Human-readable description
	Kind        ViolationKind // Violation kind this rule reports
	Severity    Severity      // Default severity
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Name showing the anti-pattern
	GoodExample string // Name showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO - it carries data without behavior.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	Kind            string   `json:"kind"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// Info extracts metadata from a RuleDef for documentation/tooling.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		Kind:            string(r.Kind),
		DefaultSeverity: r.Severity,
		ConfigKeys:      r.ConfigKeys,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}
