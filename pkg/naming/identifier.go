package naming

import (
	"fmt"
	"strings"
)

// Kind distinguishes what an identifier names.
type Kind string

// Identifier kinds.
const (
	// KindModel is a model file stem, e.g. "raw_acme__salesforce__account".
	KindModel Kind = "model"
	// KindColumn is a column name from a schema file, e.g. "customer_key".
	KindColumn Kind = "column"
)

// Identifier is a tokenized candidate name. Created per validation call
// and discarded after the report is emitted.
type Identifier struct {
	Raw      string   // the submitted string, unmodified
	Kind     Kind     // model or column
	Prefix   string   // text before the first underscore boundary
	Segments []string // __-delimited segments after the prefix
}

// MalformedError reports an identifier that cannot be tokenized.
type MalformedError struct {
	Raw    string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed identifier %q: %s", e.Raw, e.Reason)
}

const delimiter = "__"

// Tokenize splits a candidate identifier into its prefix and
// __-delimited segments. It is a pure function: same input, same output,
// no side effects.
//
// Failure conditions: empty input, characters outside [a-z0-9_], and
// empty segments produced by stray or doubled delimiters.
func Tokenize(raw string, kind Kind) (*Identifier, error) {
	if raw == "" {
		return nil, &MalformedError{Raw: raw, Reason: "empty identifier"}
	}

	for _, c := range raw {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return nil, &MalformedError{
				Raw:    raw,
				Reason: fmt.Sprintf("invalid character %q (allowed: a-z, 0-9, _)", c),
			}
		}
	}
	if strings.HasPrefix(raw, "_") || strings.HasSuffix(raw, "_") {
		return nil, &MalformedError{Raw: raw, Reason: "leading or trailing underscore"}
	}

	chunks := strings.Split(raw, delimiter)
	for _, chunk := range chunks {
		if chunk == "" {
			return nil, &MalformedError{Raw: raw, Reason: "empty segment between delimiters"}
		}
		// A chunk starting or ending with "_" means three or more
		// consecutive underscores in the raw string.
		if strings.HasPrefix(chunk, "_") || strings.HasSuffix(chunk, "_") {
			return nil, &MalformedError{Raw: raw, Reason: "inconsistent delimiter usage"}
		}
	}

	id := &Identifier{Raw: raw, Kind: kind}

	// The prefix is the text before the first single-underscore boundary
	// of the first chunk: "raw_acme" -> prefix "raw", first segment "acme".
	head := chunks[0]
	if i := strings.Index(head, "_"); i >= 0 {
		id.Prefix = head[:i]
		id.Segments = append(id.Segments, head[i+1:])
	} else {
		id.Prefix = head
	}
	id.Segments = append(id.Segments, chunks[1:]...)

	return id, nil
}

// EntityWord returns the trailing noun of the identifier, the word the
// pluralization policy applies to: the last single-underscore-delimited
// word of the last segment.
func (id *Identifier) EntityWord() string {
	if len(id.Segments) == 0 {
		return id.Prefix
	}
	last := id.Segments[len(id.Segments)-1]
	if i := strings.LastIndex(last, "_"); i >= 0 {
		return last[i+1:]
	}
	return last
}

// FactDimKinds maps fact/dim markers to their canonical full-word form.
// Abbreviated forms are recognized so they can be rejected with a
// precise message rather than an unknown-layer report.
var factDimKinds = map[string]struct {
	Canonical   string
	Abbreviated bool
}{
	"fact": {Canonical: "fact", Abbreviated: false},
	"dim":  {Canonical: "dim", Abbreviated: false},
	"f":    {Canonical: "fact", Abbreviated: true},
	"fi":   {Canonical: "fact", Abbreviated: true},
	"d":    {Canonical: "dim", Abbreviated: true},
}

// FactDimSegment describes a parsed fact-or-dim segment such as
// "fact_orders" or its rejected abbreviation "f_orders".
type FactDimSegment struct {
	Marker      string // marker as written, e.g. "f"
	Canonical   string // full-word form, "fact" or "dim"
	Name        string // trailing name, e.g. "orders"
	Abbreviated bool
}

// ParseFactDim splits a segment into its fact/dim marker and name.
// Returns false when the segment does not start with a known marker.
func ParseFactDim(segment string) (FactDimSegment, bool) {
	marker, name, found := strings.Cut(segment, "_")
	if !found || name == "" {
		return FactDimSegment{}, false
	}
	kind, ok := factDimKinds[marker]
	if !ok {
		return FactDimSegment{}, false
	}
	return FactDimSegment{
		Marker:      marker,
		Canonical:   kind.Canonical,
		Name:        name,
		Abbreviated: kind.Abbreviated,
	}, true
}

// IsBareFactDim reports whether a model identifier is a bare fact/dim
// name without a layer prefix, e.g. "dim_customers" or "f_orders".
// Such names are validated against the analytics-layer rule.
func (id *Identifier) IsBareFactDim() bool {
	if id.Kind != KindModel || len(id.Segments) != 1 {
		return false
	}
	_, ok := factDimKinds[id.Prefix]
	return ok
}

// KeySuffix extracts the key-column suffix of a column name, one of
// "_key", "_id" or "_pk", plus the base name before it. Returns false
// for columns that are not key columns.
func KeySuffix(raw string) (base, suffix string, ok bool) {
	for _, s := range []string{"_key", "_id", "_pk"} {
		if strings.HasSuffix(raw, s) && len(raw) > len(s) {
			return strings.TrimSuffix(raw, s), s, true
		}
	}
	return "", "", false
}
