package lint

import "github.com/leapstack-labs/layerlint/pkg/naming"

// Item is one candidate identifier submitted for validation.
type Item struct {
	Name     string      `json:"name"`
	Kind     naming.Kind `json:"kind"`
	FilePath string      `json:"file_path,omitempty"` // where the identifier was found, if known
}

// Result holds the validation outcome for a single identifier.
type Result struct {
	Item        Item         `json:"item"`
	Passed      bool         `json:"passed"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Report aggregates results across a batch of identifiers.
// Results preserve input order so reports are reproducible across runs
// on identical input.
type Report struct {
	Architecture naming.Architecture   `json:"architecture"`
	Total        int                   `json:"total"`
	Passed       int                   `json:"passed"`
	Failed       int                   `json:"failed"`
	Results      []Result              `json:"results"`
	ByKind       map[ViolationKind]int `json:"by_kind,omitempty"`
}

// AllPassed reports whether every identifier passed validation.
func (r *Report) AllPassed() bool {
	return r.Failed == 0
}

// Violations returns all diagnostics across the batch, in input order.
func (r *Report) Violations() []Diagnostic {
	var diags []Diagnostic
	for _, res := range r.Results {
		diags = append(diags, res.Diagnostics...)
	}
	return diags
}

// buildReport assembles the summary from ordered per-item results.
func buildReport(arch naming.Architecture, results []Result) *Report {
	report := &Report{
		Architecture: arch,
		Total:        len(results),
		Results:      results,
		ByKind:       make(map[ViolationKind]int),
	}
	for _, res := range results {
		if res.Passed {
			report.Passed++
			continue
		}
		report.Failed++
		for _, d := range res.Diagnostics {
			report.ByKind[d.Kind]++
		}
	}
	return report
}
