package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/layerlint/internal/cli/output"
	"github.com/leapstack-labs/layerlint/internal/project"
	"github.com/leapstack-labs/layerlint/pkg/lint"
	"github.com/leapstack-labs/layerlint/pkg/naming"
)

// renderCheckReport writes the filtered results in the renderer's mode.
func renderCheckReport(r *output.Renderer, arch naming.Architecture, results []lint.Result, discoverErrs []project.CollectError, suppressed int) {
	summary := summarize(results)

	if r.EffectiveMode() == output.ModeJSON {
		renderCheckJSON(r, arch, results, summary)
		return
	}

	for _, res := range results {
		if res.Passed {
			continue
		}
		name := res.Item.Name
		if res.Item.FilePath != "" {
			name = fmt.Sprintf("%s  %s", name, r.Styles().FilePath.Render(res.Item.FilePath))
		}
		r.Println(r.Styles().Bold.Render(name))
		for _, d := range res.Diagnostics {
			r.Printf("  %s  %s  %s\n",
				severityLabel(r, d.Severity),
				r.Styles().Muted.Render(d.RuleID),
				d.Message,
			)
			if d.Expected != "" {
				r.Printf("  %s\n", r.Styles().Muted.Render("expected: "+d.Expected))
			}
		}
		r.Println("")
	}

	for _, ce := range discoverErrs {
		r.Warn(fmt.Sprintf("skipped %s: %s", ce.Path, ce.Message))
	}

	if summary.Failed == 0 {
		msg := fmt.Sprintf("All %d identifiers follow the %s conventions", summary.Total, arch)
		if suppressed > 0 {
			msg += fmt.Sprintf(" (%d baselined)", suppressed)
		}
		r.Success(msg)
		return
	}

	renderSummaryTable(r, summary, suppressed)
}

// checkStats aggregates the filtered results.
type checkStats struct {
	Total    int
	Passed   int
	Failed   int
	Errors   int
	Warnings int
	Info     int
	Hints    int
}

func summarize(results []lint.Result) checkStats {
	var s checkStats
	s.Total = len(results)
	for _, res := range results {
		if res.Passed {
			s.Passed++
			continue
		}
		s.Failed++
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				s.Errors++
			case lint.SeverityWarning:
				s.Warnings++
			case lint.SeverityInfo:
				s.Info++
			case lint.SeverityHint:
				s.Hints++
			}
		}
	}
	return s
}

func renderSummaryTable(r *output.Renderer, s checkStats, suppressed int) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	if r.EffectiveMode() == output.ModeMarkdown {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"Checked", "Passed", "Failed", "Errors", "Warnings", "Baselined"})
	t.AppendRow(table.Row{s.Total, s.Passed, s.Failed, s.Errors, s.Warnings, suppressed})
	t.Render()

	parts := []string{fmt.Sprintf("%d of %d identifiers failed", s.Failed, s.Total)}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", s.Hints))
	}
	r.Println(strings.Join(parts, ", "))
}

func renderCheckJSON(r *output.Renderer, arch naming.Architecture, results []lint.Result, s checkStats) {
	out := output.CheckOutput{
		Architecture: string(arch),
		Summary: output.CheckSummary{
			Total:    s.Total,
			Passed:   s.Passed,
			Failed:   s.Failed,
			Errors:   s.Errors,
			Warnings: s.Warnings,
			Info:     s.Info,
			Hints:    s.Hints,
		},
		ByKind: make(map[string]int),
	}
	for _, res := range results {
		for _, d := range res.Diagnostics {
			out.ByKind[string(d.Kind)]++
			out.Violations = append(out.Violations, output.CheckDiagnostic{
				RuleID:     d.RuleID,
				Severity:   d.Severity.String(),
				Kind:       string(d.Kind),
				Identifier: d.Identifier,
				Message:    d.Message,
				Expected:   d.Expected,
				Actual:     d.Actual,
				FilePath:   res.Item.FilePath,
			})
		}
	}
	if len(out.ByKind) == 0 {
		out.ByKind = nil
	}
	_ = r.JSON(out)
}

// severityLabel returns the padded, styled severity column.
func severityLabel(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
