package lint

import (
	"context"
	"errors"

	"github.com/leapstack-labs/layerlint/pkg/naming"
	"golang.org/x/sync/errgroup"
)

// Runner validates batches of identifiers against one architecture's
// rule table. Construct once per run; the rule table is read-only so a
// Runner is safe for concurrent use.
type Runner struct {
	table       *naming.RuleTable
	config      *Config
	parallelism int
	firstOnly   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithParallelism limits how many identifiers are validated
// concurrently. Items never interact, so any limit >= 1 is valid;
// results are written by index and input order is always preserved.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// WithFirstViolationOnly stops checking an identifier after its first
// violation instead of reporting all of them.
func WithFirstViolationOnly() Option {
	return func(r *Runner) {
		r.firstOnly = true
	}
}

// WithKeyStyle overrides the architecture's default key-suffix style.
func WithKeyStyle(style naming.KeyStyle) Option {
	return func(r *Runner) {
		r.table.SetKeyStyle(style)
	}
}

// NewRunner creates a runner for the given architecture.
func NewRunner(arch naming.Architecture, config *Config, opts ...Option) *Runner {
	if config == nil {
		config = NewConfig()
	}
	r := &Runner{
		table:       naming.TableFor(arch),
		config:      config,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the runner's rule table.
func (r *Runner) Table() *naming.RuleTable {
	return r.table
}

// Run validates every item and returns the aggregated report.
// Items are checked independently; a violation in one never affects
// the outcome of another. Validation is pure and holds no external
// resources, so a caller that cancels the context may simply discard
// the partial report.
func (r *Runner) Run(ctx context.Context, items []Item) *Report {
	results := make([]Result, len(items))

	if r.parallelism <= 1 || len(items) < 2 {
		for i, item := range items {
			results[i] = r.checkItem(item)
		}
		return buildReport(r.table.Architecture(), results)
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = r.checkItem(item)
			return nil
		})
	}
	_ = g.Wait() // checks never return errors; failures are diagnostics

	return buildReport(r.table.Architecture(), results)
}

// Check validates a single identifier.
func (r *Runner) Check(item Item) Result {
	return r.checkItem(item)
}

// checkItem runs all enabled rules against one identifier in registry
// order (sorted by rule ID), applying severity overrides.
func (r *Runner) checkItem(item Item) Result {
	checkCtx := &Context{
		Raw:   item.Name,
		Kind:  item.Kind,
		Table: r.table,
	}

	id, err := naming.Tokenize(item.Name, item.Kind)
	if err != nil {
		var malformed *naming.MalformedError
		if errors.As(err, &malformed) {
			checkCtx.TokenizeErr = malformed
		} else {
			checkCtx.TokenizeErr = &naming.MalformedError{Raw: item.Name, Reason: err.Error()}
		}
	} else {
		checkCtx.Identifier = id
	}

	result := Result{Item: item, Passed: true}

	for _, rule := range GetAll() {
		if r.config.IsDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(checkCtx, r.config.GetRuleOptions(rule.ID))
		for i := range diags {
			diags[i].Severity = r.config.GetSeverity(rule.ID, diags[i].Severity)
			diags[i].Identifier = item.Name
		}
		result.Diagnostics = append(result.Diagnostics, diags...)

		if r.firstOnly && len(result.Diagnostics) > 0 {
			break
		}
	}

	result.Passed = len(result.Diagnostics) == 0
	return result
}
