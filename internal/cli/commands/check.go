package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/layerlint/internal/cli/config"
	"github.com/leapstack-labs/layerlint/internal/cli/output"
	"github.com/leapstack-labs/layerlint/internal/project"
	"github.com/leapstack-labs/layerlint/internal/state"
	"github.com/leapstack-labs/layerlint/internal/watch"
	"github.com/leapstack-labs/layerlint/pkg/lint"
	_ "github.com/leapstack-labs/layerlint/pkg/lint/rules" // register naming rules
	"github.com/leapstack-labs/layerlint/pkg/naming"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Identifiers []string // Ad-hoc identifiers instead of project discovery
	Columns     bool     // Treat ad-hoc identifiers as columns
	Format      string   // Output format: text, markdown, json
	Disable     []string // Rule IDs to disable
	Rules       []string // Run only specific rules
	Severity    string   // Minimum severity: error, warning, info, hint
	FirstOnly   bool     // Stop at first violation per identifier
	Watch       bool     // Re-check on file changes
	NoSave      bool     // Skip recording the run in the state store
	NoBaseline  bool     // Report violations even when baselined
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [identifier...]",
		Short: "Validate model and column names against the layer conventions",
		Long: `Validate warehouse identifiers against the configured naming
architecture.

With no arguments, the project tree is scanned: model names come from
*.sql file stems under the models directory and column names from
schema YAML files. With arguments, the given identifiers are checked
directly, which is useful for pre-commit hooks and quick experiments.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the whole project
  layerlint check

  # Check names directly
  layerlint check raw_acme__salesforce__account anl_sales__f_orders

  # Check column names
  layerlint check --columns customer_key order_date

  # Only report errors
  layerlint check --severity error

  # Re-check whenever model or schema files change
  layerlint check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Identifiers = args
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVar(&opts.Columns, "columns", false, "Treat identifier arguments as column names")
	cmd.Flags().BoolVar(&opts.FirstOnly, "first-only", false, "Stop at the first violation per identifier")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when model or schema files change")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Do not record this run in the state store")
	cmd.Flags().BoolVar(&opts.NoBaseline, "no-baseline", false, "Report violations suppressed by the baseline")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if opts.Watch {
		if len(opts.Identifiers) > 0 {
			return fmt.Errorf("--watch cannot be combined with identifier arguments")
		}
		watcher := watch.New(cmdCtx.Cfg.ModelsDir, cmdCtx.Logger, func(ctx context.Context) error {
			_, err := checkOnce(ctx, cmdCtx, r, opts)
			return err
		})
		return watcher.Run(cmd.Context())
	}

	failed, err := checkOnce(cmd.Context(), cmdCtx, r, opts)
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("naming violations found")
	}
	return nil
}

// checkOnce runs one full check pass. The returned bool is true when
// unsuppressed violations remain after filtering.
func checkOnce(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, opts *CheckOptions) (bool, error) {
	cfg := cmdCtx.Cfg
	start := time.Now()

	arch, err := naming.ParseArchitecture(cfg.Architecture)
	if err != nil {
		return false, err
	}

	items, discoverErrs, err := collectItems(cfg, cmdCtx, opts)
	if err != nil {
		return false, err
	}

	runner := buildRunner(arch, cfg, opts)
	report := runner.Run(ctx, items)

	baseline := loadBaseline(cmdCtx, opts)
	results, suppressed := applyFilters(report.Results, opts.Severity, baseline)

	failed := 0
	for _, res := range results {
		if !res.Passed {
			failed++
		}
	}

	renderCheckReport(r, report.Architecture, results, discoverErrs, suppressed)

	if !opts.NoSave && cmdCtx.Store != nil {
		run := state.Run{
			Architecture: string(report.Architecture),
			Total:        report.Total,
			Passed:       report.Total - failed,
			Failed:       failed,
			Suppressed:   suppressed,
			StartedAt:    start.UTC(),
			Duration:     time.Since(start),
		}
		if _, err := cmdCtx.Store.SaveRun(run); err != nil {
			cmdCtx.Logger.Warn("failed to record run", "error", err)
		}
	}

	return failed > 0, nil
}

// buildRunner assembles the lint runner from config file settings and
// CLI overrides. Flags win over the file.
func buildRunner(arch naming.Architecture, cfg *config.Config, opts *CheckOptions) *lint.Runner {
	lintCfg := cfg.BuildLintConfig()

	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool)
		for _, id := range opts.Rules {
			enabled[strings.TrimSpace(id)] = true
		}
		for _, rule := range lint.GetAll() {
			if !enabled[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	var runnerOpts []lint.Option
	if cfg.Lint != nil {
		if cfg.Lint.Parallelism > 0 {
			runnerOpts = append(runnerOpts, lint.WithParallelism(cfg.Lint.Parallelism))
		}
		if style, ok := naming.ParseKeyStyle(cfg.Lint.KeyStyle); ok && cfg.Lint.KeyStyle != "" {
			runnerOpts = append(runnerOpts, lint.WithKeyStyle(style))
		}
		if cfg.Lint.FirstOnly {
			runnerOpts = append(runnerOpts, lint.WithFirstViolationOnly())
		}
	}
	if opts.FirstOnly {
		runnerOpts = append(runnerOpts, lint.WithFirstViolationOnly())
	}

	return lint.NewRunner(arch, lintCfg, runnerOpts...)
}

// collectItems returns the identifiers to validate: the CLI arguments
// when given, the project tree otherwise.
func collectItems(cfg *config.Config, cmdCtx *CommandContext, opts *CheckOptions) ([]lint.Item, []project.CollectError, error) {
	if len(opts.Identifiers) > 0 {
		kind := naming.KindModel
		if opts.Columns {
			kind = naming.KindColumn
		}
		items := make([]lint.Item, len(opts.Identifiers))
		for i, name := range opts.Identifiers {
			items[i] = lint.Item{Name: name, Kind: kind}
		}
		return items, nil, nil
	}

	disc := &project.Discovery{
		ModelsDir:   cfg.ModelsDir,
		SchemaGlobs: cfg.SchemaGlobs,
		Exclude:     cfg.Exclude,
		Root:        cfg.ProjectRoot,
		Logger:      cmdCtx.Logger,
	}
	result, err := disc.Collect()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return result.Items, result.Errors, nil
}

// loadBaseline returns the suppression set, or nil when disabled or
// unavailable.
func loadBaseline(cmdCtx *CommandContext, opts *CheckOptions) state.BaselineSet {
	if opts.NoBaseline || cmdCtx.Store == nil {
		return nil
	}
	entries, err := cmdCtx.Store.LoadBaseline()
	if err != nil {
		cmdCtx.Logger.Warn("failed to load baseline", "error", err)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	return state.NewBaselineSet(entries)
}

// applyFilters drops diagnostics below the severity threshold or
// covered by the baseline, recomputing per-item pass status.
func applyFilters(results []lint.Result, severity string, baseline state.BaselineSet) ([]lint.Result, int) {
	threshold, ok := lint.ParseSeverity(severity)
	if !ok {
		threshold = lint.SeverityHint
	}

	suppressed := 0
	filtered := make([]lint.Result, 0, len(results))
	for _, res := range results {
		var diags []lint.Diagnostic
		for _, d := range res.Diagnostics {
			if d.Severity > threshold {
				continue
			}
			if baseline.Suppressed(d) {
				suppressed++
				continue
			}
			diags = append(diags, d)
		}
		filtered = append(filtered, lint.Result{
			Item:        res.Item,
			Passed:      len(diags) == 0,
			Diagnostics: diags,
		})
	}
	return filtered, suppressed
}
