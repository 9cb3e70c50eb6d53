package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/layerlint/internal/cli/output"
	"github.com/leapstack-labs/layerlint/internal/state"
	"github.com/leapstack-labs/layerlint/pkg/lint"
	_ "github.com/leapstack-labs/layerlint/pkg/lint/rules" // register naming rules
	"github.com/leapstack-labs/layerlint/pkg/naming"
	"github.com/spf13/cobra"
)

// NewBaselineCommand creates the baseline command group.
func NewBaselineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the accepted-violation baseline",
		Long: `Manage the baseline of accepted naming violations.

Baselined violations are suppressed by 'layerlint check', letting a
team adopt the linter on an existing project and fix legacy names
incrementally. New violations are still reported.`,
	}

	cmd.AddCommand(newBaselineUpdateCommand())
	cmd.AddCommand(newBaselineListCommand())
	cmd.AddCommand(newBaselineClearCommand())

	return cmd
}

func newBaselineUpdateCommand() *cobra.Command {
	var add bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Record the current violations as accepted",
		Long: `Scan the project and record every current violation in the
baseline. By default the baseline is replaced; use --add to keep
existing entries and only append new ones.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg := cmdCtx.Cfg
			arch, err := naming.ParseArchitecture(cfg.Architecture)
			if err != nil {
				return err
			}

			items, _, err := collectItems(cfg, cmdCtx, &CheckOptions{})
			if err != nil {
				return err
			}

			runner := buildRunner(arch, cfg, &CheckOptions{})
			report := runner.Run(cmd.Context(), items)

			var entries []state.BaselineEntry
			for _, d := range report.Violations() {
				entries = append(entries, state.BaselineEntry{
					Identifier: d.Identifier,
					RuleID:     d.RuleID,
				})
			}

			if add {
				err = cmdCtx.Store.AddBaseline(entries)
			} else {
				err = cmdCtx.Store.SaveBaseline(entries)
			}
			if err != nil {
				return fmt.Errorf("failed to write baseline: %w", err)
			}

			cmdCtx.Renderer.Success(fmt.Sprintf("Baseline updated: %d accepted violations", len(entries)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "Append to the baseline instead of replacing it")
	return cmd
}

func newBaselineListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the baselined violations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			r := cmdCtx.Renderer

			entries, err := cmdCtx.Store.LoadBaseline()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				r.Println("Baseline is empty")
				return nil
			}

			if r.EffectiveMode() == output.ModeJSON {
				type entryOut struct {
					Identifier string `json:"identifier"`
					RuleID     string `json:"rule_id"`
					AddedAt    string `json:"added_at"`
				}
				out := make([]entryOut, len(entries))
				for i, e := range entries {
					out[i] = entryOut{e.Identifier, e.RuleID, e.AddedAt.Format("2006-01-02")}
				}
				return r.JSON(out)
			}

			t := table.NewWriter()
			t.SetOutputMirror(r.Writer())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Identifier", "Rule", "Added"})
			for _, e := range entries {
				name := e.RuleID
				if def, ok := lint.GetByID(e.RuleID); ok {
					name = def.Name
				}
				t.AppendRow(table.Row{e.Identifier, name, e.AddedAt.Format("2006-01-02")})
			}
			t.Render()
			return nil
		},
	}
}

func newBaselineClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all baselined violations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.Store.ClearBaseline(); err != nil {
				return err
			}
			cmdCtx.Renderer.Success("Baseline cleared")
			return nil
		},
	}
}
