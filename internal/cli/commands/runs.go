package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/layerlint/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show check history",
		Long: `Show recent check runs from the state store, newest first.

Useful for tracking whether a cleanup effort is actually reducing the
number of naming violations over time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			r := cmdCtx.Renderer

			runs, err := cmdCtx.Store.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				r.Println("No runs recorded yet. Run 'layerlint check' first.")
				return nil
			}

			if r.EffectiveMode() == output.ModeJSON {
				type runOut struct {
					ID           string `json:"id"`
					Architecture string `json:"architecture"`
					Total        int    `json:"total"`
					Passed       int    `json:"passed"`
					Failed       int    `json:"failed"`
					Suppressed   int    `json:"suppressed"`
					StartedAt    string `json:"started_at"`
					DurationMS   int64  `json:"duration_ms"`
				}
				out := make([]runOut, len(runs))
				for i, run := range runs {
					out[i] = runOut{
						ID:           run.ID,
						Architecture: run.Architecture,
						Total:        run.Total,
						Passed:       run.Passed,
						Failed:       run.Failed,
						Suppressed:   run.Suppressed,
						StartedAt:    run.StartedAt.Format(time.RFC3339),
						DurationMS:   run.Duration.Milliseconds(),
					}
				}
				return r.JSON(out)
			}

			t := table.NewWriter()
			t.SetOutputMirror(r.Writer())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Started", "Architecture", "Checked", "Passed", "Failed", "Baselined", "Duration"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Architecture,
					run.Total,
					run.Passed,
					run.Failed,
					run.Suppressed,
					run.Duration.Round(time.Millisecond).String(),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
