package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"resolveprobe/internal/diagnose"
	"resolveprobe/internal/report"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the diagnostic stages and their dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := diagnose.Plan(ctx.probeOptions())
			if jsonOutput {
				return report.WriteJSON(cmd.OutOrStdout(), plan)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderPlan(plan))
			return err
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// renderPlan lays the stage plan out in execution order. Root stages show
// "-" in the dependency column.
func renderPlan(plan []diagnose.StageInfo) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Stage", "Depends On", "Query"})
	for i, stage := range plan {
		dependsOn := stage.DependsOn
		if dependsOn == "" {
			dependsOn = "-"
		}
		tw.AppendRow(table.Row{i + 1, stage.Name, dependsOn, stage.Query})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 48},
	})
	return tw.Render()
}
