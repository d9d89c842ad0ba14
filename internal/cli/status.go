package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/statusboard/internal/dashboard"
	"github.com/ariel-frischer/statusboard/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const barWidth = 24

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the project summary",
	Long: `Print the project summary: record counts by status, roadmap completion
and each developer's progress against their committed deliverables.

Completion is shipped records over planned items, rounded to the nearest
percent. Bars show shipped (green), in progress (yellow) and blocked (red).`,
	Example: `  statusboard status
  statusboard status --config project.config.json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.GroupID = GroupInspect
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	dash := a.dashboard()
	ov, err := dash.Overview(cmd.Context())
	if err != nil {
		return err
	}
	rm, err := dash.Roadmap(cmd.Context())
	if err != nil {
		return err
	}

	writeStatus(cmd.OutOrStdout(), ov, rm, min(output.GetTerminalWidth(), 60))
	return nil
}

func writeStatus(out io.Writer, ov dashboard.Overview, rm dashboard.RoadmapPage, width int) {
	output.PrintRule(out, ov.Project, width)
	output.PrintKeyValue(out, "Developers", ov.DevCount)
	output.PrintKeyValue(out, "Records", ov.Counts.Total)
	output.PrintKeyValue(out, "In dev", ov.Counts.InDev)
	output.PrintKeyValue(out, "In review", ov.Counts.InReview)
	output.PrintKeyValue(out, "Deployed", ov.Counts.Deployed)
	output.PrintKeyValue(out, "Blocked", ov.Counts.Blocked)
	if ov.StatsUpdated != "" {
		output.PrintKeyValue(out, "Stats", "updated "+ov.StatsUpdated)
	}

	output.PrintHeader(out, "Roadmap")
	s := rm.Summary
	bar := output.Bar(barWidth,
		output.Segment{Share: s.ShippedShare(), Color: color.FgGreen},
		output.Segment{Share: s.InProgressShare(), Color: color.FgYellow},
	)
	fmt.Fprintf(out, "  %s %d/%d shipped, %d in progress, %d%%\n", bar, s.Shipped, s.Planned, s.InProgress, s.Percent)
	if n := len(rm.Horizon.Items); n > 0 {
		fmt.Fprintf(out, "  %d planned deliverables over %d weeks\n", n, len(rm.Rows))
	}

	output.PrintHeader(out, "On track")
	if len(ov.OnTrack) == 0 {
		fmt.Fprintln(out, "  no developers configured")
		return
	}
	nameWidth := 0
	for _, p := range ov.OnTrack {
		nameWidth = max(nameWidth, len(p.Dev))
	}
	for _, p := range ov.OnTrack {
		bar := output.Bar(barWidth,
			output.Segment{Share: p.ShippedShare(), Color: color.FgGreen},
			output.Segment{Share: p.InProgressShare(), Color: color.FgYellow},
			output.Segment{Share: p.BlockedShare(), Color: color.FgRed},
		)
		fmt.Fprintf(out, "  %-*s %s %d/%d %3d%%\n", nameWidth, p.Dev, bar, p.Shipped, p.Planned, p.Percent)
	}
}
