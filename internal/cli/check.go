package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/health"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the project content",
	Long: `Validate the project content.

Loads every source the dashboard reads and reports:
  - where the configuration came from
  - records whose frontmatter failed to parse
  - records with an unknown status or environment
  - roadmap items with no matching record (title and owner)
  - the stats file and the commit source

Exits non-zero when a record, the schedule or the stats file cannot be
parsed. Warnings do not change the exit code.`,
	Example: `  statusboard check
  statusboard check --config site/project.config.json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupInspect
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report := health.RunHealthChecks(a.cfg)
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
	if !report.Passed {
		return clierrors.ChecksFailed()
	}
	return nil
}
