package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/content"
	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/output"
	"github.com/spf13/cobra"
)

var (
	changelogLastFlag  int
	changelogPlainFlag bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog <slug>",
	Short: "Show the changelog of a deliverable",
	Long: `Show the changelog entries of a deliverable record.

Entries are the '### <date>' sections of the record body, newest first as
written in the file.`,
	Example: `  statusboard changelog search-api
  statusboard changelog search-api --last 3
  statusboard changelog search-api --plain`,
	RunE: runChangelog,
}

func init() {
	changelogCmd.GroupID = GroupInspect
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 0, "Number of entries to show (0 = all)")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain text output (no colors)")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return clierrors.MissingSlug()
	}
	if changelogLastFlag < 0 {
		return clierrors.InvalidLimit(changelogLastFlag)
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.dashboard().Deliverable(cmd.Context(), args[0])
	if errors.Is(err, content.ErrNotFound) {
		return clierrors.RecordNotFound(args[0], a.cfg.ContentDir)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rec := page.Deliverable
	title := fmt.Sprintf("%s (%s, %s)", rec.Title(), rec.Owner(), rec.Status().Label())
	if changelogPlainFlag {
		fmt.Fprintln(out, title)
	} else {
		output.PrintHeader(out, title)
	}

	entries := page.Entries
	if len(entries) == 0 {
		fmt.Fprintln(out, "No changelog entries yet.")
		return nil
	}
	if changelogLastFlag > 0 && len(entries) > changelogLastFlag {
		entries = entries[:changelogLastFlag]
	}

	if err := changelog.FormatEntries(entries, out, changelog.FormatOptions{Plain: changelogPlainFlag}); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}
	if len(entries) < len(page.Entries) {
		fmt.Fprintf(out, "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), len(page.Entries), len(page.Entries))
	}
	return nil
}
