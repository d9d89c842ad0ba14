package cli

import (
	"fmt"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/git"
	"github.com/spf13/cobra"
)

var (
	commitsLastFlag  int
	commitsPlainFlag bool
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Show the commit feed",
	Long: `Show the commit feed, grouped by date.

Commits come from the commit log in the content directory, or from git
history when commit_source is "git" (only commits whose subject starts with
commitPrefix).`,
	Example: `  statusboard commits
  statusboard commits --last 50
  statusboard commits --last 0 --plain`,
	Args: cobra.NoArgs,
	RunE: runCommits,
}

func init() {
	commitsCmd.GroupID = GroupInspect
	rootCmd.AddCommand(commitsCmd)

	commitsCmd.Flags().IntVarP(&commitsLastFlag, "last", "n", 20, "Number of commits to show (0 = all)")
	commitsCmd.Flags().BoolVar(&commitsPlainFlag, "plain", false, "Plain text output (no colors)")
}

func runCommits(cmd *cobra.Command, _ []string) error {
	if commitsLastFlag < 0 {
		return clierrors.InvalidLimit(commitsLastFlag)
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.CommitSource == "git" && !git.IsGitRepository(a.cfg.RepoPath) {
		return clierrors.NotGitRepository(a.cfg.RepoPath)
	}

	page, err := a.dashboard().Commits(cmd.Context(), commitsLastFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(page.Rows) == 0 {
		fmt.Fprintln(out, "No commits recorded yet.")
		return nil
	}

	commits := make([]changelog.Commit, len(page.Rows))
	for i, r := range page.Rows {
		commits[i] = r.Commit
	}
	if err := changelog.FormatCommits(commits, out, changelog.FormatOptions{Plain: commitsPlainFlag}); err != nil {
		return fmt.Errorf("formatting commits: %w", err)
	}
	return nil
}
