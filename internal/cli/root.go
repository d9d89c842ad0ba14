// Package cli implements the statusboard command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/version"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupDashboard = "dashboard"
	GroupInspect   = "inspect"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "statusboard",
	Short: "Project status dashboard built from flat content files",
	Long: `statusboard renders a project status dashboard from a directory of
deliverable records (Markdown with YAML frontmatter), a weekly roadmap
schedule, a stats file and a commit log.

It serves the dashboard over HTTP, exports it as a static site, and prints
the same numbers in the terminal.`,
	Example: `  # Serve the dashboard on :3000
  statusboard serve

  # Export a static site into ./out and rebuild on changes
  statusboard build --watch

  # Print the project summary
  statusboard status

  # Validate content files
  statusboard check --config project.config.json`,
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupDashboard, Title: "Dashboard:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspect content:"},
	)
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default project.config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log_level: debug, info, warn or error")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command until it returns or the process is
// interrupted, and prints the error, if any.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	report(rootCmd.ErrOrStderr(), err)
	return err
}

// report prints err unless its output was already written.
func report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
}
