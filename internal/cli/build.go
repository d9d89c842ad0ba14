package cli

import (
	"fmt"

	"github.com/ariel-frischer/statusboard/internal/config"
	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/export"
	"github.com/ariel-frischer/statusboard/internal/output"
	"github.com/ariel-frischer/statusboard/internal/progress"
	"github.com/ariel-frischer/statusboard/internal/server"
	"github.com/spf13/cobra"
)

var (
	buildOut   string
	buildWatch bool
	buildClean bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the dashboard as a static site",
	Long: `Export the dashboard as a static site.

Writes index.html, roadmap/, commits/, one deliverable/<slug>/ page per
record and 404.html into out_dir. The issues page needs live tracker data
and is not exported.

With --watch the site is rebuilt whenever a record, the schedule, the stats
file or the commit log changes.`,
	Example: `  statusboard build
  statusboard build --out public
  statusboard build --watch`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.GroupID = GroupDashboard
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory (overrides out_dir)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild on content changes")
	buildCmd.Flags().BoolVar(&buildClean, "clean", true, "Remove the previous export first")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	outDir := a.cfg.OutDir
	if buildOut != "" {
		outDir = buildOut
	}
	if buildClean {
		if err := export.Clean(outDir); err != nil {
			return clierrors.UnsafeOutputDir(outDir, err)
		}
	}

	renderer, err := server.NewRenderer()
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "loading templates")
	}
	exp := export.New(a.dashboard(), renderer, outDir, a.logs.For("export"))

	out := cmd.OutOrStdout()
	spin := progress.NewSpinner(out, progress.DetectTerminalCapabilities())
	spin.Start("Building " + outDir)
	res, err := exp.Build(cmd.Context())
	if err != nil {
		spin.Fail(err.Error())
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "building static site")
	}
	spin.Success(fmt.Sprintf("%d pages", len(res.Pages)))

	if !buildWatch {
		return nil
	}

	fmt.Fprintln(out, "Watching for changes (Ctrl+C to stop)")
	w := export.NewWatcher(exp, watchPaths(a.cfg), export.OnBuild(func(res export.Result, err error) {
		if err == nil {
			output.PrintSuccess(out, fmt.Sprintf("rebuilt %d pages", len(res.Pages)))
		}
	}))
	return w.Watch(cmd.Context())
}

// watchPaths lists the sources a rebuild depends on.
func watchPaths(cfg *config.Configuration) []string {
	paths := []string{cfg.ContentDir, cfg.StatsPath, cfg.SchedulePath}
	if cfg.CommitSource != "git" {
		paths = append(paths, cfg.CommitLogPath())
	}
	return paths
}
