package cli

import (
	"github.com/ariel-frischer/statusboard/internal/dashboard"
	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the dashboard over HTTP.

Every request re-reads the content directory, the schedule, the stats file
and the commit log, so edits show up on the next page load. Prometheus
metrics are exposed on /metrics and a liveness probe on /healthz.`,
	Example: `  statusboard serve
  statusboard serve --listen 127.0.0.1:8080
  STATUSBOARD_LISTEN=:9000 statusboard serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.GroupID = GroupDashboard
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (overrides listen)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Listen
	if serveListen != "" {
		addr = serveListen
	}
	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics, err := server.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "registering metrics")
	}
	renderer, err := server.NewRenderer()
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "loading templates")
	}

	dash := a.dashboard(dashboard.WithSourceErrorHook(metrics.SourceFailed))
	srv := server.New(dash, renderer, server.Options{
		Logger:  a.logs.For("http"),
		Metrics: metrics,
	})

	if err := srv.Run(cmd.Context(), addr); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime,
			"serving on "+addr,
			"Pick another address with --listen or STATUSBOARD_LISTEN",
		)
	}
	return nil
}
