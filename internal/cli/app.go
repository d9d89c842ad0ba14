package cli

import (
	"fmt"

	"github.com/ariel-frischer/statusboard/internal/config"
	"github.com/ariel-frischer/statusboard/internal/dashboard"
	clierrors "github.com/ariel-frischer/statusboard/internal/errors"
	"github.com/ariel-frischer/statusboard/internal/git"
	"github.com/ariel-frischer/statusboard/internal/logging"
	"github.com/spf13/cobra"
)

// app holds what every command builds once: the configuration and the
// root logger.
type app struct {
	cfg  *config.Configuration
	logs *logging.Root
}

// loadApp loads the project configuration named by --config and applies
// --log-level. Logs go to log_file or the command's stderr.
func loadApp(cmd *cobra.Command) (*app, error) {
	path := configPath
	if path == "" {
		path = config.ProjectConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(path, err)
	}

	if logLevel != "" {
		switch logLevel {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = logLevel
		default:
			return nil, clierrors.NewArgumentError(
				fmt.Sprintf("invalid --log-level %q", logLevel),
				"Use one of: debug, info, warn, error",
			)
		}
	}

	logs := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Out:   cmd.ErrOrStderr(),
	})
	git.SetDebugLogger(logs.For("git").Debugf)
	return &app{cfg: cfg, logs: logs}, nil
}

// Close flushes the log file.
func (a *app) Close() {
	_ = a.logs.Close()
}

// dashboard builds the dashboard with the app logger.
func (a *app) dashboard(opts ...dashboard.Option) *dashboard.Dashboard {
	opts = append([]dashboard.Option{dashboard.WithLogger(a.logs.For("dashboard"))}, opts...)
	return dashboard.New(a.cfg, opts...)
}
