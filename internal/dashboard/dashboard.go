// Package dashboard composes the configuration and the file, git and tracker
// sources into the view models rendered by the server, the static export and
// the terminal commands.
//
// Sources are re-read on every call. A source that fails is logged and
// replaced by its empty value so one broken input never hides the others.
package dashboard

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/config"
	"github.com/ariel-frischer/statusboard/internal/content"
	"github.com/ariel-frischer/statusboard/internal/issues"
	"github.com/ariel-frischer/statusboard/internal/logging"
	"github.com/ariel-frischer/statusboard/internal/roadmap"
	"github.com/ariel-frischer/statusboard/internal/stats"
	"golang.org/x/sync/errgroup"
)

// Source names used in logs and in the source error hook.
const (
	SourceContent  = "content"
	SourceSchedule = "schedule"
	SourceStats    = "stats"
	SourceCommits  = "commits"
	SourceIssues   = "issues"
)

// Dashboard builds page view models from the configured sources.
type Dashboard struct {
	cfg     *config.Configuration
	store   *content.Store
	commits CommitSource
	tracker IssueFetcher
	log     logging.Logger
	onError func(source string, err error)
}

// Option customizes a Dashboard.
type Option func(*Dashboard)

// WithLogger sets the logger used for degraded sources.
func WithLogger(l logging.Logger) Option {
	return func(d *Dashboard) { d.log = l }
}

// WithCommitSource replaces the commit source chosen from the configuration.
func WithCommitSource(src CommitSource) Option {
	return func(d *Dashboard) { d.commits = src }
}

// WithIssueFetcher replaces the tracker client.
func WithIssueFetcher(f IssueFetcher) Option {
	return func(d *Dashboard) { d.tracker = f }
}

// WithSourceErrorHook registers fn to be called for every degraded source.
func WithSourceErrorHook(fn func(source string, err error)) Option {
	return func(d *Dashboard) { d.onError = fn }
}

// New returns a Dashboard over cfg.
func New(cfg *config.Configuration, opts ...Option) *Dashboard {
	d := &Dashboard{
		cfg: cfg,
		log: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}

	d.store = content.NewStore(cfg.ContentDir, filepath.Base(cfg.CommitLog))
	d.store.OnSkip = func(_ string, err error) {
		d.fail(SourceContent, err)
	}
	if d.commits == nil {
		d.commits = NewCommitSource(cfg)
	}
	if d.tracker == nil {
		d.tracker = issues.NewClient(cfg.LinearAPIURL, cfg.LinearAPIKey)
	}
	return d
}

// Config returns the configuration the dashboard was built with.
func (d *Dashboard) Config() *config.Configuration { return d.cfg }

// Store returns the content store.
func (d *Dashboard) Store() *content.Store { return d.store }

// Sources is one snapshot of the file inputs.
type Sources struct {
	Records  []content.Deliverable
	Schedule roadmap.Schedule
	Stats    stats.Stats
	Commits  []changelog.Commit
}

type sourceSet uint8

const (
	wantRecords sourceSet = 1 << iota
	wantSchedule
	wantStats
	wantCommits

	wantAll = wantRecords | wantSchedule | wantStats | wantCommits
)

// Load reads every file source concurrently.
func (d *Dashboard) Load(ctx context.Context) (Sources, error) {
	return d.load(ctx, wantAll)
}

// load reads the requested sources concurrently. Source failures degrade to
// empty values; only a cancelled context is returned as an error.
func (d *Dashboard) load(ctx context.Context, want sourceSet) (Sources, error) {
	if err := ctx.Err(); err != nil {
		return Sources{}, err
	}

	src := Sources{
		Records:  []content.Deliverable{},
		Schedule: roadmap.Schedule{},
		Commits:  []changelog.Commit{},
	}

	g, ctx := errgroup.WithContext(ctx)

	if want&wantRecords != 0 {
		g.Go(func() error {
			records, err := d.store.All()
			if err != nil {
				d.fail(SourceContent, err)
				return nil
			}
			src.Records = records
			return nil
		})
	}
	if want&wantSchedule != 0 && d.cfg.SchedulePath != "" {
		g.Go(func() error {
			schedule, err := roadmap.LoadSchedule(d.cfg.SchedulePath)
			if errors.Is(err, fs.ErrNotExist) {
				d.log.Debugf("no schedule at %s", d.cfg.SchedulePath)
				return nil
			}
			if err != nil {
				d.fail(SourceSchedule, err)
				return nil
			}
			src.Schedule = schedule
			return nil
		})
	}
	if want&wantStats != 0 && d.cfg.StatsPath != "" {
		g.Go(func() error {
			s, err := stats.Load(d.cfg.StatsPath)
			if err != nil {
				d.fail(SourceStats, err)
				return nil
			}
			src.Stats = s
			return nil
		})
	}
	if want&wantCommits != 0 {
		g.Go(func() error {
			commits, err := d.commits.Commits(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				d.fail(SourceCommits, err)
				return nil
			}
			src.Commits = commits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Sources{}, err
	}
	return src, nil
}

func (d *Dashboard) fail(source string, err error) {
	d.log.Warnf("%s source degraded: %v", source, err)
	if d.onError != nil {
		d.onError(source, err)
	}
}
