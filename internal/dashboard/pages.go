package dashboard

import (
	"context"
	"errors"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/config"
	"github.com/ariel-frischer/statusboard/internal/content"
	"github.com/ariel-frischer/statusboard/internal/issues"
	"github.com/ariel-frischer/statusboard/internal/roadmap"
	"github.com/ariel-frischer/statusboard/internal/stats"
)

// Card is a record with the latest entry of its changelog.
type Card struct {
	Deliverable content.Deliverable
	LatestEntry string
}

// OwnerGroup is the cards of one owner.
type OwnerGroup struct {
	Owner string
	Cards []Card
}

// Pipeline splits the records between the dev and prod environments.
type Pipeline struct {
	Dev  []Card
	Prod []Card
}

// Timeline is the phase view of all records.
type Timeline struct {
	Phases  []roadmap.Phase
	Shipped int
	Total   int
	Percent int
}

// Overview is the landing page.
type Overview struct {
	Project      string
	DevCount     int
	Counts       content.Counts
	ShowPipeline bool
	Pipeline     Pipeline
	OnTrack      []roadmap.Progress
	Chart        stats.Chart
	HasChart     bool
	StatsUpdated string
	Timeline     Timeline
	Owners       []OwnerGroup
}

// Overview builds the landing page.
func (d *Dashboard) Overview(ctx context.Context) (Overview, error) {
	src, err := d.load(ctx, wantRecords|wantStats)
	if err != nil {
		return Overview{}, err
	}
	records := src.Records

	ov := Overview{
		Project:      d.cfg.Project,
		DevCount:     len(d.cfg.Devs),
		Counts:       content.CountByStatus(records),
		ShowPipeline: config.HasMultipleEnvironments(d.cfg),
		OnTrack:      roadmap.OnTrack(Targets(d.cfg), records),
		StatsUpdated: src.Stats.LastUpdated,
		Timeline:     buildTimeline(records),
		Owners:       []OwnerGroup{},
	}
	ov.Chart, ov.HasChart = stats.Layout(src.Stats)

	if ov.ShowPipeline {
		ov.Pipeline = Pipeline{
			Dev:  cards(content.FilterEnvironment(records, content.EnvDev)),
			Prod: cards(content.FilterEnvironment(records, content.EnvProd)),
		}
	}
	for _, g := range content.GroupByOwner(records) {
		ov.Owners = append(ov.Owners, OwnerGroup{Owner: g.Key, Cards: cards(g.Items)})
	}
	return ov, nil
}

// RoadmapPage is the plan-versus-records grid.
type RoadmapPage struct {
	Project string
	Devs    []string
	Rows    []roadmap.Row
	Summary roadmap.Summary
	Horizon roadmap.Horizon
}

// Roadmap builds the roadmap page.
func (d *Dashboard) Roadmap(ctx context.Context) (RoadmapPage, error) {
	src, err := d.load(ctx, wantRecords|wantSchedule)
	if err != nil {
		return RoadmapPage{}, err
	}

	devOrder := d.cfg.DevNames()
	return RoadmapPage{
		Project: d.cfg.Project,
		Devs:    roadmap.DevOrder(src.Schedule, devOrder),
		Rows:    roadmap.Grid(src.Schedule, src.Records, devOrder),
		Summary: roadmap.Summarize(src.Schedule, src.Records),
		Horizon: roadmap.BuildHorizon(src.Schedule, src.Records, devOrder),
	}, nil
}

// DeliverablePage is one record and its changelog.
type DeliverablePage struct {
	Project     string
	Deliverable content.Deliverable
	Entries     []changelog.Entry
	LastDate    string
}

// Deliverable builds the page of the record with the given slug. It returns
// content.ErrNotFound when the record is missing or cannot be parsed.
func (d *Dashboard) Deliverable(ctx context.Context, slug string) (DeliverablePage, error) {
	if err := ctx.Err(); err != nil {
		return DeliverablePage{}, err
	}

	rec, err := d.store.Get(slug)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			d.fail(SourceContent, err)
		}
		return DeliverablePage{}, content.ErrNotFound
	}

	page := DeliverablePage{
		Project:     d.cfg.Project,
		Deliverable: rec,
		Entries:     changelog.ParseChangelog(rec.Content),
	}
	page.LastDate, _ = changelog.LastDate(rec.Content)
	return page, nil
}

// CommitRow is one line of the commit feed.
type CommitRow struct {
	changelog.Commit
	// ShowDate marks the first commit of a date run.
	ShowDate bool
}

// CommitsPage is the commit feed.
type CommitsPage struct {
	Project string
	Rows    []CommitRow
}

// Commits builds the commit feed. A positive limit keeps only the newest
// commits.
func (d *Dashboard) Commits(ctx context.Context, limit int) (CommitsPage, error) {
	src, err := d.load(ctx, wantCommits)
	if err != nil {
		return CommitsPage{}, err
	}

	commits := src.Commits
	if limit > 0 {
		commits = changelog.GetLastN(commits, limit)
	}

	breaks := changelog.DateBreaks(commits)
	rows := make([]CommitRow, len(commits))
	for i, c := range commits {
		rows[i] = CommitRow{Commit: c, ShowDate: breaks[i]}
	}
	return CommitsPage{Project: d.cfg.Project, Rows: rows}, nil
}

// IssuesPage mirrors the tracker issues of the configured team.
type IssuesPage struct {
	Project    string
	TeamKey    string
	Configured bool
	Error      string
	Groups     []issues.Group
	Total      int
}

// Issues builds the issues page. Tracker failures are reported in Error.
func (d *Dashboard) Issues(ctx context.Context) (IssuesPage, error) {
	page := IssuesPage{
		Project:    d.cfg.Project,
		TeamKey:    d.cfg.LinearTeamKey,
		Configured: d.cfg.IssuesEnabled(),
		Groups:     []issues.Group{},
	}
	if !page.Configured {
		return page, nil
	}

	list, err := d.tracker.FetchIssues(ctx, page.TeamKey)
	if err != nil {
		if ctx.Err() != nil {
			return IssuesPage{}, ctx.Err()
		}
		d.fail(SourceIssues, err)
		page.Error = issueError(err)
		return page, nil
	}

	page.Groups = issues.GroupByStateType(list)
	page.Total = len(list)
	return page, nil
}

func issueError(err error) string {
	switch {
	case errors.Is(err, issues.ErrNoAPIKey):
		return config.APIKeyEnv + " is not set"
	case errors.Is(err, issues.ErrNoTeam):
		return "no team key configured"
	default:
		return err.Error()
	}
}

// Targets converts the configured developers into on-track targets.
func Targets(cfg *config.Configuration) []roadmap.Target {
	targets := make([]roadmap.Target, 0, len(cfg.Devs))
	for _, dev := range cfg.Devs {
		targets = append(targets, roadmap.Target{Dev: dev.Name, Deliverables: dev.Deliverables})
	}
	return targets
}

func cards(records []content.Deliverable) []Card {
	out := make([]Card, 0, len(records))
	for _, r := range records {
		entry, _ := changelog.LatestEntry(r.Content)
		out = append(out, Card{Deliverable: r, LatestEntry: entry})
	}
	return out
}

func buildTimeline(records []content.Deliverable) Timeline {
	shipped := content.CountByStatus(records).Deployed
	return Timeline{
		Phases:  roadmap.Phases(records),
		Shipped: shipped,
		Total:   len(records),
		Percent: roadmap.CompletionPercent(shipped, len(records)),
	}
}
