// Package health provides content diagnostics for statusboard. It checks that
// the configured sources load and reports records with bad frontmatter and
// plan items with no matching record, for the 'statusboard check' command.
package health

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/config"
	"github.com/ariel-frischer/statusboard/internal/content"
	"github.com/ariel-frischer/statusboard/internal/git"
	"github.com/ariel-frischer/statusboard/internal/roadmap"
	"github.com/ariel-frischer/statusboard/internal/stats"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Warning marks a passed check with findings worth reading.
	Warning bool
	Details []string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// RunHealthChecks runs all checks against cfg. The report fails when a
// record, the schedule or the stats file cannot be parsed.
func RunHealthChecks(cfg *config.Configuration) *HealthReport {
	report := &HealthReport{Passed: true}

	records, recordCheck := CheckRecords(cfg)
	checks := []CheckResult{
		CheckConfig(cfg),
		recordCheck,
		CheckFrontmatter(records),
		CheckSchedule(cfg, records),
		CheckStats(cfg),
		CheckCommits(cfg),
		CheckIssues(cfg),
	}

	for _, c := range checks {
		report.Checks = append(report.Checks, c)
		if !c.Passed {
			report.Passed = false
		}
	}
	return report
}

// CheckConfig reports where the configuration came from.
func CheckConfig(cfg *config.Configuration) CheckResult {
	result := CheckResult{Name: "Config", Passed: true}
	if cfg.Source == config.SourceProject {
		result.Message = fmt.Sprintf("loaded %s (project %q)", cfg.Path, cfg.Project)
		return result
	}
	result.Message = fmt.Sprintf("no %s found, using defaults (project %q)", config.ProjectConfigFile, cfg.Project)
	result.Warning = true
	return result
}

// CheckRecords loads every record and lists the files that failed to parse.
func CheckRecords(cfg *config.Configuration) ([]content.Deliverable, CheckResult) {
	result := CheckResult{Name: "Records", Passed: true}

	var skipped []string
	store := content.NewStore(cfg.ContentDir, filepath.Base(cfg.CommitLog))
	store.OnSkip = func(path string, err error) {
		skipped = append(skipped, fmt.Sprintf("%s: %v", filepath.Base(path), err))
	}

	records, err := store.All()
	if err != nil {
		result.Passed = false
		result.Message = err.Error()
		return nil, result
	}

	result.Details = skipped
	if len(skipped) > 0 {
		result.Passed = false
		result.Message = fmt.Sprintf("%d records loaded, %d failed to parse", len(records), len(skipped))
		return records, result
	}
	if len(records) == 0 {
		result.Warning = true
		result.Message = fmt.Sprintf("no records in %s", cfg.ContentDir)
		return records, result
	}
	result.Message = fmt.Sprintf("%d records loaded from %s", len(records), cfg.ContentDir)
	return records, result
}

// CheckFrontmatter lists records whose frontmatter fails validation. Such
// records are still rendered, so this never fails the report.
func CheckFrontmatter(records []content.Deliverable) CheckResult {
	result := CheckResult{Name: "Frontmatter", Passed: true}
	for _, r := range records {
		for _, fe := range r.Frontmatter.Validate() {
			result.Details = append(result.Details, fmt.Sprintf("%s: %s", r.Slug, fe.Error()))
		}
	}
	if len(result.Details) > 0 {
		result.Warning = true
		result.Message = fmt.Sprintf("%d problems", len(result.Details))
		return result
	}
	result.Message = "all records valid"
	return result
}

// CheckSchedule loads the schedule and lists plan items with no matching
// record.
func CheckSchedule(cfg *config.Configuration, records []content.Deliverable) CheckResult {
	result := CheckResult{Name: "Schedule", Passed: true}
	if cfg.SchedulePath == "" {
		result.Message = "no schedule configured"
		return result
	}

	schedule, err := roadmap.LoadSchedule(cfg.SchedulePath)
	if errors.Is(err, fs.ErrNotExist) {
		result.Warning = true
		result.Message = fmt.Sprintf("%s not found, roadmap is empty", cfg.SchedulePath)
		return result
	}
	if err != nil {
		result.Passed = false
		result.Message = err.Error()
		return result
	}

	items := roadmap.Reconcile(schedule, records, cfg.DevNames())
	unmatched := roadmap.Unmatched(items)
	for _, it := range unmatched {
		result.Details = append(result.Details, fmt.Sprintf("%s / %s: %s", it.Week, it.Dev, it.Title))
	}

	summary := roadmap.Summarize(schedule, records)
	result.Message = fmt.Sprintf("%d weeks, %d planned, %d%% complete", len(schedule), summary.Planned, summary.Percent)
	if len(unmatched) > 0 {
		result.Warning = true
		result.Message += fmt.Sprintf(", %d with no matching record", len(unmatched))
	}
	return result
}

// CheckStats loads the stats file.
func CheckStats(cfg *config.Configuration) CheckResult {
	result := CheckResult{Name: "Stats", Passed: true}
	if cfg.StatsPath == "" {
		result.Message = "no stats file configured"
		return result
	}

	s, err := stats.Load(cfg.StatsPath)
	if err != nil {
		result.Passed = false
		result.Message = err.Error()
		return result
	}
	if s.Empty() {
		result.Warning = true
		result.Message = fmt.Sprintf("no line data in %s", cfg.StatsPath)
		return result
	}

	result.Message = fmt.Sprintf("%d days, devs: %s", len(s.Daily), strings.Join(s.DevNames(), ", "))
	if s.LastUpdated != "" {
		result.Message += ", updated " + s.LastUpdated
	}
	return result
}

// CheckCommits reports the commit source.
func CheckCommits(cfg *config.Configuration) CheckResult {
	result := CheckResult{Name: "Commits", Passed: true}

	if cfg.CommitSource == "git" {
		if !git.IsGitRepository(cfg.RepoPath) {
			result.Warning = true
			result.Message = fmt.Sprintf("%s is not a git repository, commit feed is empty", cfg.RepoPath)
			return result
		}
		rev, err := git.HeadRevision(cfg.RepoPath)
		if err != nil {
			result.Warning = true
			result.Message = fmt.Sprintf("git repository has no commits: %v", err)
			return result
		}
		root, err := git.GetRepositoryRoot(cfg.RepoPath)
		if err != nil {
			root = cfg.RepoPath
		}
		result.Message = fmt.Sprintf("git history at %s (HEAD %s, prefix %q)", root, rev, cfg.CommitPrefix)
		return result
	}

	path := cfg.CommitLogPath()
	text, err := content.NewStore(filepath.Dir(path)).ReadFile(filepath.Base(path))
	if err != nil {
		result.Passed = false
		result.Message = err.Error()
		return result
	}
	commits := changelog.ParseCommits(text)
	if len(commits) == 0 {
		result.Warning = true
		result.Message = fmt.Sprintf("no commits in %s", path)
		return result
	}
	result.Message = fmt.Sprintf("%d commits in %s", len(commits), path)
	return result
}

// CheckIssues reports whether the issues page can reach the tracker. It does
// not call the tracker.
func CheckIssues(cfg *config.Configuration) CheckResult {
	result := CheckResult{Name: "Issues", Passed: true}
	switch {
	case !cfg.IssuesEnabled():
		result.Message = "no linearTeamKey configured, issues page disabled"
	case cfg.LinearAPIKey == "":
		result.Warning = true
		result.Message = fmt.Sprintf("team %s configured but %s is not set", cfg.LinearTeamKey, config.APIKeyEnv)
	default:
		result.Message = fmt.Sprintf("team %s via %s", cfg.LinearTeamKey, cfg.LinearAPIURL)
	}
	return result
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		switch {
		case !check.Passed:
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		case check.Warning:
			output += fmt.Sprintf("⚠ %s: %s\n", check.Name, check.Message)
		default:
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		}
		for _, d := range check.Details {
			output += fmt.Sprintf("    - %s\n", d)
		}
	}

	return output
}
