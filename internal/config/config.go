// Package config loads the project configuration of the dashboard using koanf.
// Values are layered: defaults, then the project config file
// (project.config.json by default, YAML accepted), then STATUSBOARD_*
// environment variables. The result is built once by the caller and passed
// down explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STATUSBOARD_"

// APIKeyEnv holds the issue tracker API key. It is never read from files.
const APIKeyEnv = "LINEAR_API_KEY"

// ConfigSource tracks where the configuration came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceProject ConfigSource = "project"
)

// Dev is a team member and the deliverable titles they committed to.
type Dev struct {
	Name         string   `koanf:"name" json:"name" validate:"required"`
	Deliverables []string `koanf:"deliverables" json:"deliverables"`
}

// Configuration represents the dashboard configuration
type Configuration struct {
	// Project is the display name of the project.
	Project string `koanf:"project" validate:"required"`
	// Devs lists the team in display order.
	Devs []Dev `koanf:"devs" validate:"dive"`
	// Environments lists the deployment targets shown on the overview.
	Environments []string `koanf:"environments" validate:"dive,oneof=dev prod"`
	// CommitPrefix marks the commits that belong to the project. Defaults to "[<project>]".
	CommitPrefix string `koanf:"commitPrefix"`
	// LinearTeamKey selects the issue tracker team. Empty disables the issues page.
	LinearTeamKey string `koanf:"linearTeamKey"`

	ContentDir   string `koanf:"content_dir" validate:"required"`
	StatsPath    string `koanf:"stats_path"`
	SchedulePath string `koanf:"schedule_path"`
	// CommitLog is the commit log file name inside ContentDir.
	CommitLog    string `koanf:"commit_log" validate:"required"`
	CommitSource string `koanf:"commit_source" validate:"oneof=file git"`
	RepoPath     string `koanf:"repo_path"`

	Listen   string `koanf:"listen" validate:"required"`
	OutDir   string `koanf:"out_dir" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `koanf:"log_file"`

	LinearAPIURL string `koanf:"linear_api_url" validate:"required,url"`

	// LinearAPIKey is read from LINEAR_API_KEY.
	LinearAPIKey string `koanf:"-"`
	// Source is where the project values came from.
	Source ConfigSource `koanf:"-"`
	// Path is the project config file that was read, empty for defaults.
	Path string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: project.config.json)
	ProjectConfigPath string
	// SkipEnv ignores environment overrides.
	SkipEnv bool
}

// Load loads configuration from the project file and the environment.
// Priority: Environment variables > Project config > Defaults.
// A missing project file is not an error.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	path := opts.ProjectConfigPath
	if path == "" {
		path = ProjectConfigPath()
	}
	source, err := loadProjectConfig(k, path)
	if err != nil {
		return nil, err
	}

	if !opts.SkipEnv {
		if err := loadEnvironmentConfig(k); err != nil {
			return nil, err
		}
	}

	cfg, err := finalizeConfig(k, path)
	if err != nil {
		return nil, err
	}
	cfg.Source = source
	if source == SourceProject {
		cfg.Path = path
	}
	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project file when it exists, choosing the
// parser by extension.
func loadProjectConfig(k *koanf.Koanf, path string) (ConfigSource, error) {
	if !fileExists(path) {
		return SourceDefault, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := ValidateYAMLSyntax(path); err != nil {
			return "", fmt.Errorf("validating YAML syntax for project config: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return "", fmt.Errorf("failed to load project config %s: %w", path, err)
		}
	default:
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return "", fmt.Errorf("failed to load project config %s: %w", path, err)
		}
	}
	return SourceProject, nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, fills derived values and validates.
func finalizeConfig(k *koanf.Koanf, path string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.CommitPrefix == "" {
		cfg.CommitPrefix = "[" + cfg.Project + "]"
	}
	cfg.LinearAPIKey = os.Getenv(APIKeyEnv)
	cfg.ContentDir = expandHomePath(cfg.ContentDir)
	cfg.OutDir = expandHomePath(cfg.OutDir)
	cfg.RepoPath = expandHomePath(cfg.RepoPath)

	if err := ValidateConfigValues(&cfg, path); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// camelKeys maps env-derived keys onto the camelCase keys of project.config.json.
var camelKeys = map[string]string{
	"commit_prefix":   "commitPrefix",
	"linear_team_key": "linearTeamKey",
}

// envTransform converts environment variable names to config keys
// Example: STATUSBOARD_CONTENT_DIR -> content_dir, STATUSBOARD_COMMIT_PREFIX -> commitPrefix
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if camel, ok := camelKeys[key]; ok {
		return camel
	}
	return key
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// HasMultipleEnvironments reports whether the overview should group records by
// environment.
func HasMultipleEnvironments(cfg *Configuration) bool {
	return len(cfg.Environments) > 1
}

// DevNames returns the configured developer names in order.
func (c *Configuration) DevNames() []string {
	names := make([]string, 0, len(c.Devs))
	for _, d := range c.Devs {
		names = append(names, d.Name)
	}
	return names
}

// CommitLogPath returns the commit log location.
func (c *Configuration) CommitLogPath() string {
	if filepath.IsAbs(c.CommitLog) {
		return c.CommitLog
	}
	return filepath.Join(c.ContentDir, c.CommitLog)
}

// IssuesEnabled reports whether a tracker team is configured.
func (c *Configuration) IssuesEnabled() bool {
	return c.LinearTeamKey != ""
}
