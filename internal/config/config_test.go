package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), ProjectConfigFile),
		SkipEnv:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, cfg.Source)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, "project-x", cfg.Project)
	assert.Empty(t, cfg.Devs)
	assert.Equal(t, []string{"dev", "prod"}, cfg.Environments)
	assert.Equal(t, "[project-x]", cfg.CommitPrefix)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, filepath.Join("content", "commits.md"), cfg.CommitLogPath())
	assert.Equal(t, ":3000", cfg.Listen)
	assert.Equal(t, "file", cfg.CommitSource)
	assert.Equal(t, DefaultLinearAPIURL, cfg.LinearAPIURL)
	assert.False(t, cfg.IssuesEnabled())
	assert.True(t, HasMultipleEnvironments(cfg))
}

func TestLoad_ProjectJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "project.config.json", `{
  "project": "atlas",
  "devs": [
    {"name": "Alice", "deliverables": ["Search API", "Auth"]},
    {"name": "Bob", "deliverables": []}
  ],
  "environments": ["prod"],
  "linearTeamKey": "ATL",
  "content_dir": "docs"
}`)

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, SourceProject, cfg.Source)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "atlas", cfg.Project)
	assert.Equal(t, "[atlas]", cfg.CommitPrefix, "prefix follows the project name")
	assert.Equal(t, []string{"Alice", "Bob"}, cfg.DevNames())
	assert.Equal(t, []string{"Search API", "Auth"}, cfg.Devs[0].Deliverables)
	assert.Equal(t, []string{"prod"}, cfg.Environments)
	assert.False(t, HasMultipleEnvironments(cfg))
	assert.True(t, cfg.IssuesEnabled())
	assert.Equal(t, "docs", cfg.ContentDir)
	assert.Equal(t, "stats.json", cfg.StatsPath, "unset keys keep defaults")
}

func TestLoad_ExplicitCommitPrefix(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "project.config.json", `{"project": "atlas", "commitPrefix": "ATLAS:"}`)

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "ATLAS:", cfg.CommitPrefix)
}

func TestLoad_ProjectYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "statusboard.yaml", `
project: atlas
devs:
  - name: Alice
    deliverables: [Search API]
commit_source: git
`)

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "atlas", cfg.Project)
	assert.Equal(t, "git", cfg.CommitSource)
	assert.Equal(t, []string{"Alice"}, cfg.DevNames())
}

func TestLoad_InvalidFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name      string
		body      string
		wantField string
	}{
		"malformed json": {
			name: "project.config.json",
			body: `{"project": `,
		},
		"malformed yaml": {
			name: "project.yaml",
			body: "project: [atlas\n",
		},
		"unknown environment": {
			name:      "project.config.json",
			body:      `{"environments": ["dev", "qa"]}`,
			wantField: "environments[1]",
		},
		"unknown commit source": {
			name:      "project.config.json",
			body:      `{"commit_source": "svn"}`,
			wantField: "commit_source",
		},
		"dev without name": {
			name:      "project.config.json",
			body:      `{"devs": [{"deliverables": ["X"]}]}`,
			wantField: "devs[0].name",
		},
		"bad log level": {
			name:      "project.config.json",
			body:      `{"log_level": "loud"}`,
			wantField: "log_level",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tt.name, tt.body)
			_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipEnv: true})
			require.Error(t, err)

			if tt.wantField != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
				assert.Equal(t, tt.wantField, verr.Field)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "project.config.json", `{"project": "atlas", "content_dir": "docs"}`)

	t.Setenv("STATUSBOARD_CONTENT_DIR", "records")
	t.Setenv("STATUSBOARD_COMMIT_PREFIX", "[override]")
	t.Setenv("STATUSBOARD_LISTEN", ":8080")
	t.Setenv(APIKeyEnv, "lin_api_test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "records", cfg.ContentDir)
	assert.Equal(t, "[override]", cfg.CommitPrefix)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "lin_api_test", cfg.LinearAPIKey)
	assert.Equal(t, "atlas", cfg.Project)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"STATUSBOARD_CONTENT_DIR":     "content_dir",
		"STATUSBOARD_COMMIT_PREFIX":   "commitPrefix",
		"STATUSBOARD_LINEAR_TEAM_KEY": "linearTeamKey",
		"STATUSBOARD_PROJECT":         "project",
	}
	for in, want := range tests {
		assert.Equal(t, want, envTransform(in), in)
	}
}

func TestCommitLogPath_Absolute(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "log.md")
	cfg := &Configuration{ContentDir: "content", CommitLog: abs}
	assert.Equal(t, abs, cfg.CommitLogPath())
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p.json:3:4: bad", (&ValidationError{FilePath: "p.json", Line: 3, Column: 4, Message: "bad"}).Error())
	assert.Equal(t, "p.json: field 'listen': is required", (&ValidationError{FilePath: "p.json", Field: "listen", Message: "is required"}).Error())
	assert.Equal(t, "p.json: bad", (&ValidationError{FilePath: "p.json", Message: "bad"}).Error())
}
