package config

// DefaultLinearAPIURL is the GraphQL endpoint of the issue tracker.
const DefaultLinearAPIURL = "https://api.linear.app/graphql"

// GetDefaults returns the default configuration values as a map
// suitable for loading into koanf
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project":        "project-x",
		"devs":           []interface{}{},
		"environments":   []string{"dev", "prod"},
		"linearTeamKey":  "",
		"content_dir":    "content",
		"stats_path":     "stats.json",
		"schedule_path":  "roadmap.yaml",
		"commit_log":     "commits.md",
		"commit_source":  "file",
		"repo_path":      ".",
		"listen":         ":3000",
		"out_dir":        "out",
		"log_level":      "info",
		"log_file":       "",
		"linear_api_url": DefaultLinearAPIURL,
	}
}
