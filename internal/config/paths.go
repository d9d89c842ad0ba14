package config

// ProjectConfigFile is the default project config file name.
const ProjectConfigFile = "project.config.json"

// ProjectConfigPath returns the path to the project-level config file.
// This is always project.config.json relative to the current directory.
func ProjectConfigPath() string {
	return ProjectConfigFile
}
