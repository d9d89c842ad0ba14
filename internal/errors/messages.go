package errors

import (
	"fmt"

	"github.com/ariel-frischer/statusboard/internal/config"
)

// Common error messages for the statusboard CLI.

// ConfigLoadFailed reports a project config that could not be loaded.
func ConfigLoadFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("loading %s", path),
		"Check the file for syntax errors",
		fmt.Sprintf("Environment overrides use the %s prefix, e.g. %sCONTENT_DIR", config.EnvPrefix, config.EnvPrefix),
		"Run 'statusboard check' to validate the project",
	)
}

// RecordNotFound reports a slug with no deliverable record.
func RecordNotFound(slug, contentDir string) *CLIError {
	return NewContentError(
		fmt.Sprintf("no deliverable %q in %s", slug, contentDir),
		"The slug is the record file name without .md or .mdx",
		fmt.Sprintf("List records with: ls %s", contentDir),
	)
}

// InvalidLimit reports a negative --last value.
func InvalidLimit(n int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("--last must be zero or positive, got %d", n),
		"statusboard commits --last <N>",
		"Use --last 0 to show every commit",
	)
}

// MissingSlug reports the changelog command called without a slug.
func MissingSlug() *CLIError {
	return NewArgumentErrorWithUsage(
		"deliverable slug is required",
		"statusboard changelog <slug>",
		"Example: statusboard changelog search-api",
	)
}

// NotGitRepository reports a git commit source pointing outside a repository.
func NotGitRepository(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("%s is not a git repository", path),
		"Set repo_path to the repository root",
		"Or set commit_source to \"file\" to read the commit log from the content directory",
	)
}

// UnsafeOutputDir reports an output directory that build refuses to clean.
func UnsafeOutputDir(dir string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("cannot clean output directory %s", dir),
		"Point out_dir at a directory used only for the static export",
		"Or remove the directory by hand and run 'statusboard build' again",
	)
}

// ChecksFailed reports a failed 'statusboard check'.
func ChecksFailed() *CLIError {
	return NewContentError(
		"one or more checks failed",
		"Fix the files listed above and run 'statusboard check' again",
	)
}
