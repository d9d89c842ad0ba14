// Package content loads deliverable records from the content directory.
//
// Each record is a markdown file opening with a `---` fenced YAML frontmatter
// block (title, owner, status, environment) followed by the body that holds
// the `### <date>` changelog. The slug of a record is its filename without
// extension. Records are re-read on every call; nothing is cached.
package content
