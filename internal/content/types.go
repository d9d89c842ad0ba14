package content

import "strings"

// Status is the delivery state of a deliverable.
type Status string

const (
	StatusInDev    Status = "in-dev"
	StatusInReview Status = "in-review"
	StatusDeployed Status = "deployed"
	StatusBlocked  Status = "blocked"
	// StatusStaging is only produced by external feeds; the horizon view counts it as shipped.
	StatusStaging Status = "staging"
)

// Statuses returns the frontmatter statuses in pipeline display order.
func Statuses() []Status {
	return []Status{StatusDeployed, StatusInReview, StatusInDev, StatusBlocked}
}

// Label returns the upper-case badge label of the status.
func (s Status) Label() string {
	switch s {
	case StatusInDev:
		return "IN DEV"
	case StatusInReview:
		return "IN REVIEW"
	case StatusDeployed:
		return "DEPLOYED"
	case StatusBlocked:
		return "BLOCKED"
	case StatusStaging:
		return "STAGING"
	default:
		return strings.ToUpper(string(s))
	}
}

// Slug returns the CSS-friendly name of the status ("in-dev" -> "in-dev", "" -> "planned").
func (s Status) Slug() string {
	if s == "" {
		return "planned"
	}
	return string(s)
}

// Environment is the deployment target of a deliverable.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Frontmatter is the metadata block at the top of a record.
type Frontmatter struct {
	Title       string      `yaml:"title" json:"title" validate:"required"`
	Owner       string      `yaml:"owner" json:"owner" validate:"required"`
	Status      Status      `yaml:"status" json:"status" validate:"required,oneof=in-dev in-review deployed blocked"`
	Environment Environment `yaml:"environment" json:"environment" validate:"omitempty,oneof=dev prod"`
}

// Deliverable is a single parsed content record.
type Deliverable struct {
	Slug        string      `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Content     string      `json:"content"`
}

// Title is a shorthand for the frontmatter title.
func (d Deliverable) Title() string { return d.Frontmatter.Title }

// Owner is a shorthand for the frontmatter owner.
func (d Deliverable) Owner() string { return d.Frontmatter.Owner }

// Status is a shorthand for the frontmatter status.
func (d Deliverable) Status() Status { return d.Frontmatter.Status }

// Anchor returns the slug formatted as a section marker ("search-api" -> "SEARCH_API").
func (d Deliverable) Anchor() string {
	return strings.ReplaceAll(strings.ToUpper(d.Slug), "-", "_")
}
