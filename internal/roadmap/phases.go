package roadmap

import (
	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/content"
)

// phaseLabels name the timeline groups.
var phaseLabels = map[content.Status]string{
	content.StatusDeployed: "SHIPPED",
	content.StatusInReview: "IN REVIEW",
	content.StatusInDev:    "IN PROGRESS",
	content.StatusBlocked:  "BLOCKED",
}

// Milestone is a record placed on the phase timeline.
type Milestone struct {
	Deliverable content.Deliverable
	LastDate    string
	LatestEntry string
}

// Phase groups records sharing a status.
type Phase struct {
	Status content.Status
	Label  string
	Items  []Milestone
}

// Phases groups records by status in pipeline order, omitting empty groups.
// Records with a status outside the pipeline are left out.
func Phases(records []content.Deliverable) []Phase {
	var phases []Phase
	for _, status := range content.Statuses() {
		var items []Milestone
		for _, r := range records {
			if r.Frontmatter.Status != status {
				continue
			}
			m := Milestone{Deliverable: r}
			m.LastDate, _ = changelog.LastDate(r.Content)
			m.LatestEntry, _ = changelog.LatestEntry(r.Content)
			items = append(items, m)
		}
		if len(items) > 0 {
			phases = append(phases, Phase{Status: status, Label: phaseLabels[status], Items: items})
		}
	}
	return phases
}
