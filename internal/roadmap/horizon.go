package roadmap

import "github.com/ariel-frischer/statusboard/internal/content"

// HorizonItem is one point on the horizontal timeline.
type HorizonItem struct {
	Title           string         `json:"title"`
	Dev             string         `json:"dev"`
	Sprint          string         `json:"sprint"`
	IsFirstInSprint bool           `json:"isFirstInSprint"`
	Status          content.Status `json:"status"`
	Slug            string         `json:"slug"`
}

// Initial returns the first letter of the developer name.
func (h HorizonItem) Initial() string {
	for _, r := range h.Dev {
		return string(r)
	}
	return ""
}

// Horizon is the deduplicated timeline and the index of its last shipped item
// (-1 when nothing shipped).
type Horizon struct {
	Items            []HorizonItem `json:"items"`
	LastShippedIndex int           `json:"lastShippedIndex"`
}

// IsShipped reports whether a status counts as shipped on the timeline.
func IsShipped(status content.Status) bool {
	return status == content.StatusDeployed || status == content.StatusStaging
}

// BuildHorizon flattens the schedule into timeline order. A (title, dev) pair
// planned in several weeks appears once, at its first week.
func BuildHorizon(schedule Schedule, records []content.Deliverable, devOrder []string) Horizon {
	type key struct{ title, dev string }

	devs := DevOrder(schedule, devOrder)
	seen := make(map[key]bool)
	h := Horizon{Items: []HorizonItem{}, LastShippedIndex: -1}

	for _, w := range schedule {
		first := true
		for _, dev := range devs {
			for _, plan := range w.Items(dev) {
				k := key{plan.Title, dev}
				if seen[k] {
					continue
				}
				seen[k] = true

				item := HorizonItem{
					Title:           plan.Title,
					Dev:             dev,
					Sprint:          w.Week,
					IsFirstInSprint: first,
				}
				if r, ok := Match(records, plan.Title, dev); ok {
					item.Status = r.Frontmatter.Status
					item.Slug = r.Slug
				}
				h.Items = append(h.Items, item)
				first = false
			}
		}
	}

	for i := len(h.Items) - 1; i >= 0; i-- {
		if IsShipped(h.Items[i].Status) {
			h.LastShippedIndex = i
			break
		}
	}

	return h
}

// Count returns the number of items with the given status.
func (h Horizon) Count(status content.Status) int {
	n := 0
	for _, it := range h.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}
