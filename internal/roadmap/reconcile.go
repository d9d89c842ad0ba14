package roadmap

import (
	"strings"

	"github.com/ariel-frischer/statusboard/internal/changelog"
	"github.com/ariel-frischer/statusboard/internal/content"
)

// Item is a plan item annotated with the state of its matching record.
// Status, Slug and LastEntry are empty when no record matched.
type Item struct {
	Week        string         `json:"week"`
	Dev         string         `json:"dev"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      content.Status `json:"status"`
	Slug        string         `json:"slug"`
	LastEntry   string         `json:"lastEntry"`
}

// Matched reports whether a record was found for the item.
func (i Item) Matched() bool { return i.Slug != "" }

// Text is the line shown under the title: the latest changelog entry of the
// matched record, or the planned description.
func (i Item) Text() string {
	if i.LastEntry != "" {
		return i.LastEntry
	}
	return i.Description
}

// Cell holds one developer's items for one week.
type Cell struct {
	Dev   string
	Items []Item
}

// Row is one reconciled week.
type Row struct {
	Week  WeekSchedule
	Cells []Cell
}

// Match returns the first record whose title equals title ignoring case and
// whose owner equals owner exactly.
func Match(records []content.Deliverable, title, owner string) (content.Deliverable, bool) {
	want := strings.ToLower(title)
	for _, r := range records {
		if r.Frontmatter.Owner == owner && strings.ToLower(r.Frontmatter.Title) == want {
			return r, true
		}
	}
	return content.Deliverable{}, false
}

// Annotate reconciles a single plan item.
func Annotate(week, dev string, plan PlanItem, records []content.Deliverable) Item {
	item := Item{
		Week:        week,
		Dev:         dev,
		Title:       plan.Title,
		Description: plan.Description,
	}
	if r, ok := Match(records, plan.Title, dev); ok {
		item.Status = r.Frontmatter.Status
		item.Slug = r.Slug
		item.LastEntry, _ = changelog.LatestSummary(r.Content)
	}
	return item
}

// Grid reconciles the schedule week by week. Every week gets one cell per
// developer in devOrder followed by any other developer the schedule names.
func Grid(schedule Schedule, records []content.Deliverable, devOrder []string) []Row {
	devs := DevOrder(schedule, devOrder)

	rows := make([]Row, 0, len(schedule))
	for _, w := range schedule {
		row := Row{Week: w, Cells: make([]Cell, 0, len(devs))}
		for _, dev := range devs {
			cell := Cell{Dev: dev}
			for _, plan := range w.Items(dev) {
				cell.Items = append(cell.Items, Annotate(w.Week, dev, plan, records))
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// Reconcile returns one annotated item per (week, dev, plan item) in schedule
// order.
func Reconcile(schedule Schedule, records []content.Deliverable, devOrder []string) []Item {
	items := []Item{}
	for _, row := range Grid(schedule, records, devOrder) {
		for _, cell := range row.Cells {
			items = append(items, cell.Items...)
		}
	}
	return items
}

// Unmatched returns the reconciled items that have no record.
func Unmatched(items []Item) []Item {
	var out []Item
	for _, it := range items {
		if !it.Matched() {
			out = append(out, it)
		}
	}
	return out
}

// DevOrder lists devOrder first, then schedule developers not in it.
func DevOrder(schedule Schedule, devOrder []string) []string {
	devs := make([]string, 0, len(devOrder))
	seen := make(map[string]bool, len(devOrder))
	for _, d := range devOrder {
		if !seen[d] {
			seen[d] = true
			devs = append(devs, d)
		}
	}
	for _, d := range schedule.DevNames() {
		if !seen[d] {
			seen[d] = true
			devs = append(devs, d)
		}
	}
	return devs
}
