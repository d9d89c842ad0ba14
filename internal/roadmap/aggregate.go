package roadmap

import (
	"math"

	"github.com/ariel-frischer/statusboard/internal/content"
)

// Summary holds the headline numbers of the roadmap views.
type Summary struct {
	Planned    int `json:"planned"`
	Shipped    int `json:"shipped"`
	InProgress int `json:"inProgress"`
	Percent    int `json:"percent"`
}

// Summarize computes the aggregates over a schedule and the record set.
func Summarize(schedule Schedule, records []content.Deliverable) Summary {
	planned := TotalPlanned(schedule)
	shipped := TotalShipped(records)
	return Summary{
		Planned:    planned,
		Shipped:    shipped,
		InProgress: TotalInProgress(records),
		Percent:    CompletionPercent(shipped, planned),
	}
}

// ShippedShare is the shipped bar width in percent of planned.
func (s Summary) ShippedShare() float64 { return Share(s.Shipped, s.Planned) }

// InProgressShare is the in-progress bar width in percent of planned.
func (s Summary) InProgressShare() float64 { return Share(s.InProgress, s.Planned) }

// TotalPlanned counts every plan item across all weeks and developers.
func TotalPlanned(schedule Schedule) int {
	n := 0
	for _, w := range schedule {
		for _, a := range w.Devs {
			n += len(a.Items)
		}
	}
	return n
}

// TotalShipped counts records with status deployed.
func TotalShipped(records []content.Deliverable) int {
	return countStatus(records, content.StatusDeployed)
}

// TotalInProgress counts records with status in-dev.
func TotalInProgress(records []content.Deliverable) int {
	return countStatus(records, content.StatusInDev)
}

// CompletionPercent returns shipped/planned as a whole percentage rounded half
// away from zero. It is 0 when planned is 0.
func CompletionPercent(shipped, planned int) int {
	if planned <= 0 {
		return 0
	}
	return int(math.Round(float64(shipped) / float64(planned) * 100))
}

// Share returns n/total in percent for bar widths, 0 when total is 0.
func Share(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func countStatus(records []content.Deliverable, status content.Status) int {
	n := 0
	for _, r := range records {
		if r.Frontmatter.Status == status {
			n++
		}
	}
	return n
}
